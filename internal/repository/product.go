package repository

import (
	"context"

	"kebab-shop-demo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductRepository is the catalog lookup: the read-only source of truth for
// prices. Seed exists because the demo ships its own static catalog.
type ProductRepository interface {
	Seed(ctx context.Context) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error)
	List(ctx context.Context) ([]*model.Product, error)
	Search(ctx context.Context, query string) ([]*model.Product, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Seed(ctx context.Context) error {
	products := []model.Product{
		{ID: "kebab_sapi", Name: "Kebab Sapi Spesial", Description: "Beef kebab with fresh vegetables and house sauce", Price: 22000, Currency: "IDR", Category: "kebab", Image: "/assets/kebabayam.jpeg", Stock: 100},
		{ID: "kebab_ayam", Name: "Kebab Ayam Spesial", Description: "Chicken kebab with middle-eastern spices and mozzarella", Price: 20000, Currency: "IDR", Category: "kebab", Image: "/assets/kebablumer.jpeg", Stock: 100},
		{ID: "kebab_lumer", Name: "Kebab Lumer", Description: "Jumbo beef kebab with sweet and sour sauce", Price: 26000, Currency: "IDR", Category: "kebab", Image: "/assets/kebaab.jpeg", Stock: 100},
		{ID: "kebab_unta", Name: "Kebab Unta Pedas", Description: "Jumbo spicy camel kebab", Price: 28000, Currency: "IDR", Category: "kebab", Image: "/assets/fulldagingwak.jpeg", Stock: 100},
		{ID: "kebab_20cm", Name: "Kebab 20 cm", Description: "Premium 20 cm beef kebab with full vegetables", Price: 35000, Currency: "IDR", Category: "kebab", Image: "/assets/shawarmaisi.jpeg", Stock: 100},
		{ID: "kebab_veggie", Name: "Kebab Vegetarian", Description: "Healthy kebab with fresh vegetables and tofu", Price: 25000, Currency: "IDR", Category: "kebab", Image: "/assets/kebabcihuy.jpeg", Stock: 100},
		{ID: "milkshake_oreo", Name: "Milkshake Oreo", Description: "Cold milkshake with oreo", Price: 15000, Currency: "IDR", Category: "drink", Image: "/assets/oreoo.jpeg", Stock: 100},
		{ID: "sosis_bakar", Name: "Sosis Bakar", Description: "Grilled sausage, goes well with kebab", Price: 18000, Currency: "IDR", Category: "side", Image: "/assets/sobar.jpeg", Stock: 100},
		{ID: "cookies_choco", Name: "Cookies Chocolatte", Description: "Chocolate chip cookies from Garut", Price: 13000, Currency: "IDR", Category: "side", Image: "/assets/cookies.jpeg", Stock: 100},
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&products).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, productIDs []string) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("id IN ?", productIDs).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) List(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).Find(&products).Error
	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Search(ctx context.Context, query string) ([]*model.Product, error) {
	var products []*model.Product
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("name LIKE ? OR description LIKE ?", pattern, pattern).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}
