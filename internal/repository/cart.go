package repository

import (
	"context"
	"time"

	"kebab-shop-demo/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	// Upsert inserts the line or, when the account already has one for the
	// product, adds the quantities together.
	Upsert(ctx context.Context, item *model.CartItem) error
	SetQuantity(ctx context.Context, accountID uint, productID string, qty int32) error
	FindLine(ctx context.Context, accountID uint, productID string) (*model.CartItem, error)
	ListByAccount(ctx context.Context, accountID uint) ([]*model.CartItem, error)
	DeleteLine(ctx context.Context, accountID uint, productID string) error
	Clear(ctx context.Context, tx *gorm.DB, accountID uint) error
}

type cartRepoImpl struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepoImpl{
		db: db,
	}
}

func (r *cartRepoImpl) Upsert(ctx context.Context, item *model.CartItem) error {
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "account_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity": gorm.Expr("cart_items.quantity + ?", item.Quantity),
		}),
	}).Create(item).Error
}

func (r *cartRepoImpl) SetQuantity(ctx context.Context, accountID uint, productID string, qty int32) error {
	return r.db.WithContext(ctx).Model(&model.CartItem{}).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Update("quantity", qty).Error
}

func (r *cartRepoImpl) FindLine(ctx context.Context, accountID uint, productID string) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		First(&item).Error

	if err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *cartRepoImpl) ListByAccount(ctx context.Context, accountID uint) ([]*model.CartItem, error) {
	var items []*model.CartItem
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("added_at").
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}

func (r *cartRepoImpl) DeleteLine(ctx context.Context, accountID uint, productID string) error {
	return r.db.WithContext(ctx).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Delete(&model.CartItem{}).Error
}

// Clear runs inside tx so redemption can wipe the cart atomically with the
// debit and the order append.
func (r *cartRepoImpl) Clear(ctx context.Context, tx *gorm.DB, accountID uint) error {
	return tx.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.CartItem{}).Error
}
