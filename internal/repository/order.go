package repository

import (
	"context"

	"kebab-shop-demo/internal/model"

	"gorm.io/gorm"
)

type OrderRepository interface {
	// Create appends the order and its items inside tx. It is the only
	// mutator of the order store and is called solely from redemption.
	Create(ctx context.Context, tx *gorm.DB, order *model.Order, items []*model.OrderItem) error
	ListByAccount(ctx context.Context, accountID uint) ([]*model.Order, error)
	FindByID(ctx context.Context, orderID string) (*model.Order, error)
	GetOrderItems(ctx context.Context, orderID string) ([]*model.OrderItem, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, tx *gorm.DB, order *model.Order, items []*model.OrderItem) error {
	if err := tx.WithContext(ctx).Create(order).Error; err != nil {
		return err
	}
	return tx.WithContext(ctx).Create(&items).Error
}

func (r *orderRepoImpl) ListByAccount(ctx context.Context, accountID uint) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) FindByID(ctx context.Context, orderID string) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&order).Error

	if err != nil {
		return nil, err
	}

	return &order, nil
}

func (r *orderRepoImpl) GetOrderItems(ctx context.Context, orderID string) ([]*model.OrderItem, error) {
	var items []*model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&items).Error

	if err != nil {
		return nil, err
	}

	return items, nil
}
