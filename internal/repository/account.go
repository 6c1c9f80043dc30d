package repository

import (
	"context"

	"kebab-shop-demo/internal/model"

	"gorm.io/gorm"
)

type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	FindByID(ctx context.Context, id uint) (*model.Account, error)
	// Debit subtracts amount from the account balance inside tx, refusing to
	// let the balance go negative. Returns gorm.ErrRecordNotFound when the
	// balance is insufficient (no row matched the guard).
	Debit(ctx context.Context, tx *gorm.DB, accountID uint, amount int64) error
}

type accountRepoImpl struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepoImpl{
		db: db,
	}
}

func (r *accountRepoImpl) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepoImpl) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&account).Error

	if err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *accountRepoImpl) FindByID(ctx context.Context, id uint) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&account).Error

	if err != nil {
		return nil, err
	}

	return &account, nil
}

func (r *accountRepoImpl) Debit(ctx context.Context, tx *gorm.DB, accountID uint, amount int64) error {
	result := tx.WithContext(ctx).Model(&model.Account{}).
		Where("id = ? AND balance >= ?", accountID, amount).
		UpdateColumn("balance", gorm.Expr("balance - ?", amount))

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
