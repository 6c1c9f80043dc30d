package repository

import (
	"context"

	"kebab-shop-demo/internal/model"

	"gorm.io/gorm"
)

type CommitmentRepository interface {
	// Consume records the nonce as spent inside tx. The unique primary key
	// makes a second consumption fail with gorm.ErrDuplicatedKey, which is
	// what guarantees a commitment is redeemed at most once.
	Consume(ctx context.Context, tx *gorm.DB, redeemed *model.RedeemedCommitment) error
}

type commitmentRepoImpl struct {
	db *gorm.DB
}

func NewCommitmentRepository(db *gorm.DB) CommitmentRepository {
	return &commitmentRepoImpl{
		db: db,
	}
}

func (r *commitmentRepoImpl) Consume(ctx context.Context, tx *gorm.DB, redeemed *model.RedeemedCommitment) error {
	return tx.WithContext(ctx).Create(redeemed).Error
}
