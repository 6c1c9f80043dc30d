package client

import (
	"time"

	"kebab-shop-demo/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitSqliteClient opens the sqlite database, migrates the schema and tunes
// the connection pool. TranslateError lets callers match unique-constraint
// violations against gorm.ErrDuplicatedKey.
func InitSqliteClient(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.Account{},
		&model.Session{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.RedeemedCommitment{},
	); err != nil {
		return nil, err
	}

	return db, nil
}
