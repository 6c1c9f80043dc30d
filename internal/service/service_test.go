package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"kebab-shop-demo/internal/model"
	"kebab-shop-demo/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Account{},
		&model.Session{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.RedeemedCommitment{},
	))

	return db
}

type testEnv struct {
	db       *gorm.DB
	auth     AuthService
	cart     CartService
	checkout CheckoutService
	orders   OrderService

	accountRepo repository.AccountRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	orderRepo   repository.OrderRepository
}

func newTestEnv(t *testing.T, commitmentTTL time.Duration) *testEnv {
	t.Helper()

	db := newTestDB(t)

	accountRepo := repository.NewAccountRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	commitmentRepo := repository.NewCommitmentRepository(db)

	checkout, err := NewCheckoutService(
		db,
		[]byte(testSigningKey),
		commitmentTTL,
		accountRepo,
		productRepo,
		cartRepo,
		orderRepo,
		commitmentRepo,
	)
	require.NoError(t, err)

	return &testEnv{
		db:          db,
		auth:        NewAuthService(accountRepo, sessionRepo, time.Hour, 50000),
		cart:        NewCartService(db, cartRepo, productRepo),
		checkout:    checkout,
		orders:      NewOrderService(orderRepo),
		accountRepo: accountRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
	}
}

func (e *testEnv) seedProduct(t *testing.T, id string, price int64) {
	t.Helper()
	require.NoError(t, e.db.Create(&model.Product{
		ID:       id,
		Name:     id,
		Price:    price,
		Currency: "IDR",
		Category: "kebab",
		Stock:    100,
	}).Error)
}

func (e *testEnv) seedAccount(t *testing.T, email string, balance int64) uint {
	t.Helper()
	account := &model.Account{
		Email:        email,
		PasswordHash: "x",
		Balance:      balance,
	}
	require.NoError(t, e.accountRepo.Create(context.Background(), account))
	return account.ID
}
