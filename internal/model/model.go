package model

import "time"

// Account is the registered identity. Balance is kept in minor currency
// units and must never go negative; the only debit path is order redemption.
type Account struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"size:128;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:128;not null"`
	Name         string `gorm:"size:128"`
	Phone        string `gorm:"size:32"`
	Address      string `gorm:"size:255"`
	Balance      int64  `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session maps an opaque login token to an account. A login creates one,
// logout or expiry removes it; an account may hold several at once.
type Session struct {
	Token     string `gorm:"primaryKey;size:64;not null"`
	AccountID uint   `gorm:"index;not null"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

type Product struct {
	ID          string `gorm:"primaryKey;size:64;not null"`
	Name        string `gorm:"size:128;not null"`
	Description string `gorm:"size:255"`
	Price       int64  `gorm:"not null"` // minor units
	Currency    string `gorm:"size:8;not null"`
	Category    string `gorm:"size:32;index"`
	Image       string `gorm:"size:255"`
	Stock       int32  `gorm:"not null"`
}

// CartItem is one line of an account's cart. Price is never stored here:
// lines are joined with the catalog at read time.
type CartItem struct {
	ID        uint   `gorm:"primaryKey"`
	AccountID uint   `gorm:"uniqueIndex:idx_cart_account_product;not null"`
	ProductID string `gorm:"uniqueIndex:idx_cart_account_product;size:64;not null"`
	Quantity  int32  `gorm:"not null"`
	AddedAt   time.Time
}

const (
	OrderStatusPending = "pending"
	OrderStatusPaid    = "paid"
)

type Order struct {
	OrderID       string `gorm:"primaryKey;size:64;not null"`
	AccountID     uint   `gorm:"index;not null"`
	Status        string `gorm:"size:32;index;not null"`
	Amount        int64  `gorm:"not null"` // total charged, minor units
	Currency      string `gorm:"size:8;not null"`
	DeliveryAddr  string `gorm:"size:255"`
	Phone         string `gorm:"size:32"`
	PaymentMethod string `gorm:"size:32"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type OrderItem struct {
	ID uint `gorm:"primaryKey"`
	// FK → order.order_id
	OrderID string `gorm:"size:64;index;not null"`
	// FK → product.id
	ProductID string `gorm:"size:64;index;not null"`
	Name      string `gorm:"size:128"`
	Quantity  int32  `gorm:"not null"`
	UnitPrice int64  `gorm:"not null"` // price captured at redemption
	Currency  string `gorm:"size:8;not null"`
	CreatedAt time.Time
}

// RedeemedCommitment records a consumed commitment nonce. The primary key
// on Nonce is what makes redemption single-use: a second insert of the same
// nonce fails inside the redeem transaction.
type RedeemedCommitment struct {
	Nonce      string `gorm:"primaryKey;size:64;not null"`
	AccountID  uint   `gorm:"index;not null"`
	OrderID    string `gorm:"size:64;not null"`
	RedeemedAt time.Time
}
