package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

type Profile struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Balance int64  `json:"balance"`
}

type ProductResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Display     string `json:"display_price"`
	Currency    string `json:"currency"`
	Category    string `json:"category"`
	Image       string `json:"image"`
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

type SetCartQuantityRequest struct {
	Quantity int32 `json:"quantity"`
}

type CartLineResponse struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int32     `json:"quantity"`
	UnitPrice int64     `json:"unit_price"`
	Subtotal  int64     `json:"subtotal"`
	Display   string    `json:"display_subtotal"`
	AddedAt   time.Time `json:"added_at"`
}

type CartResponse struct {
	Lines   []CartLineResponse `json:"lines"`
	Total   int64              `json:"total"`
	Display string             `json:"display_total"`
}

// PriceCommitment is the signed, server-issued statement binding a product
// and quantity to an authoritative total. It is opaque to the client: every
// field is re-derived and verified server-side at redemption.
type PriceCommitment struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
	Total     int64  `json:"total"`
	Nonce     string `json:"nonce"`
	ExpiresAt int64  `json:"expires_at"`
	Signature string `json:"signature"`
}

type IssueCommitmentRequest struct {
	ProductID string `json:"product_id"`
}

type RedeemRequest struct {
	Commitment    PriceCommitment `json:"commitment"`
	DeliveryAddr  string          `json:"delivery_address"`
	Phone         string          `json:"phone"`
	PaymentMethod string          `json:"payment_method"`
}

type OrderItemResponse struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int32  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Subtotal  int64  `json:"subtotal"`
}

type OrderResponse struct {
	OrderID       string              `json:"order_id"`
	Status        string              `json:"status"`
	Amount        int64               `json:"amount"`
	Display       string              `json:"display_amount"`
	Currency      string              `json:"currency"`
	DeliveryAddr  string              `json:"delivery_address"`
	Phone         string              `json:"phone"`
	PaymentMethod string              `json:"payment_method"`
	Items         []OrderItemResponse `json:"items"`
	CreatedAt     time.Time           `json:"created_at"`
}

type RedeemResponse struct {
	Order   OrderResponse `json:"order"`
	Balance int64         `json:"balance"`
}

// DisplayAmount renders minor units as a fixed two-decimal string for the
// presentation layer.
func DisplayAmount(minor int64) string {
	return decimal.New(minor, -2).StringFixed(2)
}
