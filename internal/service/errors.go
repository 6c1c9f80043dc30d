package service

import "errors"

var (
	// auth
	ErrDuplicateIdentity  = errors.New("identity already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")

	// cart
	ErrProductNotFound = errors.New("product not found")
	ErrEmptyCart       = errors.New("cart has no line for this product")
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// order integrity
	ErrIntegrityViolation = errors.New("commitment integrity violation")
	ErrCommitmentExpired  = errors.New("commitment expired")
	ErrCommitmentRedeemed = errors.New("commitment already redeemed")

	// order
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrOrderNotFound       = errors.New("order not found")
)
