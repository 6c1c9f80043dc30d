package service

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"kebab-shop-demo/internal/dto"
	"kebab-shop-demo/internal/model"
	"kebab-shop-demo/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutService implements the order integrity protocol. A commitment is
// issued from server-held state only, and redemption re-derives everything
// from current state: the client can present a commitment, never dictate
// what it is worth.
type CheckoutService interface {
	IssueCommitment(ctx context.Context, accountID uint, productID string) (*dto.PriceCommitment, error)
	Redeem(ctx context.Context, accountID uint, req *dto.RedeemRequest) (*dto.RedeemResponse, error)
}

type checkoutServiceImpl struct {
	db             *gorm.DB
	signingKey     []byte
	commitmentTTL  time.Duration
	accountRepo    repository.AccountRepository
	productRepo    repository.ProductRepository
	cartRepo       repository.CartRepository
	orderRepo      repository.OrderRepository
	commitmentRepo repository.CommitmentRepository

	locks accountLocks
}

// accountLocks serializes redemptions per account. Entries are refcounted
// and dropped once the last holder releases, so the map stays bounded by
// the number of in-flight redemptions.
type accountLocks struct {
	mu      sync.Mutex
	entries map[uint]*accountLock
}

type accountLock struct {
	sync.Mutex
	refs int
}

func (l *accountLocks) acquire(accountID uint) *accountLock {
	l.mu.Lock()
	entry, ok := l.entries[accountID]
	if !ok {
		entry = &accountLock{}
		l.entries[accountID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()
	return entry
}

func (l *accountLocks) release(accountID uint, entry *accountLock) {
	entry.Unlock()

	l.mu.Lock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, accountID)
	}
	l.mu.Unlock()
}

func (l *accountLocks) inFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func NewCheckoutService(
	db *gorm.DB,
	signingKey []byte,
	commitmentTTL time.Duration,
	accountRepo repository.AccountRepository,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	orderRepo repository.OrderRepository,
	commitmentRepo repository.CommitmentRepository,
) (CheckoutService, error) {
	if len(signingKey) < 16 {
		return nil, fmt.Errorf("checkout signing key must be at least 16 bytes")
	}

	return &checkoutServiceImpl{
		db:             db,
		signingKey:     signingKey,
		commitmentTTL:  commitmentTTL,
		accountRepo:    accountRepo,
		productRepo:    productRepo,
		cartRepo:       cartRepo,
		orderRepo:      orderRepo,
		commitmentRepo: commitmentRepo,
		locks:          accountLocks{entries: make(map[uint]*accountLock)},
	}, nil
}

func (s *checkoutServiceImpl) IssueCommitment(ctx context.Context, accountID uint, productID string) (*dto.PriceCommitment, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	// quantity comes from the ledger, never from the caller
	line, err := s.cartRepo.FindLine(ctx, accountID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("read cart line: %w", err)
	}

	total := product.Price * int64(line.Quantity)
	nonce := uuid.NewString()
	expiresAt := time.Now().Add(s.commitmentTTL).Unix()

	return &dto.PriceCommitment{
		ProductID: productID,
		Quantity:  line.Quantity,
		Total:     total,
		Nonce:     nonce,
		ExpiresAt: expiresAt,
		Signature: hex.EncodeToString(s.sign(productID, line.Quantity, total, nonce, expiresAt)),
	}, nil
}

func (s *checkoutServiceImpl) Redeem(ctx context.Context, accountID uint, req *dto.RedeemRequest) (*dto.RedeemResponse, error) {
	// redeems for the same account are serialized
	lock := s.locks.acquire(accountID)
	defer s.locks.release(accountID, lock)

	c := req.Commitment
	if c.Quantity < 1 {
		return nil, ErrIntegrityViolation
	}

	product, err := s.productRepo.FindByID(ctx, c.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	// The expected signature is re-derived from the live catalog price.
	// The client-asserted total never feeds the MAC: it must match the
	// recomputed value exactly, and the signature must match a MAC over
	// that value. Mutating the total, or a price change since issuance,
	// fails one of the two checks.
	expectedTotal := product.Price * int64(c.Quantity)
	if c.Total != expectedTotal {
		return nil, ErrIntegrityViolation
	}
	expected := s.sign(c.ProductID, c.Quantity, expectedTotal, c.Nonce, c.ExpiresAt)
	provided, err := hex.DecodeString(c.Signature)
	if err != nil || !hmac.Equal(expected, provided) {
		return nil, ErrIntegrityViolation
	}

	if time.Now().Unix() > c.ExpiresAt {
		return nil, ErrCommitmentExpired
	}

	order := &model.Order{
		OrderID:       uuid.NewString(),
		AccountID:     accountID,
		Status:        model.OrderStatusPaid,
		Amount:        expectedTotal,
		Currency:      product.Currency,
		DeliveryAddr:  req.DeliveryAddr,
		Phone:         req.Phone,
		PaymentMethod: req.PaymentMethod,
	}
	items := []*model.OrderItem{{
		OrderID:   order.OrderID,
		ProductID: product.ID,
		Name:      product.Name,
		Quantity:  c.Quantity,
		UnitPrice: product.Price,
		Currency:  product.Currency,
	}}

	// verify → consume nonce → debit → record → clear, all or nothing
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		redeemed := &model.RedeemedCommitment{
			Nonce:      c.Nonce,
			AccountID:  accountID,
			OrderID:    order.OrderID,
			RedeemedAt: time.Now(),
		}
		if err := s.commitmentRepo.Consume(ctx, tx, redeemed); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrCommitmentRedeemed
			}
			return fmt.Errorf("consume commitment nonce: %w", err)
		}

		if err := s.accountRepo.Debit(ctx, tx, accountID, expectedTotal); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInsufficientBalance
			}
			return fmt.Errorf("debit balance: %w", err)
		}

		if err := s.orderRepo.Create(ctx, tx, order, items); err != nil {
			return fmt.Errorf("store order: %w", err)
		}

		if err := s.cartRepo.Clear(ctx, tx, accountID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("read account: %w", err)
	}

	return &dto.RedeemResponse{
		Order:   orderResponse(order, items),
		Balance: account.Balance,
	}, nil
}

// sign computes the keyed MAC binding product, quantity, total, nonce and
// expiry into one artifact.
func (s *checkoutServiceImpl) sign(productID string, qty int32, total int64, nonce string, expiresAt int64) []byte {
	mac := hmac.New(sha256.New, s.signingKey)
	fmt.Fprintf(mac, "%s|%d|%d|%s|%d", productID, qty, total, nonce, expiresAt)
	return mac.Sum(nil)
}

func orderResponse(order *model.Order, items []*model.OrderItem) dto.OrderResponse {
	resp := dto.OrderResponse{
		OrderID:       order.OrderID,
		Status:        order.Status,
		Amount:        order.Amount,
		Display:       dto.DisplayAmount(order.Amount),
		Currency:      order.Currency,
		DeliveryAddr:  order.DeliveryAddr,
		Phone:         order.Phone,
		PaymentMethod: order.PaymentMethod,
		CreatedAt:     order.CreatedAt,
	}
	for _, item := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.UnitPrice * int64(item.Quantity),
		})
	}
	return resp
}
