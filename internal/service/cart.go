package service

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"kebab-shop-demo/internal/dto"
	"kebab-shop-demo/internal/model"
	"kebab-shop-demo/internal/repository"

	"gorm.io/gorm"
)

type CartService interface {
	AddLine(ctx context.Context, accountID uint, productID string, qty int32) error
	SetQuantity(ctx context.Context, accountID uint, productID string, qty int32) error
	RemoveLine(ctx context.Context, accountID uint, productID string) error
	Clear(ctx context.Context, accountID uint) error
	// Materialize re-derives the priced cart view from the current catalog.
	// Lines whose product no longer resolves are dropped; subtotals and the
	// grand total are always computed server-side.
	Materialize(ctx context.Context, accountID uint) (*dto.CartResponse, error)
}

type cartServiceImpl struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

func NewCartService(
	db *gorm.DB,
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
) CartService {
	return &cartServiceImpl{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

func (s *cartServiceImpl) AddLine(ctx context.Context, accountID uint, productID string, qty int32) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("resolve product: %w", err)
	}

	item := &model.CartItem{
		AccountID: accountID,
		ProductID: productID,
		Quantity:  qty,
	}
	if err := s.cartRepo.Upsert(ctx, item); err != nil {
		return fmt.Errorf("store cart line: %w", err)
	}
	return nil
}

func (s *cartServiceImpl) SetQuantity(ctx context.Context, accountID uint, productID string, qty int32) error {
	if qty <= 0 {
		return s.RemoveLine(ctx, accountID, productID)
	}
	if err := s.cartRepo.SetQuantity(ctx, accountID, productID, qty); err != nil {
		return fmt.Errorf("set cart quantity: %w", err)
	}
	return nil
}

func (s *cartServiceImpl) RemoveLine(ctx context.Context, accountID uint, productID string) error {
	if err := s.cartRepo.DeleteLine(ctx, accountID, productID); err != nil {
		return fmt.Errorf("remove cart line: %w", err)
	}
	return nil
}

func (s *cartServiceImpl) Clear(ctx context.Context, accountID uint) error {
	if err := s.cartRepo.Clear(ctx, s.db, accountID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

func (s *cartServiceImpl) Materialize(ctx context.Context, accountID uint) (*dto.CartResponse, error) {
	items, err := s.cartRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list cart lines: %w", err)
	}

	productIDs := make([]string, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}
	products, err := s.productRepo.FindMany(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve cart products: %w", err)
	}
	catalog := make(map[string]*model.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}

	view := &dto.CartResponse{Lines: []dto.CartLineResponse{}}
	for line := range pricedLines(items, catalog) {
		view.Lines = append(view.Lines, line)
		view.Total += line.Subtotal
	}
	view.Display = dto.DisplayAmount(view.Total)

	return view, nil
}

// pricedLines joins cart lines with the catalog as a restartable sequence,
// skipping lines whose product no longer resolves.
func pricedLines(items []*model.CartItem, catalog map[string]*model.Product) iter.Seq[dto.CartLineResponse] {
	return func(yield func(dto.CartLineResponse) bool) {
		for _, item := range items {
			product, ok := catalog[item.ProductID]
			if !ok {
				continue
			}
			subtotal := product.Price * int64(item.Quantity)
			line := dto.CartLineResponse{
				ProductID: item.ProductID,
				Name:      product.Name,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
				Subtotal:  subtotal,
				Display:   dto.DisplayAmount(subtotal),
				AddedAt:   item.AddedAt,
			}
			if !yield(line) {
				return
			}
		}
	}
}
