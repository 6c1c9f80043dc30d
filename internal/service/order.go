package service

import (
	"context"
	"errors"
	"fmt"

	"kebab-shop-demo/internal/dto"
	"kebab-shop-demo/internal/repository"

	"gorm.io/gorm"
)

// OrderService exposes the read-only projections of the order store.
type OrderService interface {
	ListByAccount(ctx context.Context, accountID uint) ([]dto.OrderResponse, error)
	GetByID(ctx context.Context, accountID uint, orderID string) (*dto.OrderResponse, error)
}

type orderServiceImpl struct {
	orderRepo repository.OrderRepository
}

func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderServiceImpl{
		orderRepo: orderRepo,
	}
}

func (s *orderServiceImpl) ListByAccount(ctx context.Context, accountID uint) ([]dto.OrderResponse, error) {
	orders, err := s.orderRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	responses := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		items, err := s.orderRepo.GetOrderItems(ctx, order.OrderID)
		if err != nil {
			return nil, fmt.Errorf("get order items: %w", err)
		}
		responses = append(responses, orderResponse(order, items))
	}

	return responses, nil
}

func (s *orderServiceImpl) GetByID(ctx context.Context, accountID uint, orderID string) (*dto.OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	// orders are only visible to the account that placed them
	if order.AccountID != accountID {
		return nil, ErrOrderNotFound
	}

	items, err := s.orderRepo.GetOrderItems(ctx, order.OrderID)
	if err != nil {
		return nil, fmt.Errorf("get order items: %w", err)
	}

	resp := orderResponse(order, items)
	return &resp, nil
}
