package service

import (
	"context"
	"errors"
	"fmt"

	"kebab-shop-demo/internal/dto"
	"kebab-shop-demo/internal/model"
	"kebab-shop-demo/internal/repository"

	"gorm.io/gorm"
)

type ProductService interface {
	List(ctx context.Context, query string) ([]dto.ProductResponse, error)
	Get(ctx context.Context, productID string) (*dto.ProductResponse, error)
}

type productServiceImpl struct {
	productRepo repository.ProductRepository
}

func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productServiceImpl{
		productRepo: productRepo,
	}
}

func (s *productServiceImpl) List(ctx context.Context, query string) ([]dto.ProductResponse, error) {
	var (
		products []*model.Product
		err      error
	)
	if query != "" {
		products, err = s.productRepo.Search(ctx, query)
	} else {
		products, err = s.productRepo.List(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	responses := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, productResponse(p))
	}
	return responses, nil
}

func (s *productServiceImpl) Get(ctx context.Context, productID string) (*dto.ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	resp := productResponse(product)
	return &resp, nil
}

func productResponse(p *model.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Display:     dto.DisplayAmount(p.Price),
		Currency:    p.Currency,
		Category:    p.Category,
		Image:       p.Image,
	}
}
