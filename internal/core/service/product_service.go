package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

type ProductService struct {
	repo   ports.ProductRepository
	logger zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, logger zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, logger: logger}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Create stores a new product, applying the quantity and stock defaults.
func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	quantity := int64(domain.DefaultQuantity)
	if in.Quantity != nil {
		quantity = *in.Quantity
	}
	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}

	now := time.Now().UTC()
	p := &domain.Product{
		Name:      in.Name,
		Price:     in.Price,
		Quantity:  quantity,
		Category:  normalizeCategory(in.Category),
		InStock:   inStock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create product")
		return nil, err
	}

	s.logger.Info().Str("product_id", p.ID).Str("name", p.Name).Msg("product created")
	return p, nil
}

// Update replaces the mutable fields of the product and bumps updated_at.
func (s *ProductService) Update(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	p, err := s.repo.Update(ctx, id, ports.ProductUpdate{
		Name:      in.Name,
		Price:     in.Price,
		Quantity:  in.Quantity,
		Category:  normalizeCategory(in.Category),
		InStock:   in.InStock,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("product_id", p.ID).Msg("product updated")
	return p, nil
}

// normalizeCategory treats an empty label as no category.
func normalizeCategory(c *string) *string {
	if c == nil || *c == "" {
		return nil
	}
	v := *c
	return &v
}
