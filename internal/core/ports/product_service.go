package ports

import (
	"context"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

// CreateProductInput is the DTO passed from the transport layer. A nil
// Quantity or InStock takes the product default.
type CreateProductInput struct {
	Name     string
	Price    float64
	Quantity *int64
	Category *string
	InStock  *bool
}

// UpdateProductInput replaces the mutable fields of a product.
type UpdateProductInput struct {
	Name     string
	Price    float64
	Quantity int64
	Category *string
	InStock  bool
}

// ProductService defines use-case operations for products.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error)
}

// DashboardService computes the manager statistics.
type DashboardService interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}
