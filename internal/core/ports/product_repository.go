package ports

import (
	"context"
	"time"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

// ProductUpdate carries the mutable fields of a product.
type ProductUpdate struct {
	Name      string
	Price     float64
	Quantity  int64
	Category  *string
	InStock   bool
	UpdatedAt time.Time
}

// ProductRepository defines persistence and aggregate queries over products.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	// Update returns domain.ErrProductNotFound when id matches nothing.
	Update(ctx context.Context, id string, upd ProductUpdate) (*domain.Product, error)

	Count(ctx context.Context) (int64, error)
	InStockQuantity(ctx context.Context) (int64, error)
	PriceStats(ctx context.Context) (domain.PriceStats, error)
	QuantityByCategory(ctx context.Context) ([]domain.CategoryQuantity, error)
	// RecentlyUpdated returns at most limit products, newest updated_at
	// first, ties in insertion order.
	RecentlyUpdated(ctx context.Context, limit int) ([]domain.Product, error)
}
