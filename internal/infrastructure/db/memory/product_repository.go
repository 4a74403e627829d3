package memory

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

// ProductRepository keeps products in insertion order and computes the
// aggregates the same way the Mongo pipelines do.
type ProductRepository struct {
	mu    sync.RWMutex
	items []domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneProducts(r.items), nil
}

func (r *ProductRepository) Create(_ context.Context, p *domain.Product) error {
	p.ID = uuid.NewString()
	r.mu.Lock()
	r.items = append(r.items, cloneProduct(*p))
	r.mu.Unlock()
	return nil
}

func (r *ProductRepository) Update(_ context.Context, id string, upd ports.ProductUpdate) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.items {
		if r.items[i].ID != id {
			continue
		}
		p := &r.items[i]
		p.Name = upd.Name
		p.Price = upd.Price
		p.Quantity = upd.Quantity
		p.Category = upd.Category
		p.InStock = upd.InStock
		p.UpdatedAt = upd.UpdatedAt
		out := cloneProduct(*p)
		return &out, nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *ProductRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items)), nil
}

func (r *ProductRepository) InStockQuantity(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var total int64
	for _, p := range r.items {
		if p.InStock {
			total += p.Quantity
		}
	}
	return total, nil
}

func (r *ProductRepository) PriceStats(_ context.Context) (domain.PriceStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.items) == 0 {
		return domain.PriceStats{}, nil
	}

	sum := 0.0
	lo, hi := r.items[0].Price, r.items[0].Price
	for _, p := range r.items {
		sum += p.Price
		lo = min(lo, p.Price)
		hi = max(hi, p.Price)
	}
	avg := sum / float64(len(r.items))
	return domain.PriceStats{Avg: &avg, Max: &hi, Min: &lo}, nil
}

func (r *ProductRepository) QuantityByCategory(_ context.Context) ([]domain.CategoryQuantity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var unlabeled *domain.CategoryQuantity
	byLabel := make(map[string]int64)
	for _, p := range r.items {
		if p.Category == nil {
			if unlabeled == nil {
				unlabeled = &domain.CategoryQuantity{}
			}
			unlabeled.Quantity += p.Quantity
			continue
		}
		byLabel[*p.Category] += p.Quantity
	}

	out := make([]domain.CategoryQuantity, 0, len(byLabel)+1)
	if unlabeled != nil {
		out = append(out, *unlabeled)
	}
	labels := make([]string, 0, len(byLabel))
	for label := range byLabel {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	for _, label := range labels {
		out = append(out, domain.CategoryQuantity{Category: &label, Quantity: byLabel[label]})
	}
	return out, nil
}

func (r *ProductRepository) RecentlyUpdated(_ context.Context, limit int) ([]domain.Product, error) {
	r.mu.RLock()
	sorted := cloneProducts(r.items)
	r.mu.RUnlock()

	slices.SortStableFunc(sorted, func(a, b domain.Product) int {
		return cmp.Compare(b.UpdatedAt.UnixNano(), a.UpdatedAt.UnixNano())
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func cloneProduct(p domain.Product) domain.Product {
	if p.Category != nil {
		c := *p.Category
		p.Category = &c
	}
	return p
}

func cloneProducts(in []domain.Product) []domain.Product {
	out := make([]domain.Product, len(in))
	for i, p := range in {
		out[i] = cloneProduct(p)
	}
	return out
}
