package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

func TestProductRepository_CreateCopiesInput(t *testing.T) {
	repo := NewProductRepository()
	cat := "A"
	p := &domain.Product{Name: "a", Category: &cat}
	if err := repo.Create(context.Background(), p); err != nil {
		t.Fatalf("create: %v", err)
	}
	cat = "mutated"

	items, _ := repo.List(context.Background())
	if len(items) != 1 || *items[0].Category != "A" || items[0].ID != p.ID {
		t.Fatalf("stored product should be isolated from caller: %+v", items)
	}
}

func TestProductRepository_UpdateUnknown(t *testing.T) {
	_, err := NewProductRepository().Update(context.Background(), "nope", ports.ProductUpdate{Name: "x"})
	if !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_PriceStatsIgnoreStock(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	for _, p := range []*domain.Product{
		{Name: "a", Price: 4, InStock: false},
		{Name: "b", Price: 8, InStock: true, Quantity: 3},
	} {
		_ = repo.Create(ctx, p)
	}

	ps, err := repo.PriceStats(ctx)
	if err != nil {
		t.Fatalf("price stats: %v", err)
	}
	if *ps.Avg != 6 || *ps.Min != 4 || *ps.Max != 8 {
		t.Fatalf("unexpected stats: avg=%v min=%v max=%v", *ps.Avg, *ps.Min, *ps.Max)
	}
	if n, _ := repo.InStockQuantity(ctx); n != 3 {
		t.Fatalf("expected in-stock 3, got %d", n)
	}
}

func TestProductRepository_RecentlyUpdatedAfterUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	first := &domain.Product{Name: "first", UpdatedAt: base}
	second := &domain.Product{Name: "second", UpdatedAt: base.Add(time.Minute)}
	_ = repo.Create(ctx, first)
	_ = repo.Create(ctx, second)

	if _, err := repo.Update(ctx, first.ID, ports.ProductUpdate{Name: "first", UpdatedAt: base.Add(time.Hour)}); err != nil {
		t.Fatalf("update: %v", err)
	}

	recent, err := repo.RecentlyUpdated(ctx, 1)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 || recent[0].ID != first.ID {
		t.Fatalf("expected the updated product first, got %+v", recent)
	}
}
