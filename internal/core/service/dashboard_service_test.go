package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
	"github.com/stockwise/inventory-system/internal/infrastructure/db/memory"
)

func strPtr(s string) *string { return &s }

func TestDashboardService_EmptyCollection(t *testing.T) {
	svc := NewDashboardService(memory.NewProductRepository(), 0, zerolog.Nop())

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalProducts != 0 || stats.InStockQuantity != 0 {
		t.Fatalf("expected zero counts, got %+v", stats)
	}
	if stats.Price.Avg != nil || stats.Price.Max != nil || stats.Price.Min != nil {
		t.Fatalf("expected null price stats, got %+v", stats.Price)
	}
	if stats.ByCategory == nil || len(stats.ByCategory) != 0 {
		t.Fatalf("expected empty grouping, got %#v", stats.ByCategory)
	}
	if stats.RecentUpdates == nil || len(stats.RecentUpdates) != 0 {
		t.Fatalf("expected empty recent list, got %#v", stats.RecentUpdates)
	}
}

func TestDashboardService_Aggregates(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	products := NewProductService(repo, zerolog.Nop())

	two, one := int64(2), int64(1)
	yes, no := true, false
	if _, err := products.Create(ctx, ports.CreateProductInput{Name: "a", Price: 10, Quantity: &two, InStock: &yes, Category: strPtr("A")}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := products.Create(ctx, ports.CreateProductInput{Name: "b", Price: 30, Quantity: &one, InStock: &no, Category: strPtr("A")}); err != nil {
		t.Fatalf("create: %v", err)
	}

	stats, err := NewDashboardService(repo, time.Second, zerolog.Nop()).Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalProducts != 2 || stats.InStockQuantity != 2 {
		t.Fatalf("unexpected counts: %+v", stats)
	}
	if *stats.Price.Avg != 20 || *stats.Price.Max != 30 || *stats.Price.Min != 10 {
		t.Fatalf("unexpected price stats: avg=%v max=%v min=%v", *stats.Price.Avg, *stats.Price.Max, *stats.Price.Min)
	}
	if len(stats.ByCategory) != 1 || *stats.ByCategory[0].Category != "A" || stats.ByCategory[0].Quantity != 3 {
		t.Fatalf("unexpected grouping: %+v", stats.ByCategory)
	}
	if len(stats.RecentUpdates) != 2 {
		t.Fatalf("expected 2 recent updates, got %d", len(stats.RecentUpdates))
	}
}

func TestDashboardService_RecentUpdatesOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// p0..p6, with p2 and p3 sharing a timestamp.
	stamps := []time.Duration{0, 1, 5, 5, 2, 3, 4}
	ids := make([]string, len(stamps))
	for i, d := range stamps {
		p := &domain.Product{Name: string(rune('a' + i)), UpdatedAt: base.Add(d * time.Minute)}
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
		ids[i] = p.ID
	}

	stats, err := NewDashboardService(repo, 0, zerolog.Nop()).Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	want := []string{ids[2], ids[3], ids[6], ids[5], ids[4]}
	if len(stats.RecentUpdates) != len(want) {
		t.Fatalf("expected %d products, got %d", len(want), len(stats.RecentUpdates))
	}
	for i, p := range stats.RecentUpdates {
		if p.ID != want[i] {
			t.Fatalf("position %d: expected %s, got %s (%s)", i, want[i], p.ID, p.Name)
		}
	}
}

func TestDashboardService_NullCategoryBucket(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewProductRepository()
	for _, p := range []*domain.Product{
		{Name: "x", Quantity: 4},
		{Name: "y", Quantity: 1, Category: strPtr("B")},
		{Name: "z", Quantity: 2},
	} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	stats, err := NewDashboardService(repo, 0, zerolog.Nop()).Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats.ByCategory) != 2 {
		t.Fatalf("expected 2 groups, got %+v", stats.ByCategory)
	}
	if stats.ByCategory[0].Category != nil || stats.ByCategory[0].Quantity != 6 {
		t.Fatalf("expected null bucket with 6, got %+v", stats.ByCategory[0])
	}
}

type failingProductRepo struct {
	*memory.ProductRepository
	err error
}

func (r *failingProductRepo) PriceStats(context.Context) (domain.PriceStats, error) {
	return domain.PriceStats{}, r.err
}

func TestDashboardService_FailurePropagates(t *testing.T) {
	repo := &failingProductRepo{
		ProductRepository: memory.NewProductRepository(),
		err:               errors.Join(domain.ErrPersistence, errors.New("aggregate timed out")),
	}

	_, err := NewDashboardService(repo, 0, zerolog.Nop()).Stats(context.Background())
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}
