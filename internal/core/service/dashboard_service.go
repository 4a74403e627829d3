package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

const recentUpdatesLimit = 5

// DashboardService runs the dashboard aggregations over the product
// collection.
type DashboardService struct {
	repo    ports.ProductRepository
	timeout time.Duration
	log     zerolog.Logger
}

// NewDashboardService returns a DashboardService. A positive timeout bounds
// the whole fan-out.
func NewDashboardService(repo ports.ProductRepository, timeout time.Duration, log zerolog.Logger) *DashboardService {
	return &DashboardService{repo: repo, timeout: timeout, log: log}
}

// Stats runs the five aggregations concurrently and combines them. Each
// goroutine writes its own field of stats; Wait orders those writes before
// the read below. The first failure cancels the remaining queries.
func (s *DashboardService) Stats(ctx context.Context) (*domain.DashboardStats, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var stats domain.DashboardStats
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.repo.Count(gctx)
		if err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		stats.TotalProducts = n
		return nil
	})
	g.Go(func() error {
		n, err := s.repo.InStockQuantity(gctx)
		if err != nil {
			return fmt.Errorf("in-stock quantity: %w", err)
		}
		stats.InStockQuantity = n
		return nil
	})
	g.Go(func() error {
		ps, err := s.repo.PriceStats(gctx)
		if err != nil {
			return fmt.Errorf("price stats: %w", err)
		}
		stats.Price = ps
		return nil
	})
	g.Go(func() error {
		groups, err := s.repo.QuantityByCategory(gctx)
		if err != nil {
			return fmt.Errorf("quantity by category: %w", err)
		}
		stats.ByCategory = groups
		return nil
	})
	g.Go(func() error {
		recent, err := s.repo.RecentlyUpdated(gctx, recentUpdatesLimit)
		if err != nil {
			return fmt.Errorf("recent updates: %w", err)
		}
		stats.RecentUpdates = recent
		return nil
	})

	if err := g.Wait(); err != nil {
		s.log.Error().Err(err).Msg("dashboard aggregation failed")
		return nil, err
	}

	if stats.ByCategory == nil {
		stats.ByCategory = []domain.CategoryQuantity{}
	}
	if stats.RecentUpdates == nil {
		stats.RecentUpdates = []domain.Product{}
	}
	return &stats, nil
}
