package handler

import (
	"math"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/stockwise/inventory-system/internal/api/metrics"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

type DashboardHandler struct {
	dashboard ports.DashboardService
}

func NewDashboardHandler(dashboard ports.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Stats returns the manager dashboard aggregates. The average price is
// rounded to two decimals.
//
// @Summary      Dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Failure      302
// @Failure      403  {object}  errorBody
// @Failure      500  {object}  errorBody
// @Router       /dashboard [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	start := time.Now()
	stats, err := h.dashboard.Stats(c.Request().Context())
	if err != nil {
		metrics.DashboardAggregationDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return err
	}
	metrics.DashboardAggregationDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	price := stats.Price
	if price.Avg != nil {
		rounded := math.Round(*price.Avg*100) / 100
		price.Avg = &rounded
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		TotalProducts:   stats.TotalProducts,
		InStockQuantity: stats.InStockQuantity,
		Price:           price,
		ByCategory:      stats.ByCategory,
		RecentUpdates:   stats.RecentUpdates,
	})
}
