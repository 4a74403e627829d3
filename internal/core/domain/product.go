package domain

import "time"

// DefaultQuantity is applied when a product is created without a quantity.
const DefaultQuantity = 1

// Product is a stock record managed by store keepers.
type Product struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Quantity  int64     `json:"quantity"`
	Category  *string   `json:"category,omitempty"`
	InStock   bool      `json:"in_stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PriceStats holds price statistics over all products. The fields are nil
// when there are no products.
type PriceStats struct {
	Avg *float64 `json:"avg"`
	Max *float64 `json:"max"`
	Min *float64 `json:"min"`
}

// CategoryQuantity is the total quantity of one category. A nil Category is
// the bucket of products without a label.
type CategoryQuantity struct {
	Category *string `json:"category"`
	Quantity int64   `json:"quantity"`
}

// DashboardStats is the combined result of the dashboard aggregations.
type DashboardStats struct {
	TotalProducts   int64              `json:"total_products"`
	InStockQuantity int64              `json:"in_stock_quantity"`
	Price           PriceStats         `json:"price"`
	ByCategory      []CategoryQuantity `json:"by_category"`
	RecentUpdates   []Product          `json:"recent_updates"`
}
