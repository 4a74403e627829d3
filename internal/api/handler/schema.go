package handler

import "github.com/stockwise/inventory-system/internal/core/domain"

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type loginEntryResponse struct {
	Message  string           `json:"message"`
	LoginURL string           `json:"login_url"`
	User     *domain.Identity `json:"user"`
}

type homeResponse struct {
	User *domain.Identity `json:"user"`
}

type createProductRequest struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Quantity *int64   `json:"quantity" validate:"omitempty,gte=0"`
	Category *string  `json:"category" validate:"omitempty,max=100"`
	InStock  *bool    `json:"in_stock"`
}

type updateProductRequest struct {
	Name     string   `json:"name" validate:"required,max=200"`
	Price    *float64 `json:"price" validate:"required,gte=0"`
	Quantity *int64   `json:"quantity" validate:"required,gte=0"`
	Category *string  `json:"category" validate:"omitempty,max=100"`
	InStock  *bool    `json:"in_stock" validate:"required"`
}

type productListResponse struct {
	Data []domain.Product `json:"data"`
}

type dashboardResponse struct {
	TotalProducts   int64                     `json:"total_products"`
	InStockQuantity int64                     `json:"in_stock_quantity"`
	Price           domain.PriceStats         `json:"price"`
	ByCategory      []domain.CategoryQuantity `json:"by_category"`
	RecentUpdates   []domain.Product          `json:"recent_updates"`
}

type errorBody struct {
	Error string `json:"error"`
}
