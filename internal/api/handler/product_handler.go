package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockwise/inventory-system/internal/api/metrics"
	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

type ProductHandler struct {
	products ports.ProductService
}

func NewProductHandler(products ports.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns every product.
//
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {object}  productListResponse
// @Failure      302
// @Failure      500  {object}  errorBody
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	items, err := h.products.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productListResponse{Data: items})
}

// Create adds a product. Quantity defaults to 1 and in_stock to true.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      createProductRequest  true  "Product"
// @Success      201   {object}  domain.Product
// @Failure      400   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
	}

	p, err := h.products.Create(c.Request().Context(), ports.CreateProductInput{
		Name:     req.Name,
		Price:    *req.Price,
		Quantity: req.Quantity,
		Category: req.Category,
		InStock:  req.InStock,
	})
	if err != nil {
		return err
	}
	metrics.ProductsWrittenTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, p)
}

// Update replaces the mutable fields of a product.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Product ID"
// @Param        body  body      updateProductRequest  true  "Product"
// @Success      200   {object}  domain.Product
// @Failure      400   {object}  errorBody
// @Failure      404   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	if _, err := ctxIdentity(c); err != nil {
		return err
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
	}

	p, err := h.products.Update(c.Request().Context(), c.Param("id"), ports.UpdateProductInput{
		Name:     req.Name,
		Price:    *req.Price,
		Quantity: *req.Quantity,
		Category: req.Category,
		InStock:  *req.InStock,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, errorBody{Error: "product not found"})
		}
		return err
	}
	metrics.ProductsWrittenTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, p)
}
