package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stockwise/inventory-system/internal/api/middleware"
	"github.com/stockwise/inventory-system/internal/core/domain"
)

// ctxIdentity returns the identity exposed by the Gate middleware. Routes
// behind the gate always have one; its absence means the route was wired
// outside the protected set.
func ctxIdentity(c echo.Context) (domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return domain.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing session identity")
	}
	return id, nil
}
