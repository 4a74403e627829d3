package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/stockwise/inventory-system/docs"
	"github.com/stockwise/inventory-system/internal/api/handler"
	"github.com/stockwise/inventory-system/internal/api/middleware"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

// LoginPath is where the gate sends anonymous callers and logout lands.
const LoginPath = "/login"

// Deps are the services and policies the router wires into handlers.
type Deps struct {
	Auth       ports.AuthService
	Sessions   ports.SessionManager
	Products   ports.ProductService
	Dashboard  ports.DashboardService
	Cookies    *middleware.CookieCodec
	SessionTTL time.Duration
	Policy     middleware.AccessPolicy
	Readiness  map[string]handler.Check
	Log        zerolog.Logger
	// Metrics receives the HTTP collectors and backs /metrics. Defaults to
	// the global Prometheus registry.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Metrics != nil {
		registerer, gatherer = d.Metrics, d.Metrics
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "inventory_http",
		Registerer: registerer,
	}))
	e.Use(middleware.SessionWithConfig(d.Sessions, d.Cookies, middleware.SessionConfig{
		Skipper: operationalRoute,
	}))
	e.Use(middleware.Gate(d.Policy))

	// --- Operational routes ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Readiness)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions, d.Cookies, d.SessionTTL, LoginPath, d.Log)
	e.GET("/", authHandler.Home)
	e.GET(LoginPath, authHandler.LoginEntry)
	e.POST("/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)

	// --- Inventory routes (behind the gate) ---
	productHandler := handler.NewProductHandler(d.Products)
	e.GET("/products", productHandler.List)
	e.POST("/products", productHandler.Create)
	e.PUT("/products/:id", productHandler.Update)

	dashboardHandler := handler.NewDashboardHandler(d.Dashboard)
	e.GET("/dashboard", dashboardHandler.Stats)

	return e
}

// operationalRoute reports whether the matched route is a health, metrics or
// docs endpoint. Those never touch the session store.
func operationalRoute(c echo.Context) bool {
	switch c.Path() {
	case "/health", "/health/ready", "/metrics", "/swagger/*":
		return true
	}
	return false
}
