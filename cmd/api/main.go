package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/api"
	"github.com/stockwise/inventory-system/internal/api/handler"
	"github.com/stockwise/inventory-system/internal/api/middleware"
	"github.com/stockwise/inventory-system/internal/core/ports"
	"github.com/stockwise/inventory-system/internal/core/service"
	"github.com/stockwise/inventory-system/internal/infrastructure/db/memory"
	mongodb "github.com/stockwise/inventory-system/internal/infrastructure/db/mongo"
	redisdb "github.com/stockwise/inventory-system/internal/infrastructure/db/redis"
	"github.com/stockwise/inventory-system/internal/infrastructure/queue"
	"github.com/stockwise/inventory-system/internal/pkg/config"
	"github.com/stockwise/inventory-system/pkg/logger"
)

// @title        Inventory API
// @version      1.0
// @description  Inventory backend: accounts, sessions, products and the manager dashboard.
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "inventory-api",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StorageDriver).Msg("storage unavailable")
	}
	defer store.close()

	// --- Auth activity trail ---
	dispatcher := queue.NewDispatcher(
		cfg.Auth.EventWorkers,
		service.NewAuthEventService(store.events, logger.Component("auth_events")),
		logger.Component("dispatcher"),
	)
	dispatcher.Start(ctx)

	// --- Core services ---
	authService := service.NewAuthService(store.users, service.NewBcryptHasher(cfg.Auth.BcryptCost), dispatcher, logger.Component("auth"))
	sessionManager := service.NewSessionManager(store.sessions, cfg.Session.TTL, dispatcher, logger.Component("sessions"))
	productService := service.NewProductService(store.products, logger.Component("products"))
	dashboardService := service.NewDashboardService(store.products, cfg.Dashboard.Timeout, logger.Component("dashboard"))

	policy, err := middleware.NewAccessPolicy(cfg.Access.ProtectedPaths, cfg.Access.ManagerPaths, api.LoginPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid access policy")
	}

	router := api.NewRouter(api.Deps{
		Auth:       authService,
		Sessions:   sessionManager,
		Products:   productService,
		Dashboard:  dashboardService,
		Cookies:    middleware.NewCookieCodec(cfg.Session.Secret, !cfg.IsDevelopment()),
		SessionTTL: sessionManager.TTL(),
		Policy:     policy,
		Readiness:  store.checks,
		Log:        logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Str("driver", cfg.StorageDriver).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	cancel()
	dispatcher.Wait()
	log.Info().Msg("shutdown complete")
}

// storage bundles the repositories for the configured driver.
type storage struct {
	users    ports.UserRepository
	products ports.ProductRepository
	sessions ports.SessionStore
	events   ports.AuthEventRepository
	checks   map[string]handler.Check
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.StorageDriver == config.StorageMemory {
		log.Warn().Msg("using in-memory storage; data is lost on restart")
		return &storage{
			users:    memory.NewUserRepository(),
			products: memory.NewProductRepository(),
			sessions: memory.NewSessionStore(),
			events:   memory.NewAuthEventRepository(),
			close:    func() {},
		}, nil
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("redis: %w", err)
	}

	return &storage{
		users:    mongodb.NewUserRepository(db),
		products: mongodb.NewProductRepository(db),
		sessions: redisdb.NewSessionStore(rdb),
		events:   mongodb.NewAuthEventRepository(db),
		checks: map[string]handler.Check{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		close: func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(ctx); err != nil {
				log.Error().Err(err).Msg("mongo disconnect failed")
			}
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close failed")
			}
		},
	}, nil
}
