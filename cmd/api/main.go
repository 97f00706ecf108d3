package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/bellakids/storefront-backend/api/routes"
	authsvc "github.com/bellakids/storefront-backend/internal/auth"
	cartsvc "github.com/bellakids/storefront-backend/internal/cart"
	"github.com/bellakids/storefront-backend/internal/catalog"
	"github.com/bellakids/storefront-backend/internal/media"
	ordersvc "github.com/bellakids/storefront-backend/internal/order"
	"github.com/bellakids/storefront-backend/pkg/auth/session"
	"github.com/bellakids/storefront-backend/pkg/config"
	"github.com/bellakids/storefront-backend/pkg/db"
	"github.com/bellakids/storefront-backend/pkg/logger"
	"github.com/bellakids/storefront-backend/pkg/metrics"
	"github.com/bellakids/storefront-backend/pkg/migrate"
	"github.com/bellakids/storefront-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	uploadStore, err := media.NewStore(cfg.Uploads)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare upload store", err)
		os.Exit(1)
	}

	catalogRepo := catalog.NewRepository(dbClient.DB())

	catalogService, err := catalog.NewService(catalogRepo, uploadStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	regions := ordersvc.DefaultRegionSet()

	cartStore, err := cartsvc.NewStore(redisClient, cfg.Cart)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(cartStore, catalogRepo, uploadStore, regions)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(cartService, catalogRepo, regions, cfg.Shop.WhatsAppPhone, cfg.Shop.Currency)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(cfg.JWT, cfg.Admin, cfg.Password, sessionManager)
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
		Handler: routes.NewRouter(routes.Deps{
			Config:          cfg,
			Logger:          logg,
			DB:              dbClient,
			Redis:           redisClient,
			Sessions:        sessionManager,
			Catalog:         catalogService,
			Cart:            cartService,
			Order:           orderService,
			Auth:            authService,
			Uploads:         uploadStore,
			Metrics:         httpMetrics,
			MetricsGatherer: registry,
		}),
	}

	shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-shutdownCtx.Done():
		logg.Info(ctx, "shutting down api server")
		timeout, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := server.Shutdown(timeout); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
