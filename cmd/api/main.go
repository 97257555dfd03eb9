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

	"github.com/vitrinalabs/storefront-backend/api/routes"
	"github.com/vitrinalabs/storefront-backend/internal/cart"
	"github.com/vitrinalabs/storefront-backend/internal/catalog"
	"github.com/vitrinalabs/storefront-backend/internal/prefs"
	"github.com/vitrinalabs/storefront-backend/internal/pricebounds"
	"github.com/vitrinalabs/storefront-backend/internal/quotation"
	"github.com/vitrinalabs/storefront-backend/pkg/cms"
	"github.com/vitrinalabs/storefront-backend/pkg/config"
	"github.com/vitrinalabs/storefront-backend/pkg/logger"
	"github.com/vitrinalabs/storefront-backend/pkg/metrics"
	"github.com/vitrinalabs/storefront-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)
	catalogMetrics := metrics.NewCatalogMetrics(registry)

	cmsClient := cms.New(cfg.CMS)

	catalogService, err := catalog.NewService(cmsClient, catalogMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	boundsResolver, err := pricebounds.NewResolver(cmsClient, logg, cfg.Catalog)
	if err != nil {
		logg.Error(context.Background(), "failed to create price bound resolver", err)
		os.Exit(1)
	}

	cartStorage, err := cart.NewRedisStorage(redisClient, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart storage", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStorage, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	quotationService, err := quotation.NewService(redisClient, cfg.Quotation.DraftTTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create quotation service", err)
		os.Exit(1)
	}

	prefsService, err := prefs.NewService(redisClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create prefs service", err)
		os.Exit(1)
	}

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
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:      cfg,
			Logger:      logg,
			Redis:       redisClient,
			CMS:         cmsClient,
			Catalog:     catalogService,
			PriceBounds: boundsResolver,
			Cart:        cartService,
			Quotation:   quotationService,
			Prefs:       prefsService,
			HTTPMetrics: httpMetrics,
			Registry:    registry,
		}),
	}

	stopCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
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
	case <-stopCtx.Done():
		logg.Info(ctx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
		}
	}
}
