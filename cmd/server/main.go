// Shopsignal - Ad Engagement Analytics and Product Similarity
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/shopsignal

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tomtom215/shopsignal/internal/api"
	"github.com/tomtom215/shopsignal/internal/config"
	"github.com/tomtom215/shopsignal/internal/logging"
	"github.com/tomtom215/shopsignal/internal/shop"
	"github.com/tomtom215/shopsignal/internal/similarity"
	"github.com/tomtom215/shopsignal/internal/store"
	"github.com/tomtom215/shopsignal/internal/supervisor"
	"github.com/tomtom215/shopsignal/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Server.Addr()).
		Float64("similarity_threshold", cfg.Similarity.Threshold).
		Bool("synthetic_purchases", cfg.Shop.SyntheticPurchases).
		Msg("Starting Shopsignal with supervisor tree")

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	stores := store.NewMemoryStores()

	shopSvc := shop.NewService(stores, shop.Config{
		CouponDiscount:     cfg.Shop.CouponDiscount,
		SyntheticPurchases: cfg.Shop.SyntheticPurchases,
	}, shop.WithLogger(logging.Logger()))

	engine := similarity.NewEngine(stores.Events, engineConfig(cfg), logging.Logger())

	computer := similarity.NewBreaker(engine, similarity.BreakerConfig{
		FailureThreshold: cfg.Similarity.BreakerFailures,
		OpenTimeout:      cfg.Similarity.BreakerTimeout,
	}, logging.Logger())

	handler := api.NewHandler(shopSvc, stores, computer,
		api.WithSimilarityTimeout(cfg.Server.HandlerBudget()))
	router := api.NewRouter(handler, middlewareConfig(cfg))

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	if cfg.Similarity.WarmInterval > 0 {
		tree.AddWorkerService(services.NewSimilarityWarmService(engine, services.SimilarityWarmConfig{
			WarmOnStartup: true,
			Interval:      cfg.Similarity.WarmInterval,
		}, logging.WithComponent("similarity-warm")))
		logging.Info().Dur("interval", cfg.Similarity.WarmInterval).Msg("Similarity warm service added")
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info().Msg("Starting supervisor tree...")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree error")
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}

func engineConfig(cfg *config.Config) similarity.EngineConfig {
	return similarity.EngineConfig{
		DefaultThreshold: cfg.Similarity.Threshold,
		Layout: similarity.LayoutOptions{
			K:          cfg.Similarity.SpringK,
			Iterations: cfg.Similarity.Iterations,
			Seed:       cfg.Similarity.Seed,
		},
		CacheSize: cfg.Similarity.CacheSize,
		CacheTTL:  cfg.Similarity.CacheTTL,
	}
}

func middlewareConfig(cfg *config.Config) *api.ChiMiddlewareConfig {
	mw := api.DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = cfg.Security.CORSOrigins
	mw.RateLimitRequests = cfg.Security.RateLimitReqs
	mw.RateLimitWindow = cfg.Security.RateLimitWindow
	mw.RateLimitDisabled = cfg.Security.RateLimitDisabled
	return mw
}
