// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/moviebot-dev/moviebot/internal/api"
	"github.com/moviebot-dev/moviebot/internal/cache"
	"github.com/moviebot-dev/moviebot/internal/catalog"
	"github.com/moviebot-dev/moviebot/internal/config"
	"github.com/moviebot-dev/moviebot/internal/favorites"
	"github.com/moviebot-dev/moviebot/internal/logging"
	"github.com/moviebot-dev/moviebot/internal/metrics"
	"github.com/moviebot-dev/moviebot/internal/recommend"
	"github.com/moviebot-dev/moviebot/internal/supervisor"
	"github.com/moviebot-dev/moviebot/internal/supervisor/services"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

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
	metrics.SetAppInfo(version)

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("favorites_backend", cfg.Favorites.Backend).
		Str("cache_backend", cfg.Cache.Backend).
		Msg("Starting MovieBot")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("MovieBot stopped with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

//nolint:gocyclo // sequential wiring of every component
func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slogLogger := logging.NewSlogLogger()
	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	// === CATALOG ===

	responseCache, err := cache.Open(ctx, cache.Config{
		Name:            "catalog",
		Backend:         cfg.Cache.Backend,
		TTL:             cfg.Cache.TTL,
		CleanupInterval: cfg.Cache.CleanupInterval,
		RedisURL:        cfg.Cache.RedisURL,
		KeyPrefix:       cfg.Cache.KeyPrefix,
	})
	if err != nil {
		return err
	}
	switch c := responseCache.(type) {
	case *cache.Cache:
		tree.AddDataService(c)
	case *cache.RedisCache:
		defer closeLogged("redis cache", c.Close)
	}

	client := catalog.NewClient(&cfg.Catalog, responseCache, logging.WithComponent("catalog"))
	catalogClient := catalog.NewCircuitBreakerClient(client, catalog.DefaultBreakerSettings())

	if cfg.Catalog.GenreRefresh > 0 {
		tree.AddCatalogService(services.NewGenreWarmupService(catalogClient, services.GenreWarmupConfig{
			Interval: cfg.Catalog.GenreRefresh,
			Timeout:  cfg.Catalog.Timeout,
		}, logging.Logger()))
	}

	// === FAVORITES AND ENGINE ===

	store, err := favorites.Open(&cfg.Favorites, logging.Logger())
	if err != nil {
		return err
	}
	defer closeLogged("favorites store", store.Close)

	engine, err := recommend.NewEngine(recommend.FromSettings(&cfg.Recommend), catalogClient, store, logging.Logger())
	if err != nil {
		return err
	}

	// === HTTP ===

	handler := api.NewHandler(catalogClient, store, engine, logging.WithComponent("api"))
	router := api.NewRouter(handler, api.NewChiMiddlewareFromSecurity(&cfg.Security)).
		WithMetrics(promhttp.Handler())

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.SetupChi(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	// === START SUPERVISOR TREE ===

	logging.Info().Msg("Starting supervisor tree...")
	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func closeLogged(name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logging.Error().Err(err).Str("resource", name).Msg("Error closing resource")
	}
}
