// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

/*
Package supervisor provides process supervision for MovieBot using suture v4.

# Overview

Long-running services are organized into three layers:

	RootSupervisor ("moviebot")
	├── DataSupervisor ("data-layer")
	│   └── cache janitor (memory cache backend only)
	├── CatalogSupervisor ("catalog-layer")
	│   └── GenreWarmupService (if TMDB_GENRE_REFRESH > 0)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's decaying failure counter;
a service that keeps failing backs off for FailureBackoff before the next
restart. Each layer counts failures independently.

Supervisor events (start, stop, panic, backoff) are logged through
sutureslog, backed by the zerolog logger via logging.NewSlogLogger.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
	    ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
	    return err
	}

	tree.AddDataService(memCache)
	tree.AddCatalogService(services.NewGenreWarmupService(catalogClient, warmupCfg, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("supervisor stopped")
	}
*/
package supervisor
