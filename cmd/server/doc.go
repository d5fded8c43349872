// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

/*
Package main is the entry point for the MovieBot server.

MovieBot keeps a list of favorite movies and recommends new ones from TMDB
by blending overview text similarity, genre affinity and a rating and
popularity composite.

# Application Architecture

Components are wired in this order:

 1. Configuration: defaults, optional config.yaml, .env and environment (Koanf v2)
 2. Logging: zerolog, bridged to slog for the supervisor
 3. Catalog: TMDB client behind a response cache (memory or redis) and a
    gobreaker circuit breaker
 4. Favorites: JSON file or BadgerDB store
 5. Recommendation engine
 6. HTTP API: chi router under /api/v1 plus /metrics

Long-running services run under a suture v4 tree:

	RootSupervisor ("moviebot")
	├── DataSupervisor ("data-layer")
	│   └── cache-janitor-catalog (memory backend)
	├── CatalogSupervisor ("catalog-layer")
	│   └── genre-warmup
	└── APISupervisor ("api-layer")
	    └── http-server

# Configuration

Required:
  - TMDB_API_KEY (v4 read access token) or TMDB_API_KEY_V3

Common:
  - HTTP_PORT, LOG_LEVEL, LOG_FORMAT
  - FAVORITES_BACKEND (file or badger), FAVORITES_PATH
  - CACHE_BACKEND (memory or redis), REDIS_URL
  - RECOMMEND_TEXT_WEIGHT, RECOMMEND_GENRE_WEIGHT, RECOMMEND_SCORE_WEIGHT

# Signal Handling

SIGINT and SIGTERM cancel the tree. The HTTP server drains in-flight
requests for up to HTTP_SHUTDOWN_TIMEOUT, then the favorites store is closed.

# Example Usage

	export TMDB_API_KEY=eyJhbGciOi...
	export LOG_FORMAT=console
	./moviebot

	curl -X POST localhost:8080/api/v1/favorites -d '{"id":603,"title":"Matrix","genre_ids":[28,878]}'
	curl localhost:8080/api/v1/recommendations?limit=10
*/
package main
