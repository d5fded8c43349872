// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

/*
Package api provides the HTTP REST API for MovieBot.

Key Components:

  - Router: chi route table and middleware stack (SetupChi)
  - Handler: endpoint handlers backed by the catalog, the favorites store
    and the recommendation engine
  - ChiMiddleware: go-chi/cors and go-chi/httprate factories configured from
    config.SecurityConfig
  - Response helpers: every endpoint answers with models.APIResponse

Endpoints (all under /api/v1):

	GET    /health/live
	GET    /health/ready
	GET    /movies/search?q=&page=&min_votes=
	GET    /movies/discover?genre_id=&year=&min_vote=&min_votes=&sort_by=&page=
	GET    /movies/{id}/recommendations?page=
	GET    /genres
	GET    /favorites
	POST   /favorites
	DELETE /favorites
	GET    /favorites/top-genres?n=3
	GET    /favorites/{id}
	DELETE /favorites/{id}
	GET    /recommendations?limit=&top_genres=

GET /metrics serves Prometheus metrics outside the /api/v1 prefix.

Error Mapping:

Query parameters are validated with go-playground/validator (400
VALIDATION_ERROR). Catalog errors map to 404 for unknown movies, 503 when the
circuit breaker is open or TMDB keeps rate limiting, 504 on timeout and 502
otherwise. Favorites store failures are 500 STORAGE_ERROR.

Usage:

	handler := api.NewHandler(catalogClient, store, engine, logger)
	router := api.NewRouter(handler, api.NewChiMiddlewareFromSecurity(&cfg.Security)).
	    WithMetrics(promhttp.Handler())
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
