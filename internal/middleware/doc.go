// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

/*
Package middleware provides HTTP middleware shared by the API router.

Every middleware has the standard func(http.Handler) http.Handler shape so it
plugs directly into chi's r.Use:

  - RequestID: accepts or generates X-Request-ID and X-Correlation-ID,
    stores them as a logging.Trace and attaches a request-scoped zerolog
    logger to the context (see logging.Ctx)
  - PrometheusMetrics: api_requests_total, api_request_duration_seconds and
    api_active_requests, labelled by chi route pattern
  - Compression: pooled gzip writers for clients sending Accept-Encoding: gzip

Typical stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

CORS and rate limiting live in the api package because they are configured
from config.SecurityConfig.
*/
package middleware
