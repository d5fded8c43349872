// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

/*
Package metrics provides Prometheus metrics for MovieBot.

All collectors are registered on the default registry through promauto and
exposed at /metrics by the API router:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP Metrics:
  - api_requests_total: Total API requests (counter)
    Labels: method, endpoint, status_code
  - api_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - api_active_requests: In-flight requests (gauge)
  - api_rate_limit_hits_total: Rejected by the rate limiter (counter)
    Labels: endpoint

Catalog Metrics:
  - catalog_requests_total: Outbound TMDB calls (counter)
    Labels: endpoint, status
  - catalog_request_duration_seconds: TMDB call latency (histogram)
    Labels: endpoint
  - catalog_retries_total: 429 retries (counter)
    Labels: endpoint

Circuit Breaker Metrics:
  - circuit_breaker_state: 0=closed, 1=half-open, 2=open (gauge)
    Labels: name
  - circuit_breaker_requests_total: Requests by result (counter)
    Labels: name, result (success, failure, rejected)
  - circuit_breaker_consecutive_failures: (gauge)
    Labels: name
  - circuit_breaker_transitions_total: (counter)
    Labels: name, from, to

Cache Metrics:
  - cache_hits_total, cache_misses_total, cache_evictions_total (counter)
    Labels: cache_type
  - cache_entries: Current entry count (gauge)
    Labels: cache_type

Recommendation Metrics:
  - recommend_requests_total: (counter)
    Labels: outcome (personalized, empty, error)
  - recommend_duration_seconds: End-to-end latency (histogram)
  - recommend_candidates: Candidate pool size per request (histogram)
  - recommend_genre_query_failures_total: Skipped genres (counter)
    Labels: genre_id

Favorites Metrics:
  - favorites_stored: Stored favorites (gauge)
  - favorites_operations_total: (counter)
    Labels: operation, result
*/
package metrics
