// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

/*
Package catalog is the TMDB v3 client.

Endpoints:
  - /search/movie            SearchMovies
  - /discover/movie          Discover, DiscoverByGenre
  - /movie/{id}/recommendations  MovieRecommendations
  - /genre/movie/list        GenreList, Genres

# Authentication

When a v3 key is configured it is sent as the api_key query parameter.
Otherwise the v4 read token is sent as "Authorization: Bearer <token>".
Credentials never take part in cache keys or log lines.

# Resilience

Every request goes through, in order:
  - the response cache (cache.Cacher, optional)
  - an outbound token bucket (golang.org/x/time/rate)
  - a retry loop for HTTP 429 with exponential backoff that honours
    Retry-After

CircuitBreakerClient wraps Client with sony/gobreaker so a failing TMDB
stops receiving traffic for a while instead of stalling every request.
Not-found and cancelled requests do not count as breaker failures.

# Errors

Non-200 responses map to ErrUnauthorized (401), ErrNotFound (404) or a
*StatusError carrying at most 64KB of the response body.
*/
package catalog
