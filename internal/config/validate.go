// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package config

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/moviebot-dev/moviebot/internal/logging"
)

// weightTolerance is the allowed drift of the recommender weight sum from 1.
const weightTolerance = 1e-9

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateFavorites(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	return c.validateSecurity()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.Server.Environment {
	case "development", "staging", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development, staging or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL %q is not a valid level", c.Logging.Level)
	}
	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if err := validateHTTPURL(c.Catalog.BaseURL, "TMDB_BASE_URL"); err != nil {
		return err
	}
	if strings.TrimSpace(c.Catalog.APIKey) == "" && strings.TrimSpace(c.Catalog.BearerToken) == "" {
		return fmt.Errorf("TMDB_API_KEY_V3 or TMDB_API_KEY is required")
	}
	if c.Catalog.Timeout <= 0 {
		return fmt.Errorf("TMDB_TIMEOUT must be positive, got %v", c.Catalog.Timeout)
	}
	if c.Catalog.MaxRetries < 0 {
		return fmt.Errorf("TMDB_MAX_RETRIES must be >= 0, got %d", c.Catalog.MaxRetries)
	}
	if c.Catalog.RequestsPerSecond < 0 {
		return fmt.Errorf("TMDB_REQUESTS_PER_SECOND must be >= 0, got %f", c.Catalog.RequestsPerSecond)
	}
	if c.Catalog.GenreRefresh < 0 {
		return fmt.Errorf("TMDB_GENRE_REFRESH must be >= 0, got %v", c.Catalog.GenreRefresh)
	}
	if c.Catalog.RequestsPerSecond > 0 && c.Catalog.Burst < 1 {
		return fmt.Errorf("TMDB_BURST must be >= 1 when rate limiting is enabled, got %d", c.Catalog.Burst)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Backend {
	case "memory":
	case "redis":
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when CACHE_BACKEND=redis")
		}
	default:
		return fmt.Errorf("CACHE_BACKEND must be memory or redis, got %q", c.Cache.Backend)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", c.Cache.TTL)
	}
	return nil
}

func (c *Config) validateFavorites() error {
	if c.Favorites.Backend != "file" && c.Favorites.Backend != "badger" {
		return fmt.Errorf("FAVORITES_BACKEND must be file or badger, got %q", c.Favorites.Backend)
	}
	if strings.TrimSpace(c.Favorites.Path) == "" {
		return fmt.Errorf("FAVORITES_PATH is required")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.TextWeight < 0 || r.GenreWeight < 0 || r.ScoreWeight < 0 {
		return fmt.Errorf("recommend weights must be >= 0, got text=%f genre=%f score=%f",
			r.TextWeight, r.GenreWeight, r.ScoreWeight)
	}
	if sum := r.TextWeight + r.GenreWeight + r.ScoreWeight; math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("recommend weights must sum to 1.0, got %f", sum)
	}
	if r.TopGenres < 1 {
		return fmt.Errorf("RECOMMEND_TOP_GENRES must be >= 1, got %d", r.TopGenres)
	}
	if r.PerGenreLimit < 1 || r.MaxCandidates < 1 {
		return fmt.Errorf("RECOMMEND_PER_GENRE_LIMIT and RECOMMEND_MAX_CANDIDATES must be >= 1")
	}
	if r.QueryTimeout <= 0 {
		return fmt.Errorf("RECOMMEND_QUERY_TIMEOUT must be positive, got %v", r.QueryTimeout)
	}
	if r.MaxFeatures < 1 {
		return fmt.Errorf("RECOMMEND_MAX_FEATURES must be >= 1, got %d", r.MaxFeatures)
	}
	if r.DefaultLimit < 1 || r.MaxLimit < r.DefaultLimit {
		return fmt.Errorf("RECOMMEND_DEFAULT_LIMIT must be >= 1 and <= RECOMMEND_MAX_LIMIT")
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 || c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

// validateHTTPURL checks scheme and host. Unlike the server URLs it allows a
// path, since the TMDB root is versioned (/3).
func validateHTTPURL(rawURL, fieldName string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %q", fieldName, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsed.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsed.RawQuery)
	}
	return nil
}
