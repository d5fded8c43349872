// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// validConfig returns defaults plus the one field that has no default.
func validConfig() *Config {
	cfg := defaultConfig()
	cfg.Catalog.APIKey = "v3-key"
	return cfg
}

// isolateEnv points config and .env lookups at paths that do not exist.
func isolateEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(ConfigPathEnvVar, filepath.Join(dir, "missing.yaml"))
	t.Setenv(DotEnvPathEnvVar, filepath.Join(dir, "missing.env"))
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Catalog.Language != "pt-BR" {
		t.Errorf("Catalog.Language = %q, want pt-BR", cfg.Catalog.Language)
	}
	if cfg.Catalog.Timeout != 10*time.Second {
		t.Errorf("Catalog.Timeout = %v, want 10s", cfg.Catalog.Timeout)
	}
	if cfg.Recommend.MinVoteCount != 30 {
		t.Errorf("Recommend.MinVoteCount = %d, want 30", cfg.Recommend.MinVoteCount)
	}
	if cfg.Recommend.SortBy != "popularity.desc" {
		t.Errorf("Recommend.SortBy = %q, want popularity.desc", cfg.Recommend.SortBy)
	}
	sum := cfg.Recommend.TextWeight + cfg.Recommend.GenreWeight + cfg.Recommend.ScoreWeight
	if sum != 1.0 {
		t.Errorf("default weights sum to %f, want 1", sum)
	}
	if cfg.Favorites.Backend != "file" {
		t.Errorf("Favorites.Backend = %q, want file", cfg.Favorites.Backend)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError string
	}{
		{name: "valid defaults", modify: func(*Config) {}},
		{
			name:   "bearer token only",
			modify: func(c *Config) { c.Catalog.APIKey = ""; c.Catalog.BearerToken = "v4" },
		},
		{
			name:      "missing credentials",
			modify:    func(c *Config) { c.Catalog.APIKey = "  " },
			wantError: "TMDB_API_KEY",
		},
		{
			name:      "port out of range",
			modify:    func(c *Config) { c.Server.Port = 70000 },
			wantError: "HTTP_PORT",
		},
		{
			name:      "unknown environment",
			modify:    func(c *Config) { c.Server.Environment = "qa" },
			wantError: "ENVIRONMENT",
		},
		{
			name:      "bad log level",
			modify:    func(c *Config) { c.Logging.Level = "verbose" },
			wantError: "LOG_LEVEL",
		},
		{
			name:      "bad log format",
			modify:    func(c *Config) { c.Logging.Format = "xml" },
			wantError: "LOG_FORMAT",
		},
		{
			name:      "base url without scheme",
			modify:    func(c *Config) { c.Catalog.BaseURL = "api.themoviedb.org/3" },
			wantError: "TMDB_BASE_URL",
		},
		{
			name:      "base url with query",
			modify:    func(c *Config) { c.Catalog.BaseURL = "https://api.themoviedb.org/3?x=1" },
			wantError: "query parameters",
		},
		{
			name:      "zero timeout",
			modify:    func(c *Config) { c.Catalog.Timeout = 0 },
			wantError: "TMDB_TIMEOUT",
		},
		{
			name:      "redis without url",
			modify:    func(c *Config) { c.Cache.Backend = "redis" },
			wantError: "REDIS_URL",
		},
		{
			name:   "redis with url",
			modify: func(c *Config) { c.Cache.Backend = "redis"; c.Cache.RedisURL = "redis://localhost:6379/0" },
		},
		{
			name:      "unknown cache backend",
			modify:    func(c *Config) { c.Cache.Backend = "memcached" },
			wantError: "CACHE_BACKEND",
		},
		{
			name:      "unknown favorites backend",
			modify:    func(c *Config) { c.Favorites.Backend = "sqlite" },
			wantError: "FAVORITES_BACKEND",
		},
		{
			name:      "empty favorites path",
			modify:    func(c *Config) { c.Favorites.Path = "" },
			wantError: "FAVORITES_PATH",
		},
		{
			name:      "negative weight",
			modify:    func(c *Config) { c.Recommend.TextWeight = -0.1; c.Recommend.GenreWeight = 0.9 },
			wantError: ">= 0",
		},
		{
			name:      "weights do not sum to one",
			modify:    func(c *Config) { c.Recommend.TextWeight = 0.6 },
			wantError: "sum to 1.0",
		},
		{
			name:      "default limit above max",
			modify:    func(c *Config) { c.Recommend.DefaultLimit = 200 },
			wantError: "RECOMMEND_DEFAULT_LIMIT",
		},
		{
			name:      "rate limit without window",
			modify:    func(c *Config) { c.Security.RateLimitWindow = 0 },
			wantError: "RATE_LIMIT",
		},
		{
			name: "rate limit disabled ignores window",
			modify: func(c *Config) {
				c.Security.RateLimitWindow = 0
				c.Security.RateLimitDisabled = true
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantError == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantError)
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Validate() error = %q, want it to contain %q", err, tt.wantError)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 9000}
	if got := s.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q", got)
	}
	s.Host = "::1"
	if got := s.Addr(); got != "[::1]:9000" {
		t.Errorf("Addr() = %q", got)
	}
}
