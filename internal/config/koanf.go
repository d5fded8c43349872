// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists config file locations in priority order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/moviebot/config.yaml",
	"/etc/moviebot/config.yml",
}

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DotEnvPathEnvVar overrides the .env file location.
const DotEnvPathEnvVar = "DOTENV_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Catalog: CatalogConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			Language:          "pt-BR",
			IncludeAdult:      false,
			Timeout:           10 * time.Second,
			MaxRetries:        3,
			RetryBaseDelay:    time.Second,
			RequestsPerSecond: 20,
			Burst:             10,
			GenreRefresh:      time.Hour,
		},
		Cache: CacheConfig{
			Backend:         "memory",
			TTL:             5 * time.Minute,
			CleanupInterval: 5 * time.Minute,
			KeyPrefix:       "moviebot:catalog:",
		},
		Favorites: FavoritesConfig{
			Backend: "file",
			Path:    "favorites.json",
		},
		Recommend: RecommendConfig{
			TextWeight:    0.5,
			GenreWeight:   0.3,
			ScoreWeight:   0.2,
			TopGenres:     3,
			PerGenreLimit: 20,
			MaxCandidates: 60,
			MinVoteCount:  30,
			SortBy:        "popularity.desc",
			QueryTimeout:  10 * time.Second,
			Concurrency:   3,
			MaxFeatures:   5000,
			DefaultLimit:  20,
			MaxLimit:      100,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{},
			RateLimitReqs:     100,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
	}
}

// LoadWithKoanf builds the configuration from defaults, an optional YAML
// file and the environment, then validates it.
func LoadWithKoanf() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// TMDB_API_KEY_V3 -> catalog.api_key, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads .env (or DOTENV_PATH) into the process environment.
// Variables already set win. A missing file is not an error.
func loadDotEnv() error {
	path := os.Getenv(DotEnvPathEnvVar)
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields splits comma-separated env values for slice fields.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lower-cased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// TMDB catalog. TMDB_API_KEY carries the v4 bearer token and
	// TMDB_API_KEY_V3 the short key, matching the names used in .env files.
	"tmdb_base_url":            "catalog.base_url",
	"tmdb_api_key_v3":          "catalog.api_key",
	"tmdb_api_key":             "catalog.bearer_token",
	"tmdb_language":            "catalog.language",
	"tmdb_include_adult":       "catalog.include_adult",
	"tmdb_timeout":             "catalog.timeout",
	"tmdb_max_retries":         "catalog.max_retries",
	"tmdb_retry_base_delay":    "catalog.retry_base_delay",
	"tmdb_requests_per_second": "catalog.requests_per_second",
	"tmdb_burst":               "catalog.burst",
	"tmdb_genre_refresh":       "catalog.genre_refresh",

	// Catalog cache
	"cache_backend":          "cache.backend",
	"cache_ttl":              "cache.ttl",
	"cache_cleanup_interval": "cache.cleanup_interval",
	"redis_url":              "cache.redis_url",
	"cache_key_prefix":       "cache.key_prefix",

	// Favorites
	"favorites_backend": "favorites.backend",
	"favorites_path":    "favorites.path",

	// Recommender
	"recommend_text_weight":     "recommend.text_weight",
	"recommend_genre_weight":    "recommend.genre_weight",
	"recommend_score_weight":    "recommend.score_weight",
	"recommend_top_genres":      "recommend.top_genres",
	"recommend_per_genre_limit": "recommend.per_genre_limit",
	"recommend_max_candidates":  "recommend.max_candidates",
	"recommend_min_vote_count":  "recommend.min_vote_count",
	"recommend_sort_by":         "recommend.sort_by",
	"recommend_query_timeout":   "recommend.query_timeout",
	"recommend_concurrency":     "recommend.concurrency",
	"recommend_max_features":    "recommend.max_features",
	"recommend_default_limit":   "recommend.default_limit",
	"recommend_max_limit":       "recommend.max_limit",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
}

// envTransformFunc returns the koanf path for an environment variable, or ""
// to skip it.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}
