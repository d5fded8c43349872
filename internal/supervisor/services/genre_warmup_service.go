// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GenreLoader fetches the catalog genre map. catalog.Service satisfies it;
// with a caching client each call refreshes the cached genre list.
type GenreLoader interface {
	Genres(ctx context.Context) (map[string]int, error)
}

// GenreWarmupConfig holds configuration for the genre warmup service.
type GenreWarmupConfig struct {
	// Interval is how often the genre list is re-fetched.
	// Default: 1h
	Interval time.Duration

	// Timeout bounds each fetch.
	// Default: 30s
	Timeout time.Duration
}

// GenreWarmupService loads the genre list on startup and then on every
// Interval, so the first user request after a cache expiry does not pay
// for the round trip. Fetch failures are logged and retried on the next
// tick; they never stop the service.
type GenreWarmupService struct {
	loader GenreLoader
	config GenreWarmupConfig
	logger zerolog.Logger
	name   string
}

// NewGenreWarmupService creates the warmup service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewGenreWarmupService(loader GenreLoader, cfg GenreWarmupConfig, logger zerolog.Logger) *GenreWarmupService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GenreWarmupService{
		loader: loader,
		config: cfg,
		logger: logger.With().Str("service", "genre-warmup").Logger(),
		name:   "genre-warmup",
	}
}

// Serve implements suture.Service.
func (s *GenreWarmupService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.config.Interval).Msg("genre warmup starting")
	s.refresh(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *GenreWarmupService) refresh(ctx context.Context) {
	fetchCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	genres, err := s.loader.Genres(fetchCtx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		s.logger.Warn().Err(err).Msg("genre refresh failed, retrying on next tick")
		return
	}
	s.logger.Debug().
		Int("genres", len(genres)).
		Dur("duration", time.Since(start)).
		Msg("genre list refreshed")
}

// String returns the service name for logging.
func (s *GenreWarmupService) String() string {
	return s.name
}
