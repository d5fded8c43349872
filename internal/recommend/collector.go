// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package recommend

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/moviebot-dev/moviebot/internal/metrics"
	"github.com/moviebot-dev/moviebot/internal/models"
)

// Collector gathers candidates from the catalog, one discover query per
// genre.
type Collector struct {
	catalog       CatalogQuerier
	perGenreLimit int
	maxCandidates int
	minVoteCount  int
	sortBy        string
	queryTimeout  time.Duration
	concurrency   int
	logger        zerolog.Logger
}

// NewCollector builds a collector from cfg. cfg is assumed valid.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCollector(catalog CatalogQuerier, cfg *Config, logger zerolog.Logger) *Collector {
	return &Collector{
		catalog:       catalog,
		perGenreLimit: cfg.PerGenreLimit,
		maxCandidates: cfg.MaxCandidates,
		minVoteCount:  cfg.MinVoteCount,
		sortBy:        cfg.SortBy,
		queryTimeout:  cfg.QueryTimeout,
		concurrency:   cfg.Concurrency,
		logger:        logger,
	}
}

// Collect queries each genre in order and merges the results into a pool.
//
// At most perGenreLimit results are taken from each genre, favorites are
// skipped, and collection stops once the pool holds maxCandidates movies:
// genres past that point are never queried. A genre whose query fails or
// times out contributes nothing. The only error returned is ctx's own.
func (c *Collector) Collect(ctx context.Context, genres []int, favorites []models.FavoriteItem) (*CandidatePool, error) {
	pool := NewCandidatePool(c.maxCandidates)
	if len(genres) == 0 || c.maxCandidates <= 0 {
		return pool, nil
	}

	exclude := make(map[int]struct{}, len(favorites))
	for i := range favorites {
		exclude[favorites[i].ID] = struct{}{}
	}

	if c.concurrency <= 1 {
		for _, g := range genres {
			if pool.Full() {
				break
			}
			movies, err := c.query(ctx, g)
			if err != nil {
				return nil, err
			}
			c.merge(pool, movies, exclude)
		}
		return pool, nil
	}

	if err := c.collectConcurrent(ctx, genres, pool, exclude); err != nil {
		return nil, err
	}
	return pool, nil
}

// merge adds up to perGenreLimit results of one genre to pool.
func (c *Collector) merge(pool *CandidatePool, movies []models.Movie, exclude map[int]struct{}) {
	if len(movies) > c.perGenreLimit {
		movies = movies[:c.perGenreLimit]
	}
	for i := range movies {
		if pool.Full() {
			return
		}
		if _, fav := exclude[movies[i].ID]; fav {
			continue
		}
		pool.Put(&movies[i])
	}
}

// collectConcurrent keeps at most concurrency queries running ahead of the
// merge. Results are merged in genre order, and genre i+concurrency is only
// queried after genre i has been merged without filling the pool.
func (c *Collector) collectConcurrent(ctx context.Context, genres []int, pool *CandidatePool, exclude map[int]struct{}) error {
	results := make([][]models.Movie, len(genres))
	done := make([]chan struct{}, len(genres))

	var g errgroup.Group
	g.SetLimit(c.concurrency)
	launch := func(i int) {
		done[i] = make(chan struct{})
		g.Go(func() error {
			defer close(done[i])
			movies, err := c.query(ctx, genres[i])
			if err != nil {
				return err
			}
			results[i] = movies
			return nil
		})
	}

	next := 0
	for ; next < len(genres) && next < c.concurrency; next++ {
		launch(next)
	}
	for i := range genres {
		<-done[i]
		if ctx.Err() != nil {
			break
		}
		c.merge(pool, results[i], exclude)
		if pool.Full() {
			break
		}
		if next < len(genres) {
			launch(next)
			next++
		}
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// query runs one discover query under its own timeout. Query failures are
// logged and reported as no results; only cancellation of ctx is returned.
func (c *Collector) query(ctx context.Context, genreID int) ([]models.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	qctx, cancel := context.WithTimeout(ctx, c.queryTimeout)
	defer cancel()

	start := time.Now()
	movies, err := c.catalog.DiscoverByGenre(qctx, genreID, c.minVoteCount, c.sortBy)
	if err == nil {
		return movies, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}

	metrics.RecordGenreQueryFailure(genreID)
	c.logger.Warn().
		Err(err).
		Int("genre_id", genreID).
		Bool("timeout", errors.Is(err, context.DeadlineExceeded)).
		Dur("elapsed", time.Since(start)).
		Msg("genre query failed, skipping genre")
	return nil, nil
}
