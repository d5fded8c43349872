// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviebot-dev/moviebot/internal/logging"
	"github.com/moviebot-dev/moviebot/internal/metrics"
	"github.com/moviebot-dev/moviebot/internal/models"
)

// Outcome labels for recommend_requests_total.
const (
	OutcomePersonalized = "personalized"
	OutcomeEmpty        = "empty"
	OutcomeError        = "error"
)

// Engine produces recommendations from the favorites store and the catalog.
// It is safe for concurrent use.
type Engine struct {
	config    *Config
	favorites FavoritesLister
	collector *Collector
	text      *TextScorer
	logger    zerolog.Logger
}

// NewEngine creates a new recommendation engine. A nil cfg uses
// DefaultConfig.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, catalog CatalogQuerier, favorites FavoritesLister, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if catalog == nil || favorites == nil {
		return nil, fmt.Errorf("recommend: catalog and favorites are required")
	}

	logger = logger.With().Str("component", "recommend").Logger()
	return &Engine{
		config:    cfg,
		favorites: favorites,
		collector: NewCollector(catalog, cfg, logger),
		text:      NewTextScorer(cfg.MaxFeatures),
		logger:    logger,
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// Recommend ranks catalog movies for the current favorites.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	req = e.prepareRequest(ctx, req)
	trace := logging.TraceFromContext(ctx)
	trace.RequestID = req.RequestID
	logger := trace.Fields(e.logger.With()).Logger()

	resp, err := e.recommend(ctx, req, start, logger)
	if err != nil {
		metrics.RecordRecommendation(OutcomeError, 0, time.Since(start))
		logger.Error().Err(err).Msg("recommendation failed")
		return nil, err
	}

	resp.Metadata.CorrelationID = trace.CorrelationID

	outcome := OutcomePersonalized
	if len(resp.Items) == 0 {
		outcome = OutcomeEmpty
	}
	metrics.RecordRecommendation(outcome, resp.TotalCandidates, time.Since(start))

	logger.Debug().
		Int("candidates", resp.TotalCandidates).
		Int("returned", len(resp.Items)).
		Ints("top_genres", resp.TopGenres).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")
	return resp, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) recommend(ctx context.Context, req Request, start time.Time, logger zerolog.Logger) (*Response, error) {
	favorites, err := e.favorites.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	profile := BuildGenreProfile(favorites)
	if profile.Empty() {
		logger.Debug().Int("favorites", len(favorites)).Msg("no genre signal, nothing to personalize")
		return e.emptyResponse(req, profile, start), nil
	}
	topGenres := profile.TopGenres(req.TopGenres)

	pool, err := e.collector.Collect(ctx, topGenres, favorites)
	if err != nil {
		return nil, fmt.Errorf("collect candidates: %w", err)
	}

	resp := e.emptyResponse(req, profile, start)
	resp.Personalized = true
	resp.TopGenres = topGenres
	if pool.Len() == 0 {
		logger.Debug().Ints("top_genres", topGenres).Msg("no candidates available")
		return resp, nil
	}

	text, err := e.text.Score(favorites, pool.Movies())
	if err != nil {
		return nil, fmt.Errorf("score text: %w", err)
	}

	ranked, err := Combine(pool, profile.Weights, text, e.config.Weights)
	if err != nil {
		return nil, fmt.Errorf("combine signals: %w", err)
	}

	if len(ranked) > req.Limit {
		ranked = ranked[:req.Limit]
	}
	resp.Items = ranked
	resp.TotalCandidates = pool.Len()
	resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
	return resp, nil
}

// prepareRequest applies defaults and picks up the request id from ctx.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(ctx context.Context, req Request) Request {
	if req.RequestID == "" {
		req.RequestID = logging.RequestIDFromContext(ctx)
	}
	if req.RequestID == "" {
		req.RequestID = logging.GenerateRequestID()
	}

	if req.Limit <= 0 {
		req.Limit = e.config.DefaultLimit
	}
	if req.Limit > e.config.MaxLimit {
		req.Limit = e.config.MaxLimit
	}
	if req.TopGenres <= 0 {
		req.TopGenres = e.config.TopGenres
	}
	return req
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) emptyResponse(req Request, profile GenreProfile, start time.Time) *Response {
	return &Response{
		Items:        []ScoredMovie{},
		TopGenres:    []int{},
		GenreWeights: profile.Weights,
		Metadata: ResponseMetadata{
			RequestID: req.RequestID,
			LatencyMS: time.Since(start).Milliseconds(),
			Weights:   e.config.Weights,
			Timestamp: time.Now().UTC(),
		},
	}
}

// Profile builds the genre profile of the current favorites.
func (e *Engine) Profile(ctx context.Context) (GenreProfile, []models.FavoriteItem, error) {
	favorites, err := e.favorites.List(ctx)
	if err != nil {
		return GenreProfile{}, nil, fmt.Errorf("list favorites: %w", err)
	}
	return BuildGenreProfile(favorites), favorites, nil
}
