// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package recommend

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/moviebot-dev/moviebot/internal/config"
)

// weightTolerance is how far the weight sum may drift from 1.
const weightTolerance = 1e-9

// ErrInvalidWeights is returned when combiner weights are negative, not
// finite, or do not sum to 1.
var ErrInvalidWeights = errors.New("recommend: weights must be non-negative and sum to 1")

// Weights are the combiner weights for the three normalized signals.
type Weights struct {
	Text  float64 `json:"text"`
	Genre float64 `json:"genre"`
	Score float64 `json:"score"`
}

// Validate returns ErrInvalidWeights wrapped with the offending values.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Validate() error {
	for _, v := range []float64{w.Text, w.Genre, w.Score} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: text=%g genre=%g score=%g", ErrInvalidWeights, w.Text, w.Genre, w.Score)
		}
	}
	sum := w.Text + w.Genre + w.Score
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("%w: text=%g genre=%g score=%g sum to %g", ErrInvalidWeights, w.Text, w.Genre, w.Score, sum)
	}
	return nil
}

// Config tunes the engine.
type Config struct {
	Weights Weights `json:"weights"`

	// TopGenres is how many favorite genres are queried.
	TopGenres int `json:"top_genres"`

	// PerGenreLimit caps results taken from one genre query.
	PerGenreLimit int `json:"per_genre_limit"`

	// MaxCandidates caps the candidate pool across all genres.
	MaxCandidates int `json:"max_candidates"`

	// MinVoteCount and SortBy are passed to every discover query.
	MinVoteCount int    `json:"min_vote_count"`
	SortBy       string `json:"sort_by"`

	// QueryTimeout bounds each genre query.
	QueryTimeout time.Duration `json:"query_timeout"`

	// Concurrency is the number of genre queries in flight. Queries run at
	// most Concurrency genres ahead of the in-order merge, so once the pool
	// is full no further genre is queried. 1 queries genres one by one.
	Concurrency int `json:"concurrency"`

	// MaxFeatures bounds the TF-IDF vocabulary.
	MaxFeatures int `json:"max_features"`

	DefaultLimit int `json:"default_limit"`
	MaxLimit     int `json:"max_limit"`
}

// DefaultConfig returns production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights:       Weights{Text: 0.5, Genre: 0.3, Score: 0.2},
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
	}
}

// FromSettings converts the application settings section.
func FromSettings(rc *config.RecommendConfig) *Config {
	return &Config{
		Weights: Weights{
			Text:  rc.TextWeight,
			Genre: rc.GenreWeight,
			Score: rc.ScoreWeight,
		},
		TopGenres:     rc.TopGenres,
		PerGenreLimit: rc.PerGenreLimit,
		MaxCandidates: rc.MaxCandidates,
		MinVoteCount:  rc.MinVoteCount,
		SortBy:        rc.SortBy,
		QueryTimeout:  rc.QueryTimeout,
		Concurrency:   rc.Concurrency,
		MaxFeatures:   rc.MaxFeatures,
		DefaultLimit:  rc.DefaultLimit,
		MaxLimit:      rc.MaxLimit,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if c.TopGenres < 1 {
		return fmt.Errorf("top_genres must be positive, got %d", c.TopGenres)
	}
	if c.PerGenreLimit < 1 {
		return fmt.Errorf("per_genre_limit must be positive, got %d", c.PerGenreLimit)
	}
	if c.MaxCandidates < 1 {
		return fmt.Errorf("max_candidates must be positive, got %d", c.MaxCandidates)
	}
	if c.MinVoteCount < 0 {
		return fmt.Errorf("min_vote_count must be non-negative, got %d", c.MinVoteCount)
	}
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("query_timeout must be positive, got %v", c.QueryTimeout)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.MaxFeatures < 1 {
		return fmt.Errorf("max_features must be positive, got %d", c.MaxFeatures)
	}
	if c.DefaultLimit < 1 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit must be >= default_limit, got %d < %d", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}
