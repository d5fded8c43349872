// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package recommend

import (
	"context"
	"time"

	"github.com/moviebot-dev/moviebot/internal/models"
)

// CatalogQuerier is the catalog query the collector depends on. An
// upstream with no matches returns an empty slice and a nil error.
type CatalogQuerier interface {
	DiscoverByGenre(ctx context.Context, genreID, minVoteCount int, sortBy string) ([]models.Movie, error)
}

// FavoritesLister is the read side of the favorites store.
type FavoritesLister interface {
	List(ctx context.Context) ([]models.FavoriteItem, error)
}

// GenreWeights maps a genre id to its share of all genre occurrences in
// the favorites. Values are non-negative and sum to 1 when non-empty.
type GenreWeights map[int]float64

// Affinity sums the weights of the given genres. Unknown genres count 0.
func (w GenreWeights) Affinity(genreIDs []int) float64 {
	var sum float64
	for _, g := range genreIDs {
		sum += w[g]
	}
	return sum
}

// Signals holds the per-candidate inputs to the final score.
type Signals struct {
	// TextRaw is the text affinity as handed to Combine.
	TextRaw float64 `json:"text_raw"`
	// Text is TextRaw after min-max normalization across the pool.
	Text float64 `json:"text"`

	// GenreRaw is the summed genre weight of the candidate's genres.
	GenreRaw float64 `json:"genre_raw"`
	Genre    float64 `json:"genre"`

	// CompositeRaw is 0.6*norm(rating) + 0.4*norm(popularity).
	CompositeRaw float64 `json:"composite_raw"`
	Composite    float64 `json:"composite"`
}

// ScoredMovie is a ranked candidate.
type ScoredMovie struct {
	Movie   models.Movie `json:"movie"`
	Score   float64      `json:"score"`
	Signals Signals      `json:"signals"`
}

// Request describes a recommendation request.
type Request struct {
	// Limit is the number of items to return. 0 uses the configured default.
	Limit int `json:"limit"`

	// TopGenres overrides how many favorite genres drive collection.
	// 0 uses the configured value.
	TopGenres int `json:"top_genres"`

	// RequestID is used for tracing. Generated if empty.
	RequestID string `json:"request_id,omitempty"`
}

// Response is the result of Engine.Recommend.
type Response struct {
	Items []ScoredMovie `json:"items"`

	// Personalized is false when the favorites carry no genre signal.
	Personalized bool `json:"personalized"`

	TopGenres    []int        `json:"top_genres"`
	GenreWeights GenreWeights `json:"genre_weights"`

	// TotalCandidates is the pool size before truncation to Limit.
	TotalCandidates int `json:"total_candidates"`

	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata carries tracing and tuning details.
type ResponseMetadata struct {
	RequestID     string    `json:"request_id"`
	CorrelationID string    `json:"correlation_id,omitempty"`
	LatencyMS     int64     `json:"latency_ms"`
	Weights       Weights   `json:"weights"`
	Timestamp     time.Time `json:"timestamp"`
}
