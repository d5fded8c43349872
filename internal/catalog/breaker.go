// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/moviebot-dev/moviebot/internal/metrics"
	"github.com/moviebot-dev/moviebot/internal/models"
)

// BreakerName is the circuit breaker label used in metrics.
const BreakerName = "tmdb-api"

// BreakerSettings tunes the circuit breaker. Zero fields take the defaults
// documented on DefaultBreakerSettings.
type BreakerSettings struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	MinRequests  uint32
	FailureRatio float64
}

// DefaultBreakerSettings returns the production settings:
//   - 3 trial requests in half-open state
//   - counts reset every minute while closed
//   - 2 minutes open before probing again
//   - trips at >= 60% failures over at least 10 requests
func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		MaxRequests:  3,
		Interval:     time.Minute,
		Timeout:      2 * time.Minute,
		MinRequests:  10,
		FailureRatio: 0.6,
	}
}

// CircuitBreakerClient wraps Client with a circuit breaker.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
}

// NewCircuitBreakerClient wraps client with the given settings.
func NewCircuitBreakerClient(client *Client, s BreakerSettings) *CircuitBreakerClient {
	def := DefaultBreakerSettings()
	if s.MaxRequests == 0 {
		s.MaxRequests = def.MaxRequests
	}
	if s.Interval == 0 {
		s.Interval = def.Interval
	}
	if s.Timeout == 0 {
		s.Timeout = def.Timeout
	}
	if s.MinRequests == 0 {
		s.MinRequests = def.MinRequests
	}
	if s.FailureRatio == 0 {
		s.FailureRatio = def.FailureRatio
	}

	name := BreakerName
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)

	cbc := &CircuitBreakerClient{client: client, name: name}
	cbc.cb = gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.Timeout,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < s.MinRequests {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			shouldTrip := failureRatio >= s.FailureRatio
			if shouldTrip {
				client.logger.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("[CIRCUIT BREAKER] Opening circuit")
			}
			return shouldTrip
		},

		// Client-side outcomes are not TMDB failures.
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, ErrNotFound) ||
				errors.Is(err, ErrInvalidMovieID) ||
				errors.Is(err, context.Canceled)
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr := stateToString(from)
			toStr := stateToString(to)

			client.logger.Info().Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")

			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			if to == gobreaker.StateClosed {
				metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(name).Set(0)
			}
		},
	})
	return cbc
}

// State returns the current breaker state as a string.
func (cbc *CircuitBreakerClient) State() string {
	return stateToString(cbc.cb.State())
}

// execute runs fn under the breaker and records the outcome.
func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := cbc.cb.Execute(fn)

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "rejected").Inc()
			cbc.client.logger.Warn().Err(err).Msg("[CIRCUIT BREAKER] Request rejected")
		} else {
			metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "failure").Inc()
			counts := cbc.cb.Counts()
			metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(float64(counts.ConsecutiveFailures))
		}
		return nil, err
	}

	metrics.CircuitBreakerRequests.WithLabelValues(cbc.name, "success").Inc()
	metrics.CircuitBreakerConsecutiveFailures.WithLabelValues(cbc.name).Set(0)
	return result, nil
}

// castResult type-asserts the breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// SearchMovies calls Client.SearchMovies with circuit breaker protection.
func (cbc *CircuitBreakerClient) SearchMovies(ctx context.Context, query string, page int) (*Page, error) {
	return castResult[*Page](cbc.execute(func() (interface{}, error) {
		return cbc.client.SearchMovies(ctx, query, page)
	}))
}

// Discover calls Client.Discover with circuit breaker protection.
func (cbc *CircuitBreakerClient) Discover(ctx context.Context, p DiscoverParams) (*Page, error) {
	return castResult[*Page](cbc.execute(func() (interface{}, error) {
		return cbc.client.Discover(ctx, p)
	}))
}

// DiscoverByGenre calls Client.DiscoverByGenre with circuit breaker protection.
func (cbc *CircuitBreakerClient) DiscoverByGenre(ctx context.Context, genreID, minVoteCount int, sortBy string) ([]models.Movie, error) {
	return castResult[[]models.Movie](cbc.execute(func() (interface{}, error) {
		return cbc.client.DiscoverByGenre(ctx, genreID, minVoteCount, sortBy)
	}))
}

// MovieRecommendations calls Client.MovieRecommendations with circuit breaker protection.
func (cbc *CircuitBreakerClient) MovieRecommendations(ctx context.Context, movieID, page int) (*Page, error) {
	return castResult[*Page](cbc.execute(func() (interface{}, error) {
		return cbc.client.MovieRecommendations(ctx, movieID, page)
	}))
}

// GenreList calls Client.GenreList with circuit breaker protection.
func (cbc *CircuitBreakerClient) GenreList(ctx context.Context) ([]models.Genre, error) {
	return castResult[[]models.Genre](cbc.execute(func() (interface{}, error) {
		return cbc.client.GenreList(ctx)
	}))
}

// Genres calls Client.Genres with circuit breaker protection.
func (cbc *CircuitBreakerClient) Genres(ctx context.Context) (map[string]int, error) {
	return castResult[map[string]int](cbc.execute(func() (interface{}, error) {
		return cbc.client.Genres(ctx)
	}))
}
