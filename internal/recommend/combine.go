// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package recommend

import (
	"errors"
	"fmt"
	"sort"
)

// Composite weights for the rating/popularity signal.
const (
	ratingShare     = 0.6
	popularityShare = 0.4
)

// ErrSignalLength is returned when a signal slice does not match the pool.
var ErrSignalLength = errors.New("recommend: signal length does not match candidate pool")

// Combine scores every pooled movie and returns them best first.
//
// The final score is
//
//	w.Text*norm(text) + w.Genre*norm(genre) + w.Score*norm(composite)
//
// where genre is the summed genre weight of the movie's genres and
// composite is 0.6*norm(rating) + 0.4*norm(popularity). Equal scores keep
// pool order. text must hold one value per pooled movie.
//
//nolint:gocritic // hugeParam: w passed by value for immutability
func Combine(pool *CandidatePool, genreWeights GenreWeights, text []float64, w Weights) ([]ScoredMovie, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}

	movies := pool.Movies()
	n := len(movies)
	if len(text) != n {
		return nil, fmt.Errorf("%w: %d text scores for %d candidates", ErrSignalLength, len(text), n)
	}
	if n == 0 {
		return []ScoredMovie{}, nil
	}

	genreRaw := make([]float64, n)
	rating := make([]float64, n)
	popularity := make([]float64, n)
	for i := range movies {
		genreRaw[i] = genreWeights.Affinity(movies[i].GenreIDs)
		rating[i] = movies[i].VoteAverage
		popularity[i] = movies[i].Popularity
	}

	ratingNorm := MinMax(rating)
	popularityNorm := MinMax(popularity)
	compositeRaw := make([]float64, n)
	for i := range compositeRaw {
		compositeRaw[i] = ratingShare*ratingNorm[i] + popularityShare*popularityNorm[i]
	}

	textNorm := MinMax(text)
	genreNorm := MinMax(genreRaw)
	composite := MinMax(compositeRaw)

	scored := make([]ScoredMovie, n)
	for i := range movies {
		scored[i] = ScoredMovie{
			Movie: movies[i],
			Score: w.Text*textNorm[i] + w.Genre*genreNorm[i] + w.Score*composite[i],
			Signals: Signals{
				TextRaw:      text[i],
				Text:         textNorm[i],
				GenreRaw:     genreRaw[i],
				Genre:        genreNorm[i],
				CompositeRaw: compositeRaw[i],
				Composite:    composite[i],
			},
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored, nil
}
