// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package recommend

import (
	"sort"

	"github.com/moviebot-dev/moviebot/internal/models"
)

// GenreProfile summarizes the genres of a set of favorites.
type GenreProfile struct {
	// Weights is count(g)/total for every observed genre.
	Weights GenreWeights

	// Ranked lists every observed genre, most frequent first. Equal counts
	// keep the order in which the genres were first seen.
	Ranked []int

	// Counts is the raw occurrence count per genre.
	Counts map[int]int
}

// BuildGenreProfile counts every genre occurrence across favorites.
// Favorites without genres contribute nothing; the result is empty, not nil,
// when no genre is observed.
func BuildGenreProfile(favorites []models.FavoriteItem) GenreProfile {
	counts := make(map[int]int)
	var order []int
	total := 0

	for i := range favorites {
		for _, g := range favorites[i].GenreIDs {
			if _, seen := counts[g]; !seen {
				order = append(order, g)
			}
			counts[g]++
			total++
		}
	}

	weights := make(GenreWeights, len(counts))
	for g, n := range counts {
		weights[g] = float64(n) / float64(total)
	}

	ranked := make([]int, len(order))
	copy(ranked, order)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})

	return GenreProfile{Weights: weights, Ranked: ranked, Counts: counts}
}

// TopGenres returns the n most frequent genres. n <= 0 or larger than the
// number of genres returns them all. The result is a copy.
func (p GenreProfile) TopGenres(n int) []int {
	if n <= 0 || n > len(p.Ranked) {
		n = len(p.Ranked)
	}
	out := make([]int, n)
	copy(out, p.Ranked[:n])
	return out
}

// Empty reports whether no genre was observed.
func (p GenreProfile) Empty() bool {
	return len(p.Ranked) == 0
}
