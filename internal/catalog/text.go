// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package catalog

import (
	"github.com/moviebot-dev/moviebot/internal/models"
	"github.com/moviebot-dev/moviebot/internal/textvec"
)

// NormalizeText lowercases s and strips combining marks, so "Ação" becomes
// "acao". Genre names are keyed this way.
func NormalizeText(s string) string {
	return textvec.Fold(s)
}

// FilterByMinVotes returns the movies with at least minVotes votes, in order.
// The result is never nil.
func FilterByMinVotes(movies []models.Movie, minVotes int) []models.Movie {
	out := make([]models.Movie, 0, len(movies))
	for i := range movies {
		if movies[i].VoteCount >= minVotes {
			out = append(out, movies[i])
		}
	}
	return out
}
