// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package recommend

import (
	"errors"
	"strings"

	"github.com/moviebot-dev/moviebot/internal/models"
	"github.com/moviebot-dev/moviebot/internal/textvec"
)

// TextScorer measures how close each candidate synopsis is to the
// favorites' combined synopses.
type TextScorer struct {
	vectorizer *textvec.Vectorizer
}

// NewTextScorer returns a scorer whose vocabulary holds at most maxFeatures
// terms.
func NewTextScorer(maxFeatures int) *TextScorer {
	return &TextScorer{vectorizer: textvec.NewVectorizer(maxFeatures)}
}

// ProfileText joins the favorites' synopses with single spaces.
func ProfileText(favorites []models.FavoriteItem) string {
	parts := make([]string, len(favorites))
	for i := range favorites {
		parts[i] = favorites[i].Overview
	}
	return strings.Join(parts, " ")
}

// Score returns one value in [0, 1] per candidate, in candidate order.
//
// Raw cosine similarities are min-max rescaled. When every raw similarity is
// the same the raw values are returned unchanged. Zeros are returned when
// there is no text at all or no term survives tokenization.
func (s *TextScorer) Score(favorites []models.FavoriteItem, candidates []models.Movie) ([]float64, error) {
	scores := make([]float64, len(candidates))
	if len(candidates) == 0 {
		return scores, nil
	}

	corpus := make([]string, 0, len(candidates)+1)
	corpus = append(corpus, ProfileText(favorites))
	blank := strings.TrimSpace(corpus[0]) == ""
	for i := range candidates {
		corpus = append(corpus, candidates[i].Overview)
		if strings.TrimSpace(candidates[i].Overview) != "" {
			blank = false
		}
	}
	if blank {
		return scores, nil
	}

	vectors, err := s.vectorizer.FitTransform(corpus)
	if errors.Is(err, textvec.ErrEmptyVocabulary) {
		return scores, nil
	}
	if err != nil {
		return nil, err
	}

	profile := vectors[0]
	for i := range candidates {
		scores[i] = textvec.Cosine(profile, vectors[i+1])
	}

	if constant(scores) {
		return scores, nil
	}
	return MinMax(scores), nil
}

func constant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}
