// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

// Package textvec turns short texts into TF-IDF vectors.
//
// # Pipeline
//
//   - Tokenize: lowercase, strip accents, split on anything that is not a
//     letter or digit, drop single-character tokens and stopwords (English
//     and Portuguese, since catalog synopses are requested in pt-BR).
//   - Vocabulary: the MaxFeatures terms with the highest corpus frequency,
//     ties broken alphabetically so the same corpus always yields the same
//     vocabulary.
//   - Weighting: raw term count times smoothed inverse document frequency,
//     idf(t) = ln((1+n)/(1+df(t))) + 1, then L2 normalization.
//
// Vectors are sparse and sorted by term index, so Cosine sums in a fixed
// order and repeated runs produce bit-identical scores.
//
// # Usage
//
//	v := textvec.NewVectorizer(5000)
//	vecs, err := v.FitTransform([]string{profile, a, b})
//	if errors.Is(err, textvec.ErrEmptyVocabulary) {
//	    // nothing to compare
//	}
//	sim := textvec.Cosine(vecs[0], vecs[1])
package textvec
