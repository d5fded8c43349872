// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

// Package recommend ranks catalog movies against a user's favorites.
//
// # Architecture
//
// A request runs five stages, each usable on its own:
//
//   - Genre profile: BuildGenreProfile counts genre ids across favorites and
//     yields per-genre weights plus a most-frequent-first genre list.
//   - Candidate collection: Collector queries the catalog once per top genre,
//     drops favorites, deduplicates by id and caps the pool.
//   - Text affinity: TextScorer compares the concatenated favorites synopses
//     with each candidate synopsis (TF-IDF + cosine, see package textvec).
//   - Normalization: MinMax rescales every raw signal to [0, 1].
//   - Combination: Combine mixes text, genre and rating/popularity signals
//     with weights that must sum to 1 and sorts the result.
//
// Engine wires the stages together behind Recommend.
//
// # Determinism
//
// Given the same favorites and the same catalog answers, Recommend returns
// the same order. Catalog queries may run concurrently but their results
// are merged in genre order, and every sort is stable.
//
// # Failure Handling
//
// Missing signal (no favorites, no genres, blank synopses, empty pool)
// yields an empty or neutral result. A failing genre query is logged and
// skipped. Invalid weights fail with ErrInvalidWeights.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), catalogClient, favoritesStore, logger)
//	if err != nil {
//	    return err
//	}
//	resp, err := engine.Recommend(ctx, recommend.Request{Limit: 20})
//
// # Thread Safety
//
// Engine, Collector and TextScorer keep no per-request state and are safe
// for concurrent use.
package recommend
