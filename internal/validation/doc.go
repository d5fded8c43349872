// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is built on first use and shared; it caches
// struct metadata, so request structs are cheap to validate repeatedly.
// Field errors are reported under the json or query tag name of the field,
// which is the name API clients actually send.
//
// # Custom Tags
//
//   - tmdb_sort: value must be one of SortOrders (the discover sort orders)
//
// # Usage
//
//	type discoverRequest struct {
//	    GenreID int    `query:"genre_id" validate:"gte=0"`
//	    SortBy  string `query:"sort_by" validate:"omitempty,tmdb_sort"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, verr)
//	    return
//	}
package validation
