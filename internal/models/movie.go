// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package models

import (
	"strings"
	"time"
)

// Movie is a catalog item as returned by TMDB list endpoints.
type Movie struct {
	// ID is the TMDB movie identifier.
	ID int `json:"id"`

	// Title is the localized title.
	Title string `json:"title"`

	// OriginalTitle is the title in the original language.
	OriginalTitle string `json:"original_title,omitempty"`

	// ReleaseDate is the primary release date (YYYY-MM-DD), may be empty.
	ReleaseDate string `json:"release_date,omitempty"`

	// VoteAverage is the mean user rating on a 0-10 scale.
	VoteAverage float64 `json:"vote_average"`

	// VoteCount is the number of ratings behind VoteAverage.
	VoteCount int `json:"vote_count"`

	// Popularity is TMDB's relative popularity score.
	Popularity float64 `json:"popularity"`

	// GenreIDs are the TMDB genre identifiers tagged on the movie.
	GenreIDs []int `json:"genre_ids"`

	// Overview is the synopsis. May be empty.
	Overview string `json:"overview"`

	PosterPath   string `json:"poster_path,omitempty"`
	BackdropPath string `json:"backdrop_path,omitempty"`
	Adult        bool   `json:"adult,omitempty"`
}

// Year returns the four-digit release year, or "----" when unknown.
func (m *Movie) Year() string {
	return releaseYear(m.ReleaseDate)
}

// DisplayTitle returns Title, falling back to OriginalTitle.
func (m *Movie) DisplayTitle() string {
	if strings.TrimSpace(m.Title) != "" {
		return m.Title
	}
	return m.OriginalTitle
}

// Genre is a TMDB genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// FavoriteItem is a movie the user saved. It carries only the fields the
// recommender and the favorites listing need.
type FavoriteItem struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	ReleaseDate  string    `json:"release_date,omitempty"`
	VoteAverage  float64   `json:"vote_average"`
	VoteCount    int       `json:"vote_count"`
	Popularity   float64   `json:"popularity"`
	GenreIDs     []int     `json:"genre_ids"`
	Overview     string    `json:"overview"`
	PosterPath   string    `json:"poster_path,omitempty"`
	BackdropPath string    `json:"backdrop_path,omitempty"`
	AddedAt      time.Time `json:"added_at"`
}

// NewFavoriteItem projects a catalog movie onto a FavoriteItem.
// The genre slice is copied so later changes to m do not leak into the store.
func NewFavoriteItem(m *Movie, addedAt time.Time) FavoriteItem {
	genres := make([]int, len(m.GenreIDs))
	copy(genres, m.GenreIDs)

	return FavoriteItem{
		ID:           m.ID,
		Title:        m.DisplayTitle(),
		ReleaseDate:  m.ReleaseDate,
		VoteAverage:  m.VoteAverage,
		VoteCount:    m.VoteCount,
		Popularity:   m.Popularity,
		GenreIDs:     genres,
		Overview:     m.Overview,
		PosterPath:   m.PosterPath,
		BackdropPath: m.BackdropPath,
		AddedAt:      addedAt.UTC(),
	}
}

// Year returns the four-digit release year, or "----" when unknown.
func (f *FavoriteItem) Year() string {
	return releaseYear(f.ReleaseDate)
}

func releaseYear(date string) string {
	if len(date) < 4 {
		return "----"
	}
	return date[:4]
}
