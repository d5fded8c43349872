// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

/*
Package models defines the data structures shared across MovieBot.

Key Components:

  - Movie: a catalog item as returned by TMDB (search, discover and
    recommendation endpoints). Recommendation candidates are Movies.
  - FavoriteItem: the persisted projection of a Movie the user saved.
    Only the listed fields are stored; everything else TMDB returns is
    dropped by NewFavoriteItem.
  - Genre: TMDB genre identifier and display name.

All models use goccy/go-json compatible struct tags. Field names follow the
TMDB wire format (snake_case) so catalog responses decode directly into them.
*/
package models
