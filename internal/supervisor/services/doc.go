// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

/*
Package services provides suture.Service wrappers for MovieBot components.

Each wrapper translates a component lifecycle into suture's context-aware
Serve pattern and identifies itself through fmt.Stringer:

  - HTTPServerService: runs *http.Server and shuts it down gracefully when
    the tree stops
  - GenreWarmupService: keeps the cached TMDB genre list warm

The cache janitor needs no wrapper; *cache.Cache implements suture.Service
directly.
*/
package services
