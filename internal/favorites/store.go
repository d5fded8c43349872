// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

// Package favorites persists the user's favorite movies.
//
// Two backends implement Store: FileStore keeps a JSON array on disk (the
// format the original favorites.json used) and BadgerStore keeps one key per
// favorite in an embedded BadgerDB. Both preserve insertion order and reject
// duplicate ids.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/moviebot-dev/moviebot/internal/config"
	"github.com/moviebot-dev/moviebot/internal/metrics"
	"github.com/moviebot-dev/moviebot/internal/models"
)

var (
	// ErrInvalidItem is returned by Add for items without a positive id.
	ErrInvalidItem = errors.New("favorites: item must have a positive id")

	// ErrNotFound is returned by Get for unknown ids.
	ErrNotFound = errors.New("favorites: not found")
)

// Store is the favorites persistence contract.
type Store interface {
	// List returns all favorites in insertion order. Never nil.
	List(ctx context.Context) ([]models.FavoriteItem, error)

	// Get returns one favorite or ErrNotFound.
	Get(ctx context.Context, id int) (*models.FavoriteItem, error)

	// Add appends item. It returns false without error when the id is
	// already stored.
	Add(ctx context.Context, item models.FavoriteItem) (bool, error)

	// Remove deletes id. It returns false without error when id is absent.
	Remove(ctx context.Context, id int) (bool, error)

	// Contains reports whether id is stored.
	Contains(ctx context.Context, id int) (bool, error)

	// Clear removes every favorite.
	Clear(ctx context.Context) error

	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// Open builds the configured backend wrapped with metrics.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(cfg *config.FavoritesConfig, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("component", "favorites").Str("backend", cfg.Backend).Logger()

	var (
		s   Store
		err error
	)
	switch cfg.Backend {
	case BackendFile, "":
		s, err = NewFileStore(cfg.Path, logger)
	case BackendBadger:
		s, err = OpenBadgerStore(cfg.Path, logger)
	default:
		return nil, fmt.Errorf("unknown favorites backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	return Instrument(s), nil
}

// Instrument wraps s so every operation is counted in Prometheus.
func Instrument(s Store) Store {
	return &instrumentedStore{next: s}
}

type instrumentedStore struct {
	next Store
}

func (i *instrumentedStore) List(ctx context.Context) ([]models.FavoriteItem, error) {
	items, err := i.next.List(ctx)
	metrics.RecordFavoritesOperation("list", err)
	if err == nil {
		metrics.FavoritesStored.Set(float64(len(items)))
	}
	return items, err
}

func (i *instrumentedStore) Get(ctx context.Context, id int) (*models.FavoriteItem, error) {
	item, err := i.next.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		metrics.RecordFavoritesOperation("get", nil)
	} else {
		metrics.RecordFavoritesOperation("get", err)
	}
	return item, err
}

func (i *instrumentedStore) Add(ctx context.Context, item models.FavoriteItem) (bool, error) {
	added, err := i.next.Add(ctx, item)
	metrics.RecordFavoritesOperation("add", err)
	if added {
		metrics.FavoritesStored.Inc()
	}
	return added, err
}

func (i *instrumentedStore) Remove(ctx context.Context, id int) (bool, error) {
	removed, err := i.next.Remove(ctx, id)
	metrics.RecordFavoritesOperation("remove", err)
	if removed {
		metrics.FavoritesStored.Dec()
	}
	return removed, err
}

func (i *instrumentedStore) Contains(ctx context.Context, id int) (bool, error) {
	ok, err := i.next.Contains(ctx, id)
	metrics.RecordFavoritesOperation("contains", err)
	return ok, err
}

func (i *instrumentedStore) Clear(ctx context.Context) error {
	err := i.next.Clear(ctx)
	metrics.RecordFavoritesOperation("clear", err)
	if err == nil {
		metrics.FavoritesStored.Set(0)
	}
	return err
}

func (i *instrumentedStore) Close() error {
	return i.next.Close()
}

func validateItem(item *models.FavoriteItem) error {
	if item.ID <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidItem, item.ID)
	}
	return nil
}

// normalizeItem fills the fields a stored favorite always carries.
func normalizeItem(item *models.FavoriteItem, now time.Time) {
	if item.GenreIDs == nil {
		item.GenreIDs = []int{}
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = now.UTC()
	}
}
