// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package favorites

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/moviebot-dev/moviebot/internal/models"
)

// corruptSuffix is appended to an unreadable favorites file before it is
// replaced with an empty list.
const corruptSuffix = ".corrupt"

// FileStore keeps favorites as a JSON array in a single file. Every write
// goes to a temp file in the same directory and is renamed into place.
type FileStore struct {
	path   string
	mu     sync.Mutex
	logger zerolog.Logger
	now    func() time.Time
}

// NewFileStore opens (creating if needed) the favorites file at path.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewFileStore(path string, logger zerolog.Logger) (*FileStore, error) {
	s := &FileStore{path: path, logger: logger, now: time.Now}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create favorites directory: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.writeLocked([]models.FavoriteItem{}); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// readLocked loads the file. An unparsable file is renamed to
// <path>.corrupt and replaced with an empty list.
func (s *FileStore) readLocked() ([]models.FavoriteItem, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []models.FavoriteItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read favorites: %w", err)
	}

	var items []models.FavoriteItem
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			return s.recoverCorruptLocked(err)
		}
	}
	if items == nil {
		items = []models.FavoriteItem{}
	}
	return items, nil
}

func (s *FileStore) recoverCorruptLocked(cause error) ([]models.FavoriteItem, error) {
	backup := s.path + corruptSuffix
	if err := os.Rename(s.path, backup); err != nil {
		return nil, fmt.Errorf("favorites file is corrupt and could not be moved aside: %w", err)
	}
	s.logger.Warn().
		Err(cause).
		Str("path", s.path).
		Str("backup", backup).
		Msg("favorites file was corrupt, moved aside and started empty")

	empty := []models.FavoriteItem{}
	if err := s.writeLocked(empty); err != nil {
		return nil, err
	}
	return empty, nil
}

func (s *FileStore) writeLocked(items []models.FavoriteItem) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal favorites: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write favorites: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("sync favorites: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close favorites: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace favorites: %w", err)
	}
	return nil
}

// List implements Store.
func (s *FileStore) List(_ context.Context) ([]models.FavoriteItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLocked()
}

// Get implements Store.
func (s *FileStore) Get(_ context.Context, id int) (*models.FavoriteItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readLocked()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			item := items[i]
			return &item, nil
		}
	}
	return nil, ErrNotFound
}

// Add implements Store.
func (s *FileStore) Add(_ context.Context, item models.FavoriteItem) (bool, error) {
	if err := validateItem(&item); err != nil {
		return false, err
	}
	normalizeItem(&item, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readLocked()
	if err != nil {
		return false, err
	}
	for i := range items {
		if items[i].ID == item.ID {
			return false, nil
		}
	}
	if err := s.writeLocked(append(items, item)); err != nil {
		return false, err
	}
	return true, nil
}

// Remove implements Store.
func (s *FileStore) Remove(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.readLocked()
	if err != nil {
		return false, err
	}
	kept := items[:0]
	for i := range items {
		if items[i].ID != id {
			kept = append(kept, items[i])
		}
	}
	if len(kept) == len(items) {
		return false, nil
	}
	if err := s.writeLocked(kept); err != nil {
		return false, err
	}
	return true, nil
}

// Contains implements Store.
func (s *FileStore) Contains(ctx context.Context, id int) (bool, error) {
	_, err := s.Get(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// Clear implements Store.
func (s *FileStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked([]models.FavoriteItem{})
}

// Close implements Store. The file store holds no open handles.
func (s *FileStore) Close() error { return nil }
