// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package favorites

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/moviebot-dev/moviebot/internal/models"
)

// Key layout:
//
//	favorite:order:<20-digit seq> -> FavoriteItem JSON
//	favorite:id:<movie id>        -> order key
//
// Zero-padded sequence numbers make iteration order equal insertion order.
const (
	orderKeyPrefix = "favorite:order:"
	idKeyPrefix    = "favorite:id:"
	sequenceKey    = "favorite:seq"
	sequenceLease  = 100
)

// BadgerStore keeps favorites in an embedded BadgerDB.
type BadgerStore struct {
	db     *badger.DB
	seq    *badger.Sequence
	ownsDB bool

	// writes serializes Add so the duplicate check and insert are atomic
	// with respect to each other.
	writes sync.Mutex
	now    func() time.Time
}

// OpenBadgerStore opens (or creates) a BadgerDB in dir.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func OpenBadgerStore(dir string, logger zerolog.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir).
		WithLogger(&badgerLogger{logger: logger}).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger at %s: %w", dir, err)
	}

	s, err := NewBadgerStore(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	s.ownsDB = true
	return s, nil
}

// NewBadgerStore uses an already opened database. The caller keeps ownership
// of db; Close only releases the sequence.
func NewBadgerStore(db *badger.DB) (*BadgerStore, error) {
	seq, err := db.GetSequence([]byte(sequenceKey), sequenceLease)
	if err != nil {
		return nil, fmt.Errorf("get favorites sequence: %w", err)
	}
	return &BadgerStore{db: db, seq: seq, now: time.Now}, nil
}

func idKey(id int) []byte {
	return []byte(idKeyPrefix + strconv.Itoa(id))
}

func orderKey(n uint64) []byte {
	return []byte(fmt.Sprintf("%s%020d", orderKeyPrefix, n))
}

// List implements Store.
func (s *BadgerStore) List(_ context.Context) ([]models.FavoriteItem, error) {
	items := []models.FavoriteItem{}

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(orderKeyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var item models.FavoriteItem
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &item)
			}); err != nil {
				return fmt.Errorf("decode favorite %s: %w", it.Item().Key(), err)
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Get implements Store.
func (s *BadgerStore) Get(_ context.Context, id int) (*models.FavoriteItem, error) {
	var item models.FavoriteItem

	err := s.db.View(func(txn *badger.Txn) error {
		ref, err := txn.Get(idKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get favorite index: %w", err)
		}
		key, err := ref.ValueCopy(nil)
		if err != nil {
			return err
		}

		entry, err := txn.Get(key)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get favorite: %w", err)
		}
		return entry.Value(func(val []byte) error {
			return json.Unmarshal(val, &item)
		})
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Add implements Store.
func (s *BadgerStore) Add(_ context.Context, item models.FavoriteItem) (bool, error) {
	if err := validateItem(&item); err != nil {
		return false, err
	}
	normalizeItem(&item, s.now())

	data, err := json.Marshal(item)
	if err != nil {
		return false, fmt.Errorf("marshal favorite: %w", err)
	}

	s.writes.Lock()
	defer s.writes.Unlock()

	exists, err := s.contains(item.ID)
	if err != nil || exists {
		return false, err
	}

	n, err := s.seq.Next()
	if err != nil {
		return false, fmt.Errorf("next favorites sequence: %w", err)
	}
	key := orderKey(n)

	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(key, data); err != nil {
			return fmt.Errorf("set favorite: %w", err)
		}
		if err := txn.Set(idKey(item.ID), key); err != nil {
			return fmt.Errorf("set favorite index: %w", err)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remove implements Store.
func (s *BadgerStore) Remove(_ context.Context, id int) (bool, error) {
	s.writes.Lock()
	defer s.writes.Unlock()

	removed := false
	err := s.db.Update(func(txn *badger.Txn) error {
		ref, err := txn.Get(idKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		key, err := ref.ValueCopy(nil)
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return fmt.Errorf("delete favorite: %w", err)
		}
		if err := txn.Delete(idKey(id)); err != nil {
			return fmt.Errorf("delete favorite index: %w", err)
		}
		removed = true
		return nil
	})
	return removed, err
}

// Contains implements Store.
func (s *BadgerStore) Contains(_ context.Context, id int) (bool, error) {
	return s.contains(id)
}

func (s *BadgerStore) contains(id int) (bool, error) {
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(idKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return nil
	})
	return found, err
}

// Clear implements Store.
func (s *BadgerStore) Clear(_ context.Context) error {
	s.writes.Lock()
	defer s.writes.Unlock()

	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		for _, prefix := range []string{orderKeyPrefix, idKeyPrefix} {
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = false
			opts.Prefix = []byte(prefix)
			it := txn.NewIterator(opts)
			for it.Rewind(); it.Valid(); it.Next() {
				keys = append(keys, it.Item().KeyCopy(nil))
			}
			it.Close()
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scan favorites: %w", err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			return fmt.Errorf("clear favorites: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("clear favorites: %w", err)
	}
	return nil
}

// Close releases the sequence lease and, when the store opened the
// database itself, closes it.
func (s *BadgerStore) Close() error {
	var errs []error
	if err := s.seq.Release(); err != nil {
		errs = append(errs, fmt.Errorf("release sequence: %w", err))
	}
	if s.ownsDB {
		if err := s.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close badger: %w", err))
		}
	}
	return errors.Join(errs...)
}

// badgerLogger routes badger's internal logging through zerolog.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msg(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
