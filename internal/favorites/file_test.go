// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package favorites

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/moviebot-dev/moviebot/internal/models"
)

func TestNewFileStoreCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "favorites.json")
	if _, err := NewFileStore(path, zerolog.Nop()); err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Errorf("initial content = %q, want []", data)
	}
}

func TestFileStoreReadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	existing := `[{"id": 550, "title": "Fight Club", "genre_ids": [18], "overview": "An insomniac office worker."}]`
	if err := os.WriteFile(path, []byte(existing), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := NewFileStore(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	items, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].ID != 550 || items[0].GenreIDs[0] != 18 {
		t.Errorf("items = %+v", items)
	}
}

func TestFileStoreCorruptRecovery(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated json", `[{"id": 1, "title": "Inc`},
		{"wrong shape", `{"id": 1}`},
		{"garbage", "not json at all"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "favorites.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
				t.Fatal(err)
			}

			var logs bytes.Buffer
			s, err := NewFileStore(path, zerolog.New(&logs))
			if err != nil {
				t.Fatalf("NewFileStore: %v", err)
			}

			items, err := s.List(context.Background())
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(items) != 0 {
				t.Errorf("items = %+v, want empty", items)
			}

			backup, err := os.ReadFile(path + corruptSuffix)
			if err != nil {
				t.Fatalf("backup not written: %v", err)
			}
			if string(backup) != tt.content {
				t.Errorf("backup content = %q, want original", backup)
			}
			if !strings.Contains(logs.String(), `"level":"warn"`) {
				t.Errorf("expected a warning log, got %q", logs.String())
			}

			// the store keeps working after recovery
			if added, err := s.Add(context.Background(), fav(7, "after")); err != nil || !added {
				t.Errorf("Add after recovery = %v, %v", added, err)
			}
		})
	}
}

func TestFileStoreEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := NewFileStore(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	items, err := s.List(context.Background())
	if err != nil || len(items) != 0 {
		t.Errorf("List = %v, %v; want empty", items, err)
	}
	if _, err := os.Stat(path + corruptSuffix); !os.IsNotExist(err) {
		t.Error("empty file should not be treated as corrupt")
	}
}

func TestFileStoreWritesValidJSON(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()
	_, _ = s.Add(ctx, fav(1, "Amélie", 35, 10749))
	_, _ = s.Add(ctx, fav(2, "Cidade de Deus", 80, 18))

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	var items []models.FavoriteItem
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("file is not valid JSON: %v", err)
	}
	if len(items) != 2 || items[0].Title != "Amélie" {
		t.Errorf("file items = %+v", items)
	}

	// no temp files left behind
	entries, _ := os.ReadDir(filepath.Dir(s.Path()))
	for _, e := range entries {
		if strings.Contains(e.Name(), ".tmp-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}
}

func TestFileStoreSharedAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "favorites.json")
	a, _ := NewFileStore(path, zerolog.Nop())
	b, _ := NewFileStore(path, zerolog.Nop())

	_, _ = a.Add(context.Background(), fav(42, "The Hitchhiker's Guide"))
	ok, err := b.Contains(context.Background(), 42)
	if err != nil || !ok {
		t.Errorf("second instance Contains = %v, %v; want true", ok, err)
	}
}
