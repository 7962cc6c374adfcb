package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/ecomarket/storefront-core/internal/model"
)

var _ model.KeyValue = (*Store)(nil)

// Store persists slots as a single JSON document on disk, the local
// analog of the browser localStorage the original storefront wrote to.
// An unreadable or corrupted document is treated as empty rather than
// surfaced as an error.
type Store struct {
	mu   sync.Mutex
	path string
}

// New creates a file-backed store at the given path. The file is created
// lazily on first write.
func New(path string) *Store {
	return &Store{path: path}
}

// Read returns the value for key or model.ErrNotFound.
func (s *Store) Read(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	value, ok := doc[key]
	if !ok {
		return "", model.ErrNotFound
	}
	return value, nil
}

// Write stores value under key and rewrites the whole document.
func (s *Store) Write(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	doc[key] = value
	return s.save(doc)
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.load()
	if _, ok := doc[key]; !ok {
		return nil
	}
	delete(doc, key)
	return s.save(doc)
}

func (s *Store) load() map[string]string {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]string{}
	}

	doc := map[string]string{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return map[string]string{}
	}
	return doc
}

func (s *Store) save(doc map[string]string) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize storage document: %w", err)
	}

	// Write-then-rename keeps a crash mid-write from corrupting the
	// previous document.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("failed to write storage document: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace storage document: %w", err)
	}
	return nil
}

// Exists reports whether the backing file is present on disk.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return !errors.Is(err, fs.ErrNotExist)
}
