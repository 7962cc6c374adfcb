package memory

import (
	"context"
	"sync"

	"github.com/ecomarket/storefront-core/internal/model"
)

var _ model.KeyValue = (*Store)(nil)

// Store is a map-backed key-value store. It is the default backend for
// tests and for running the demo without any persistence.
type Store struct {
	mu   sync.RWMutex
	data map[string]string
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{data: make(map[string]string)}
}

// Read returns the value for key or model.ErrNotFound.
func (s *Store) Read(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return "", model.ErrNotFound
	}
	return value, nil
}

// Write stores value under key.
func (s *Store) Write(_ context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}
