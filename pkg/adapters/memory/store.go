package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/kwargs/pkg/value"
)

// Store implements ports.DictStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]value.Value
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]value.Value),
	}
}

// Save stores a deep copy of dict so later caller mutations don't leak in.
func (s *Store) Save(ctx context.Context, name string, dict value.Value) error {
	copied := dict.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = copied
	return nil
}

// Load returns a deep copy of the stored dict.
func (s *Store) Load(ctx context.Context, name string) (value.Value, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	dict, ok := s.data[name]
	if !ok {
		return value.Null(), value.ErrNotFound
	}
	return dict.Clone(), nil
}

// Delete removes the dict.
func (s *Store) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, name)
	return nil
}

// List returns stored names in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.data))
	for name := range s.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
