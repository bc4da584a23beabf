package favorites

import (
	"context"
	"sort"
	"sync"
)

// MemStore is the in-memory Store variant for tests and dev runs.
type MemStore struct {
	mu  sync.RWMutex
	ids map[string]struct{}
}

func NewMemStore() *MemStore {
	return &MemStore{ids: make(map[string]struct{})}
}

func (s *MemStore) List(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemStore) Contains(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.ids[id]
	return ok, nil
}

func (s *MemStore) Add(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ids[id] = struct{}{}
	return nil
}

func (s *MemStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.ids, id)
	return nil
}

func (s *MemStore) Ping(_ context.Context) error { return nil }
