package catalog

import (
	"sort"
	"sync"
)

// Store is the read-only in-memory catalog table. Products keep the
// order they appeared in the source file. Replace swaps the whole
// table at once; individual products never change.
type Store struct {
	mu   sync.RWMutex
	list []Product
	byID map[string]Product
}

func NewStore(products []Product) *Store {
	s := &Store{}
	s.Replace(products)
	return s
}

// Replace installs a freshly loaded product table.
func (s *Store) Replace(products []Product) {
	byID := make(map[string]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	s.mu.Lock()
	s.list = products
	s.byID = byID
	s.mu.Unlock()
}

// List returns the products in source order. The returned slice is a
// copy and safe to filter or sort in place.
func (s *Store) List() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, len(s.list))
	copy(out, s.list)
	return out
}

func (s *Store) Get(id string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	return p, ok
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.list)
}

// Countries returns the distinct country values, sorted. Blank values
// are dropped. Regions and Varietals behave the same way.
func (s *Store) Countries() []string { return s.facet(func(p Product) string { return p.Country }) }

func (s *Store) Regions() []string { return s.facet(func(p Product) string { return p.Region }) }

func (s *Store) Varietals() []string { return s.facet(func(p Product) string { return p.Varietal }) }

func (s *Store) facet(value func(Product) string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	out := make([]string, 0, 32)
	for _, p := range s.list {
		v := value(p)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	sort.Strings(out)
	return out
}
