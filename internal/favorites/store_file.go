package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const fileMode = 0o644

// document is the persisted shape. IDs are stored sorted so an
// unmodified load→save round-trips byte for byte.
type document struct {
	IDs []string `json:"ids"`
}

// FileStore keeps the favorites set in a single JSON file, rewritten
// whole on every mutation. A missing file is an empty set; it is
// created on the first write. When a write fails the in-memory set is
// rolled back, so memory and disk never observably diverge.
type FileStore struct {
	mu   sync.Mutex
	path string
	ids  map[string]struct{}
}

func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		ids:  make(map[string]struct{}),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *FileStore) load() error {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrPersistence, s.path, err)
	}
	if len(raw) == 0 {
		return nil
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrPersistence, s.path, err)
	}
	for _, id := range doc.IDs {
		if id != "" {
			s.ids[id] = struct{}{}
		}
	}
	return nil
}

func (s *FileStore) List(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedIDs(), nil
}

func (s *FileStore) Contains(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.ids[id]
	return ok, nil
}

func (s *FileStore) Add(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		return nil
	}

	s.ids[id] = struct{}{}
	if err := s.persist(); err != nil {
		delete(s.ids, id)
		return err
	}
	return nil
}

func (s *FileStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; !ok {
		return nil
	}

	delete(s.ids, id)
	if err := s.persist(); err != nil {
		s.ids[id] = struct{}{}
		return err
	}
	return nil
}

func (s *FileStore) Ping(_ context.Context) error {
	dir := filepath.Dir(s.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

// persist rewrites the whole file via temp+rename so a crash mid-write
// never leaves a truncated favorites file behind.
func (s *FileStore) persist() error {
	doc := document{IDs: s.sortedIDs()}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	raw = append(raw, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".favorites-*.json")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := os.Chmod(tmp.Name(), fileMode); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func (s *FileStore) sortedIDs() []string {
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
