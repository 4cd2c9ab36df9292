package data

import (
	"context"
	"sync"

	"github.com/ncobase/newsdesk/config"
)

func init() {
	RegisterDriver(&memoryDriver{})
}

type memoryDriver struct{}

func (d *memoryDriver) Name() string {
	return "memory"
}

func (d *memoryDriver) Open(_ context.Context, _ *config.Storage) (Store, error) {
	return NewMemoryStore(), nil
}

// MemoryStore is a process local Store, used by tests and the "memory" driver.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore returns an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
