// Package file provides a JSON file store for newsdesk/data.
//
// All keys live in one JSON object on disk. Every write replaces the file
// atomically through a temp file and rename, so a crash never leaves a
// half-written session behind. It registers itself automatically when imported:
//
//	import _ "github.com/ncobase/newsdesk/data/file"
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/ncobase/newsdesk/config"
	"github.com/ncobase/newsdesk/data"
)

// driver implements data.Driver for the JSON file store.
type driver struct{}

// Name returns the driver identifier used in configuration files.
func (d *driver) Name() string {
	return "file"
}

// Open loads the file at cfg.Path, creating its directory when missing.
func (d *driver) Open(_ context.Context, cfg *config.Storage) (data.Store, error) {
	return New(cfg.Path)
}

func init() {
	data.RegisterDriver(&driver{})
}

// Store is a data.Store persisted as a JSON object
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// New opens the store at path
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("file: path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("file: failed to create directory: %w", err)
	}

	s := &Store{path: path, values: make(map[string]string)}
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("file: failed to read %s: %w", path, err)
	}

	// A corrupt file is treated as empty; the next write replaces it.
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.values); err != nil {
			s.values = make(map[string]string)
		}
	}
	return s, nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", data.ErrNotFound
	}
	return v, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.values[key]
	s.values[key] = value
	if err := s.flushLocked(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, had := s.values[key]
	if !had {
		return nil
	}
	delete(s.values, key)
	if err := s.flushLocked(); err != nil {
		s.values[key] = prev
		return err
	}
	return nil
}

func (s *Store) Close() error { return nil }

func (s *Store) flushLocked() error {
	raw, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return fmt.Errorf("file: failed to encode store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".store-*.json")
	if err != nil {
		return fmt.Errorf("file: failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("file: failed to write store: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("file: failed to chmod store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file: failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("file: failed to replace store: %w", err)
	}
	return nil
}
