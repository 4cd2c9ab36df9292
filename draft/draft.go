// Package draft persists the unsaved news-create form under the
// "news_draft_data" key so it survives a restart.
package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/ncobase/newsdesk/consts"
	"github.com/ncobase/newsdesk/data"
	"github.com/ncobase/newsdesk/structs"
)

// Store reads and writes the single news draft
type Store struct {
	mu sync.Mutex
	kv data.Store
}

// New creates a draft store over kv
func New(kv data.Store) *Store {
	return &Store{kv: kv}
}

// Load returns the saved draft. A missing or malformed draft yields an empty
// one and ok=false.
func (s *Store) Load(ctx context.Context) (d structs.Draft, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.kv.Get(ctx, consts.DraftStorageKey)
	if errors.Is(err, data.ErrNotFound) {
		return structs.NewDraft(), false, nil
	}
	if err != nil {
		return structs.NewDraft(), false, fmt.Errorf("draft: read: %w", err)
	}

	d = structs.NewDraft()
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		return structs.NewDraft(), false, nil
	}
	if d.Status == "" {
		d.Status = structs.StatusDraft
	}
	if d.Tags == nil {
		d.Tags = []string{}
	}
	return d, true, nil
}

// Save replaces the saved draft
func (s *Store) Save(ctx context.Context, d structs.Draft) error {
	raw, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("draft: encode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Set(ctx, consts.DraftStorageKey, string(raw)); err != nil {
		return fmt.Errorf("draft: write: %w", err)
	}
	return nil
}

// Clear removes the saved draft
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, consts.DraftStorageKey); err != nil {
		return fmt.Errorf("draft: clear: %w", err)
	}
	return nil
}
