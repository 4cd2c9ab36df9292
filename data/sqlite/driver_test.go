package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ncobase/newsdesk/config"
	"github.com/ncobase/newsdesk/data"
)

func TestDriverName(t *testing.T) {
	d := &driver{}
	if d.Name() != "sqlite" {
		t.Errorf("expected driver name 'sqlite', got %q", d.Name())
	}
}

func TestOpenEmptySource(t *testing.T) {
	d := &driver{}
	if _, err := d.Open(context.Background(), &config.Storage{Sqlite: &config.Sqlite{}}); err == nil {
		t.Fatal("expected error for empty source")
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	source := filepath.Join(t.TempDir(), "store.db")

	store, err := data.Open(ctx, &config.Storage{Driver: "sqlite", Sqlite: &config.Sqlite{Source: source}})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := store.Get(ctx, "token"); !errors.Is(err, data.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Set(ctx, "token", "first"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := store.Set(ctx, "token", "second"); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := New(ctx, source)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	v, err := reopened.Get(ctx, "token")
	if err != nil || v != "second" {
		t.Fatalf("expected second, got %q %v", v, err)
	}
	if err := reopened.Delete(ctx, "token"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := reopened.Get(ctx, "token"); !errors.Is(err, data.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestFilePath(t *testing.T) {
	tests := map[string]string{
		":memory:":                    "",
		"file::memory:?cache=shared":  "",
		"/tmp/a.db":                   "/tmp/a.db",
		"file:/tmp/b.db?_journal=WAL": "/tmp/b.db",
	}
	for in, want := range tests {
		if got := filePath(in); got != want {
			t.Errorf("filePath(%q) = %q, want %q", in, got, want)
		}
	}
}
