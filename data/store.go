package data

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get for absent keys.
var ErrNotFound = errors.New("data: key not found")

// Store is the local key-value store that backs the session and the news
// draft. Values are opaque strings; callers own the encoding.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}
