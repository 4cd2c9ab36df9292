// Package redis provides a Redis backed store for newsdesk/data, useful when
// several newsdesk instances share one session. It registers itself when imported:
//
//	import _ "github.com/ncobase/newsdesk/data/redis"
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/ncobase/newsdesk/config"
	"github.com/ncobase/newsdesk/data"
	"github.com/redis/go-redis/v9"
)

type driver struct{}

func (d *driver) Name() string {
	return "redis"
}

func (d *driver) Open(ctx context.Context, cfg *config.Storage) (data.Store, error) {
	redisCfg := cfg.Redis
	if redisCfg == nil || redisCfg.Addr == "" {
		return nil, fmt.Errorf("redis: address is empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Username: redisCfg.Username,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: failed to ping server: %w", err)
	}

	return New(client, redisCfg.Prefix), nil
}

func init() {
	data.RegisterDriver(&driver{})
}

// Store is a data.Store on top of a redis client. Keys are namespaced with prefix.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// New wraps an existing client
func New(client redis.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	v, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", data.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis: get %s: %w", key, err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("redis: delete %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	if err := s.client.Close(); err != nil {
		return fmt.Errorf("redis: failed to close connection: %w", err)
	}
	return nil
}
