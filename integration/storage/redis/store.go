package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/miniappkit/tmauth/core/credstore"
)

const defaultScanBatchSize = 1000

// Store is a Redis-backed credential store. Expiry is delegated to Redis
// through per-key TTLs, so entries disappear server-side without any cleanup
// on the client.
type Store struct {
	client        *redis.Client
	prefix        string
	scanBatchSize int
}

var _ credstore.Store = (*Store)(nil)

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeyPrefix overrides the key namespace. The default is "tmauth:".
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithScanBatchSize sets the batch size used by Clear when scanning keys.
func WithScanBatchSize(size int) StoreOption {
	return func(s *Store) {
		if size > 0 {
			s.scanBatchSize = size
		}
	}
}

// NewStore returns a Store over the given client. All keys are namespaced
// with a prefix so the store can share a Redis database with other data.
func NewStore(client *redis.Client, opts ...StoreOption) *Store {
	s := &Store{
		client:        client,
		prefix:        "tmauth:",
		scanBatchSize: defaultScanBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) key(key string) string {
	return s.prefix + key
}

// Set writes a value under key. A ttl <= 0 stores the entry without expiry.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if key == "" {
		return credstore.ErrEmptyKey
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key, or credstore.ErrNotFound if the key
// is absent or its TTL has elapsed.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", credstore.ErrEmptyKey
	}
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", credstore.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("getting %q: %w", key, err)
	}
	return value, nil
}

// Delete removes the entry under key. Deleting a missing key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return credstore.ErrEmptyKey
	}
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

// Clear removes all entries under the store's prefix. Keys are collected with
// SCAN in batches to avoid blocking Redis on large keyspaces.
func (s *Store) Clear(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", int64(s.scanBatchSize)).Result()
		if err != nil {
			return fmt.Errorf("scanning keys: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("deleting keys: %w", err)
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
