package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"go.etcd.io/bbolt"

	"github.com/miniappkit/tmauth/core/credstore"
)

// bucketName holds all credential entries. A single bucket is enough because
// keys are already namespaced by the callers.
var bucketName = []byte("credentials")

// entry is the on-disk record format. A zero ExpiresAt means no expiry.
type entry struct {
	Value     string    `json:"value"`
	ExpiresAt time.Time `json:"expires_at,omitzero"`
}

// Store is a bbolt-backed credential store. Entries survive process restarts,
// and expired records are removed lazily on read.
type Store struct {
	db *bbolt.DB
}

var _ credstore.Store = (*Store)(nil)

// New returns a Store backed by the given open database.
func New(db *bbolt.DB) *Store {
	return &Store{db: db}
}

// Open opens the database file described by cfg and returns a Store over it.
// The file is created if it does not exist.
func Open(cfg Config) (*Store, error) {
	db, err := bbolt.Open(cfg.Path, fs.FileMode(cfg.FileMode), &bbolt.Options{Timeout: cfg.Timeout})
	if err != nil {
		return nil, errors.Join(ErrFailedToOpenDatabase, err)
	}
	return New(db), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Set writes a value under key, overwriting any existing entry and resetting
// its expiry. A ttl <= 0 stores the entry without expiry.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if key == "" {
		return credstore.ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	rec := entry{Value: value}
	if ttl > 0 {
		rec.ExpiresAt = time.Now().Add(ttl)
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encoding entry %q: %w", key, err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return err
		}
		return b.Put([]byte(key), data)
	})
}

// Get returns the value stored under key, or credstore.ErrNotFound if the key
// is absent or expired. Expired records are deleted before returning.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", credstore.ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var rec entry
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return credstore.ErrNotFound
		}
		data := b.Get([]byte(key))
		if data == nil {
			return credstore.ErrNotFound
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return errors.Join(ErrCorruptedEntry, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if !rec.ExpiresAt.IsZero() && time.Now().After(rec.ExpiresAt) {
		// Reads never expect to mutate the database, so expired records are
		// removed in a separate write transaction.
		if err := s.Delete(ctx, key); err != nil {
			return "", err
		}
		return "", credstore.ErrNotFound
	}
	return rec.Value, nil
}

// Delete removes the entry under key. Deleting a missing key is a no-op.
func (s *Store) Delete(ctx context.Context, key string) error {
	if key == "" {
		return credstore.ErrEmptyKey
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// Clear removes all entries owned by the store.
func (s *Store) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		if tx.Bucket(bucketName) == nil {
			return nil
		}
		return tx.DeleteBucket(bucketName)
	})
}
