package credstore

import (
	"context"
	"time"
)

// Store defines the persistence contract for credential entries.
// Implementations must be safe for concurrent use.
//
// A missing or expired key is a normal state, reported with ErrNotFound so
// callers can distinguish absence from storage failures via errors.Is.
type Store interface {
	// Set writes a value under key, overwriting any existing entry and
	// resetting its expiry. A ttl <= 0 stores the entry without expiry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the value stored under key, or ErrNotFound if the key is
	// absent or its entry has expired.
	Get(ctx context.Context, key string) (string, error)

	// Delete removes the entry under key. Deleting a missing key is a no-op.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries owned by the store.
	Clear(ctx context.Context) error
}
