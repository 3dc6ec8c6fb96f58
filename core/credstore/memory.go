package credstore

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"
)

// entry holds a stored value with its optional expiry.
type entry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory implements Store using an in-process map. Expired entries are
// dropped lazily on read; Start runs an optional background sweep for
// long-lived processes that write many short-lived keys.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]entry

	cleanupInterval time.Duration
	logger          *slog.Logger

	cancel context.CancelFunc
}

// MemoryOption configures a Memory store.
type MemoryOption func(*Memory)

// WithCleanupInterval sets the background sweep interval.
// Set to 0 to disable sweeping; expiry is still enforced lazily on Get.
func WithCleanupInterval(interval time.Duration) MemoryOption {
	return func(m *Memory) {
		m.cleanupInterval = interval
	}
}

// WithMemoryLogger sets the logger for internal operations.
func WithMemoryLogger(logger *slog.Logger) MemoryOption {
	return func(m *Memory) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMemory creates an in-memory store. Call Start to begin background
// cleanup, or rely on lazy expiry alone.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries:         make(map[string]entry),
		cleanupInterval: 5 * time.Minute,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Set writes a value, overwriting any existing entry and resetting its expiry.
func (m *Memory) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if key == "" {
		return ErrEmptyKey
	}

	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()

	return nil
}

// Get returns the stored value or ErrNotFound for missing and expired keys.
// Expired entries are removed on access.
func (m *Memory) Get(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	now := time.Now()

	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok {
		return "", ErrNotFound
	}

	if e.expired(now) {
		m.mu.Lock()
		// Re-check under the write lock; the entry may have been replaced.
		if cur, ok := m.entries[key]; ok && cur.expired(now) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return "", ErrNotFound
	}

	return e.value, nil
}

// Delete removes the entry under key. Missing keys are a no-op.
func (m *Memory) Delete(ctx context.Context, key string) error {
	if key == "" {
		return ErrEmptyKey
	}

	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()

	return nil
}

// Clear removes all entries.
func (m *Memory) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]entry)
	m.mu.Unlock()

	return nil
}

// Start runs the background sweep until the context is cancelled. It blocks;
// run it in a goroutine or an errgroup. Returns an error if sweeping is
// disabled or the store is already started.
func (m *Memory) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.cancel != nil {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	if m.cleanupInterval <= 0 {
		m.mu.Unlock()
		return ErrCleanupDisabled
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.mu.Unlock()

	m.logger.InfoContext(ctx, "credstore cleanup started",
		slog.Duration("cleanup_interval", m.cleanupInterval))

	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			m.removeExpired()
		}
	}
}

// Stop cancels a running background sweep. Stopping an idle store is a no-op.
func (m *Memory) Stop() {
	m.mu.Lock()
	cancel := m.cancel
	m.cancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (m *Memory) removeExpired() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for key, e := range m.entries {
		if e.expired(now) {
			delete(m.entries, key)
			removed++
		}
	}

	if removed > 0 {
		m.logger.Debug("expired credential entries removed", slog.Int("count", removed))
	}
}

var _ Store = (*Memory)(nil)
