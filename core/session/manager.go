package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/miniappkit/tmauth/core/auth"
	"github.com/miniappkit/tmauth/core/credstore"
	"github.com/miniappkit/tmauth/core/initdata"
	"github.com/miniappkit/tmauth/pkg/logger"
)

// Manager owns the in-memory session state and funnels every mutation
// through the auth service. Consumers get read-only snapshots and change
// notifications; nothing outside this package writes State directly.
type Manager struct {
	mu    sync.RWMutex
	state State

	service *auth.Service
	creds   initdata.Source
	logger  *slog.Logger

	subMu   sync.Mutex
	subs    map[int]func(State)
	nextSub int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger for session diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.logger = log
		}
	}
}

// NewManager creates a session manager over the given auth service and
// credential source.
func NewManager(service *auth.Service, creds initdata.Source, opts ...Option) *Manager {
	m := &Manager{
		service: service,
		creds:   creds,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		subs:    make(map[int]func(State)),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Init hydrates the session from persisted credentials. Both the token and
// the profile must be present to mark the session authenticated; anything
// less leaves it unauthenticated. Init never fails outward: storage errors
// are captured into the state's Error field.
func (m *Manager) Init(ctx context.Context) {
	token, tokenErr := m.service.Token(ctx)
	user, userErr := m.service.CurrentUser(ctx)
	if errors.Is(userErr, credstore.ErrNotFound) {
		userErr = nil
		user = nil
	}

	m.setState(func(s *State) {
		*s = State{}
		if tokenErr != nil || userErr != nil {
			m.logger.ErrorContext(ctx, "failed to initialize session",
				logger.Component("session"),
				logger.Errors(tokenErr, userErr),
			)
			s.Error = "failed to initialize authentication"
			return
		}
		if token != "" && user != nil {
			s.User = user
			s.Token = token
			s.IsAuthenticated = true
		}
	})
}

// Login runs the full login flow: flags the loading state, pulls the launch
// credential from the source, delegates the exchange to the auth service,
// and applies the outcome atomically. The loading flag is always cleared,
// success or not. Returns true when the session ends up authenticated.
func (m *Manager) Login(ctx context.Context) bool {
	m.setState(func(s *State) {
		s.IsLoading = true
		s.Error = ""
	})

	raw := m.creds.InitData()
	if raw == "" {
		m.setState(func(s *State) {
			s.IsLoading = false
			s.Error = "telegram init data not available"
		})
		return false
	}

	user, err := m.service.Login(ctx, raw)
	if err != nil {
		m.logger.WarnContext(ctx, "login failed",
			logger.Component("session"),
			logger.Error(err),
		)
		m.setState(func(s *State) {
			s.IsLoading = false
			s.Error = err.Error()
		})
		return false
	}

	token, err := m.service.Token(ctx)
	if err != nil || token == "" {
		m.setState(func(s *State) {
			s.IsLoading = false
			s.Error = "failed to load session token"
		})
		return false
	}

	m.setState(func(s *State) {
		*s = State{
			User:            user,
			Token:           token,
			IsAuthenticated: true,
		}
	})
	return true
}

// Logout clears persisted credentials and resets the session. Persistence
// failures are logged and swallowed here: from the caller's perspective
// logout always succeeds, and repeating it is a no-op.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.service.Logout(ctx); err != nil {
		m.logger.WarnContext(ctx, "logout cleanup failed",
			logger.Component("session"),
			logger.Error(err),
		)
	}

	m.setState(func(s *State) {
		*s = State{}
	})
}

// RefreshAuth re-validates the persisted session. On success the session is
// re-hydrated; on failure the session is logged out. Returns the validation
// result.
func (m *Manager) RefreshAuth(ctx context.Context) bool {
	ok, err := m.service.RefreshAuth(ctx)
	if err != nil {
		m.logger.WarnContext(ctx, "auth refresh failed",
			logger.Component("session"),
			logger.Error(err),
		)
		m.setState(func(s *State) {
			s.Error = "authentication refresh failed"
		})
		return false
	}

	if ok {
		m.Init(ctx)
	} else {
		m.Logout(ctx)
	}

	return ok
}

// UpdateUser merges a partial profile update into the current user and
// re-persists the merged profile. Returns false without side effects when no
// user is present.
func (m *Manager) UpdateUser(ctx context.Context, patch UserPatch) bool {
	m.mu.Lock()
	if m.state.User == nil {
		m.mu.Unlock()
		return false
	}

	merged := patch.apply(*m.state.User)
	m.state.User = &merged
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	if err := m.service.SaveUser(ctx, &merged); err != nil {
		m.logger.WarnContext(ctx, "failed to persist updated profile",
			logger.Component("session"),
			logger.Error(err),
		)
	}

	m.notify(snapshot)
	return true
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// User returns a copy of the current user profile, or nil.
func (m *Manager) User() *auth.UserProfile {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked().User
}

// Token returns the current session token, or an empty string.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Token
}

// IsAuthenticated reports whether the session is authenticated.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.IsAuthenticated
}

// IsLoading reports whether a login is in progress.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.IsLoading
}

// Err returns the last recorded error message, or an empty string.
func (m *Manager) Err() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Error
}

// ClearError resets the error message without touching the rest of the state.
func (m *Manager) ClearError() {
	m.setState(func(s *State) {
		s.Error = ""
	})
}

// Subscribe registers fn to receive a state snapshot after every transition.
// Callbacks run synchronously on the mutating goroutine, outside the state
// lock. The returned function removes the subscription.
func (m *Manager) Subscribe(fn func(State)) func() {
	m.subMu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.subMu.Unlock()

	return func() {
		m.subMu.Lock()
		delete(m.subs, id)
		m.subMu.Unlock()
	}
}

// setState applies a mutation atomically and notifies subscribers with the
// resulting snapshot.
func (m *Manager) setState(mutate func(*State)) {
	m.mu.Lock()
	mutate(&m.state)
	snapshot := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(snapshot)
}

// snapshotLocked copies the state, cloning the profile so callers cannot
// mutate the managed copy. Callers must hold at least a read lock.
func (m *Manager) snapshotLocked() State {
	snapshot := m.state
	if m.state.User != nil {
		user := *m.state.User
		snapshot.User = &user
	}
	return snapshot
}

func (m *Manager) notify(snapshot State) {
	m.subMu.Lock()
	subs := make([]func(State), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.subMu.Unlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}
