package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/miniappkit/tmauth/core/apiclient"
	"github.com/miniappkit/tmauth/core/credstore"
	"github.com/miniappkit/tmauth/core/initdata"
	"github.com/miniappkit/tmauth/pkg/logger"
)

const (
	// TokenKey is the persisted-storage key for the session token.
	TokenKey = "auth_token"
	// UserKey is the persisted-storage key for the serialized user profile.
	UserKey = "user_data"

	// DefaultEndpoint is the backend path for the credential exchange.
	DefaultEndpoint = "/auth/telegram"
	// DefaultTokenTTL is how long persisted credentials remain valid.
	DefaultTokenTTL = 30 * 24 * time.Hour

	// loginFlightKey serializes overlapping login exchanges.
	loginFlightKey = "login"
)

// Service orchestrates the credential-for-token exchange and owns the
// contract between the transport client and the credential store. It holds
// no in-memory state of its own: the store is the source of truth, which
// keeps the service safe for concurrent use.
type Service struct {
	api      *apiclient.Client
	store    credstore.Store
	endpoint string
	ttl      time.Duration
	logger   *slog.Logger

	// flight collapses concurrent Login calls into one backend exchange:
	// late callers join the in-flight result instead of racing it.
	flight singleflight.Group
}

// Option configures a Service.
type Option func(*Service)

// WithEndpoint overrides the credential exchange path.
func WithEndpoint(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.endpoint = path
		}
	}
}

// WithTokenTTL overrides how long persisted credentials live.
func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger for auth diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.logger = log
		}
	}
}

// New creates an auth service over the given transport and store.
func New(api *apiclient.Client, store credstore.Store, opts ...Option) *Service {
	s := &Service{
		api:      api,
		store:    store,
		endpoint: DefaultEndpoint,
		ttl:      DefaultTokenTTL,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// loginRequest is the exchange request body.
type loginRequest struct {
	InitData string `json:"init_data"`
}

// loginResponse is the exchange response body. The flat token/user shape is
// the authoritative contract; nested envelopes are not supported.
type loginResponse struct {
	Token string       `json:"token"`
	User  *UserProfile `json:"user"`
}

// Login exchanges a raw launch credential for a session token and user
// profile, persists both, and returns the profile. The credential is shape
// validated first; invalid credentials fail with ErrInvalidInitData before
// any network call. Concurrent Login calls share a single exchange.
func (s *Service) Login(ctx context.Context, raw string) (*UserProfile, error) {
	if err := initdata.Validate(raw); err != nil {
		return nil, errors.Join(ErrInvalidInitData, err)
	}

	v, err, shared := s.flight.Do(loginFlightKey, func() (any, error) {
		return s.exchange(ctx, raw)
	})
	if err != nil {
		return nil, err
	}

	if shared {
		s.logger.DebugContext(ctx, "login joined in-flight exchange",
			logger.Component("auth"))
	}

	return v.(*UserProfile), nil
}

// exchange performs the actual backend call and persists the result.
func (s *Service) exchange(ctx context.Context, raw string) (*UserProfile, error) {
	resp, err := s.api.Post(ctx, s.endpoint, loginRequest{InitData: raw}, apiclient.WithoutAuth())
	if err != nil {
		return nil, errors.Join(ErrLoginFailed, err)
	}

	var body loginResponse
	if err := resp.Decode(&body); err != nil {
		return nil, errors.Join(ErrLoginFailed, err)
	}
	if body.Token == "" || body.User == nil {
		return nil, fmt.Errorf("%w: response is missing token or user", ErrLoginFailed)
	}

	encoded, err := json.Marshal(body.User)
	if err != nil {
		return nil, errors.Join(ErrLoginFailed, err)
	}

	if err := s.store.Set(ctx, TokenKey, body.Token, s.ttl); err != nil {
		return nil, errors.Join(ErrLoginFailed, err)
	}
	if err := s.store.Set(ctx, UserKey, string(encoded), s.ttl); err != nil {
		// Roll back the token so an authenticated state never exists
		// without a matching profile.
		_ = s.store.Delete(ctx, TokenKey)
		return nil, errors.Join(ErrLoginFailed, err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		logger.Component("auth"),
		logger.ID("telegram_id", body.User.TelegramID),
	)

	return body.User, nil
}

// Logout removes both persisted entries. It is idempotent; missing entries
// are not an error. Persistence failures are returned to the caller instead
// of being swallowed, so tests and callers can observe them.
func (s *Service) Logout(ctx context.Context) error {
	errToken := s.store.Delete(ctx, TokenKey)
	errUser := s.store.Delete(ctx, UserKey)

	if err := errors.Join(errToken, errUser); err != nil {
		return fmt.Errorf("logout: %w", err)
	}

	return nil
}

// IsAuthenticated reports whether a session token is currently persisted.
func (s *Service) IsAuthenticated(ctx context.Context) bool {
	token, err := s.store.Get(ctx, TokenKey)
	return err == nil && token != ""
}

// Token returns the persisted session token, or an empty string when no
// token exists. Implements apiclient.TokenSource.
func (s *Service) Token(ctx context.Context) (string, error) {
	token, err := s.store.Get(ctx, TokenKey)
	if errors.Is(err, credstore.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return token, nil
}

// CurrentUser returns the persisted user profile. A missing profile yields
// credstore.ErrNotFound; an undecodable one yields ErrCorruptedUserData.
func (s *Service) CurrentUser(ctx context.Context) (*UserProfile, error) {
	encoded, err := s.store.Get(ctx, UserKey)
	if err != nil {
		return nil, err
	}

	var user UserProfile
	if err := json.Unmarshal([]byte(encoded), &user); err != nil {
		return nil, errors.Join(ErrCorruptedUserData, err)
	}

	return &user, nil
}

// SaveUser re-persists a profile, resetting its expiry. Used after partial
// profile updates.
func (s *Service) SaveUser(ctx context.Context, user *UserProfile) error {
	encoded, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, UserKey, string(encoded), s.ttl)
}

// RefreshAuth re-validates the persisted session without calling the
// network: both entries must exist, and a token that parses as a JWT must
// not be past its expiry claim. Returns false when the session is no longer
// valid; the caller is expected to follow up with Logout. The error return
// reports storage failures, not invalid sessions.
func (s *Service) RefreshAuth(ctx context.Context) (bool, error) {
	token, err := s.store.Get(ctx, TokenKey)
	if errors.Is(err, credstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if _, err := s.store.Get(ctx, UserKey); err != nil {
		if errors.Is(err, credstore.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	if tokenExpired(token) {
		s.logger.InfoContext(ctx, "session token expired",
			logger.Component("auth"))
		return false, nil
	}

	return true, nil
}

// tokenExpired inspects a token's exp claim without verifying its signature.
// Opaque (non-JWT) tokens and JWTs without an exp claim never expire here;
// the backend remains the authority on token validity.
func tokenExpired(token string) bool {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}

	return exp.Before(time.Now())
}
