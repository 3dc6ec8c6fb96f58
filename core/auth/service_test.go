package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miniappkit/tmauth/core/apiclient"
	"github.com/miniappkit/tmauth/core/auth"
	"github.com/miniappkit/tmauth/core/credstore"
)

const validInitData = "user=%7B%22id%22%3A1%7D&auth_date=1700000000"

func newClient(t *testing.T, baseURL string) *apiclient.Client {
	t.Helper()
	client, err := apiclient.New(apiclient.Config{
		BaseURL:       baseURL,
		Timeout:       time.Second,
		RetryAttempts: 1,
		RetryDelay:    time.Millisecond,
	})
	require.NoError(t, err)
	return client
}

func authBackend(t *testing.T, calls *atomic.Int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)

		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/telegram", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body struct {
			InitData string `json:"init_data"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, validInitData, body.InitData)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"token": "abc",
			"user": {"id": 1, "telegram_id": 42, "username": "alice", "first_name": "Alice", "last_name": "Doe"}
		}`))
	}))
}

func TestLogin(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls atomic.Int32
	srv := authBackend(t, &calls)
	defer srv.Close()

	store := credstore.NewMemory()
	service := auth.New(newClient(t, srv.URL), store)

	user, err := service.Login(ctx, validInitData)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.ID)
	assert.Equal(t, int64(42), user.TelegramID)
	assert.Equal(t, "alice", user.Username)

	token, err := store.Get(ctx, auth.TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	assert.True(t, service.IsAuthenticated(ctx))

	saved, err := service.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user, saved)
}

func TestLoginInvalidInitData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls atomic.Int32
	srv := authBackend(t, &calls)
	defer srv.Close()

	service := auth.New(newClient(t, srv.URL), credstore.NewMemory())

	cases := []string{
		"",
		"auth_date=1700000000",
		"user=%7B%7D",
	}
	for _, raw := range cases {
		_, err := service.Login(ctx, raw)
		assert.ErrorIs(t, err, auth.ErrInvalidInitData)
	}

	assert.Equal(t, int32(0), calls.Load(), "no network call for invalid credentials")
	assert.False(t, service.IsAuthenticated(ctx))
}

func TestLoginBackendError(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := credstore.NewMemory()
	service := auth.New(newClient(t, srv.URL), store)

	_, err := service.Login(ctx, validInitData)
	require.ErrorIs(t, err, auth.ErrLoginFailed)

	var apiErr *apiclient.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	assert.False(t, service.IsAuthenticated(ctx))
	_, err = store.Get(ctx, auth.TokenKey)
	assert.ErrorIs(t, err, credstore.ErrNotFound)
}

func TestLoginMalformedResponse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"token": ""}`))
	}))
	defer srv.Close()

	service := auth.New(newClient(t, srv.URL), credstore.NewMemory())

	_, err := service.Login(ctx, validInitData)
	assert.ErrorIs(t, err, auth.ErrLoginFailed)
}

func TestLoginConcurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls atomic.Int32
	received := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			close(received)
			<-release
		}
		_, _ = w.Write([]byte(`{"token": "abc", "user": {"id": 1}}`))
	}))
	defer srv.Close()

	service := auth.New(newClient(t, srv.URL), credstore.NewMemory())

	var wg sync.WaitGroup
	results := make([]error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, results[0] = service.Login(ctx, validInitData)
	}()

	<-received

	wg.Add(1)
	go func() {
		defer wg.Done()
		_, results[1] = service.Login(ctx, validInitData)
	}()

	// Give the second caller time to join the in-flight exchange.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.NoError(t, results[0])
	assert.NoError(t, results[1])
	assert.Equal(t, int32(1), calls.Load(), "overlapping logins share one exchange")
}

func TestLogoutIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls atomic.Int32
	srv := authBackend(t, &calls)
	defer srv.Close()

	store := credstore.NewMemory()
	service := auth.New(newClient(t, srv.URL), store)

	_, err := service.Login(ctx, validInitData)
	require.NoError(t, err)
	require.True(t, service.IsAuthenticated(ctx))

	require.NoError(t, service.Logout(ctx))
	assert.False(t, service.IsAuthenticated(ctx))

	_, err = store.Get(ctx, auth.UserKey)
	assert.ErrorIs(t, err, credstore.ErrNotFound)

	// Logging out again is a no-op, not an error.
	require.NoError(t, service.Logout(ctx))
	assert.False(t, service.IsAuthenticated(ctx))
}

func TestRefreshAuth(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	var calls atomic.Int32
	srv := authBackend(t, &calls)
	defer srv.Close()

	store := credstore.NewMemory()
	service := auth.New(newClient(t, srv.URL), store)

	ok, err := service.RefreshAuth(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "no persisted session")

	_, err = service.Login(ctx, validInitData)
	require.NoError(t, err)

	ok, err = service.RefreshAuth(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	// Removing the profile invalidates the session even with a token present.
	require.NoError(t, store.Delete(ctx, auth.UserKey))
	ok, err = service.RefreshAuth(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRefreshAuthExpiredJWT(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := credstore.NewMemory()
	service := auth.New(nil, store)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	require.NoError(t, store.Set(ctx, auth.TokenKey, expired, 0))
	require.NoError(t, store.Set(ctx, auth.UserKey, `{"id":1}`, 0))

	ok, err := service.RefreshAuth(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "expired JWT invalidates the session")

	// An opaque token with the same profile stays valid.
	require.NoError(t, store.Set(ctx, auth.TokenKey, "opaque-token", 0))
	ok, err = service.RefreshAuth(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCurrentUserCorrupted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := credstore.NewMemory()
	service := auth.New(nil, store)

	require.NoError(t, store.Set(ctx, auth.UserKey, "{not json", 0))

	_, err := service.CurrentUser(ctx)
	assert.ErrorIs(t, err, auth.ErrCorruptedUserData)
}

func TestTokenSource(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := credstore.NewMemory()
	service := auth.New(nil, store)

	token, err := service.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token, "missing token is not an error")

	require.NoError(t, store.Set(ctx, auth.TokenKey, "abc", 0))
	token, err = service.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", token)
}
