package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/miniappkit/tmauth/pkg/logger"
)

// SessionState is the view of the session the guards need. Satisfied by
// *session.Manager.
type SessionState interface {
	IsAuthenticated() bool
	RefreshAuth(ctx context.Context) bool
}

// GuardConfig configures the route guard middleware.
type GuardConfig struct {
	// Skip defines a function to skip guarding for specific requests,
	// e.g. health checks or static assets.
	Skip func(r *http.Request) bool
	// LoginPath is where unauthenticated users are sent (default: /login).
	LoginPath string
	// HomePath is where already-authenticated users are sent by
	// RequireNoAuth (default: /).
	HomePath string
	// AuthOptional makes AsyncAuth proceed instead of redirecting when the
	// session is unauthenticated or fails revalidation.
	AuthOptional bool
	// Logger for guard decisions (default: discard).
	Logger *slog.Logger
}

func (cfg GuardConfig) withDefaults() GuardConfig {
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.HomePath == "" {
		cfg.HomePath = "/"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return cfg
}

// RequireAuth guards routes that need an authenticated session: the request
// proceeds when authenticated, otherwise it is redirected to the login path
// with the original target preserved in a redirect query parameter.
func RequireAuth(sessions SessionState) func(http.Handler) http.Handler {
	return RequireAuthWithConfig(sessions, GuardConfig{})
}

// RequireAuthWithConfig is RequireAuth with custom configuration.
func RequireAuthWithConfig(sessions SessionState, cfg GuardConfig) func(http.Handler) http.Handler {
	cfg = cfg.withDefaults()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			if sessions.IsAuthenticated() {
				next.ServeHTTP(w, r)
				return
			}

			redirectToLogin(w, r, cfg)
		})
	}
}

// RequireNoAuth guards routes meant for guests, like the login page itself:
// unauthenticated requests proceed, authenticated ones are sent home.
func RequireNoAuth(sessions SessionState) func(http.Handler) http.Handler {
	return RequireNoAuthWithConfig(sessions, GuardConfig{})
}

// RequireNoAuthWithConfig is RequireNoAuth with custom configuration.
func RequireNoAuthWithConfig(sessions SessionState, cfg GuardConfig) func(http.Handler) http.Handler {
	cfg = cfg.withDefaults()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			if !sessions.IsAuthenticated() {
				next.ServeHTTP(w, r)
				return
			}

			cfg.Logger.DebugContext(r.Context(), "authenticated user redirected home",
				logger.Component("guard"),
				logger.Path(r.URL.Path),
			)
			http.Redirect(w, r, cfg.HomePath, http.StatusSeeOther)
		})
	}
}

// OptionalAuth always proceeds; it exists so routes can declare their auth
// policy explicitly even when both states are welcome.
func OptionalAuth(sessions SessionState) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return next
	}
}

// AsyncAuth guards routes that must not serve a stale session: an
// authenticated session is revalidated against the credential store before
// the request proceeds. Failed revalidation and unauthenticated requests
// redirect to the login path (unless AuthOptional is set, in which case they
// proceed). The guard fails safe: it never surfaces errors, it redirects.
func AsyncAuth(sessions SessionState) func(http.Handler) http.Handler {
	return AsyncAuthWithConfig(sessions, GuardConfig{})
}

// AsyncAuthWithConfig is AsyncAuth with custom configuration.
func AsyncAuthWithConfig(sessions SessionState, cfg GuardConfig) func(http.Handler) http.Handler {
	cfg = cfg.withDefaults()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Skip != nil && cfg.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			if sessions.IsAuthenticated() {
				if sessions.RefreshAuth(r.Context()) {
					next.ServeHTTP(w, r)
					return
				}

				cfg.Logger.InfoContext(r.Context(), "session failed revalidation",
					logger.Component("guard"),
					logger.Path(r.URL.Path),
				)
				if cfg.AuthOptional {
					next.ServeHTTP(w, r)
					return
				}
				redirectToLogin(w, r, cfg)
				return
			}

			if cfg.AuthOptional {
				next.ServeHTTP(w, r)
				return
			}
			redirectToLogin(w, r, cfg)
		})
	}
}

// redirectToLogin sends the client to the login path, preserving the
// original target so the login flow can resume it afterwards.
func redirectToLogin(w http.ResponseWriter, r *http.Request, cfg GuardConfig) {
	cfg.Logger.DebugContext(r.Context(), "unauthenticated request redirected to login",
		logger.Component("guard"),
		logger.Method(r.Method),
		logger.Path(r.URL.Path),
	)

	target := cfg.LoginPath + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, target, http.StatusSeeOther)
}
