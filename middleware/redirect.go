package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// ResumeTarget resolves where to send a user after a successful login: the
// redirect query parameter recorded by a guard, or fallback when the
// parameter is absent or unsafe. Only same-origin relative paths are
// accepted; absolute URLs and protocol-relative paths are rejected to keep
// the login flow from becoming an open redirect.
func ResumeTarget(r *http.Request, fallback string) string {
	raw := r.URL.Query().Get("redirect")
	if raw == "" {
		return fallback
	}

	target, err := url.Parse(raw)
	if err != nil {
		return fallback
	}

	if target.IsAbs() || target.Host != "" {
		return fallback
	}
	if !strings.HasPrefix(target.Path, "/") || strings.HasPrefix(target.Path, "//") {
		return fallback
	}

	return target.RequestURI()
}
