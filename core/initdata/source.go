package initdata

import (
	"net/http"
	"os"
	"strings"
)

// DefaultEnvVar is the environment variable read by the env-backed source.
const DefaultEnvVar = "TMA_INIT_DATA"

// authScheme is the Authorization scheme carrying raw init data, as used by
// Telegram Mini App frontends talking to their own backend.
const authScheme = "tma"

// Source supplies the current raw launch credential.
// Implementations return an empty string when no credential is available.
type Source interface {
	InitData() string
}

// Static is a fixed launch credential, useful for tests and one-shot tools.
type Static string

// InitData implements Source.
func (s Static) InitData() string { return string(s) }

type envSource struct {
	name string
}

// FromEnv returns a Source that reads the credential from an environment
// variable on every call. The variable defaults to TMA_INIT_DATA.
func FromEnv(name ...string) Source {
	src := envSource{name: DefaultEnvVar}
	if len(name) > 0 && name[0] != "" {
		src.name = name[0]
	}
	return src
}

// InitData implements Source.
func (s envSource) InitData() string { return os.Getenv(s.name) }

// FromRequest extracts the raw launch credential from an incoming HTTP
// request: the "Authorization: tma <raw>" header first, then the
// tgWebAppData query parameter. Returns an empty string when neither is set.
func FromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		scheme, raw, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, authScheme) {
			return strings.TrimSpace(raw)
		}
	}

	return r.URL.Query().Get("tgWebAppData")
}
