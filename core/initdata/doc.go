// Package initdata handles the Telegram launch credential: the opaque
// URL-encoded string the host environment hands to a Mini App at startup.
//
// The package provides credential sources (static, environment variable,
// incoming HTTP request) and the shape validation applied before a login
// exchange:
//
//	raw := initdata.FromRequest(r)
//	if err := initdata.Validate(raw); err != nil {
//		// reject before any network call
//	}
//
// Validation is deliberately shallow: the credential must decode as URL
// parameters and contain user and auth_date keys. Signature verification is
// the backend's job; the credential is used once per login attempt and never
// persisted.
package initdata
