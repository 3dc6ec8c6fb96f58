package initdata

import (
	"errors"
	"net/url"
	"strconv"
	"time"
)

// InitData is a decoded view of the launch credential for diagnostics and
// logging. The raw string, not this struct, is what gets exchanged with the
// backend; neither is ever persisted.
type InitData struct {
	// UserJSON is the raw JSON-encoded Telegram user field.
	UserJSON string
	// AuthDate is the moment the credential was issued.
	AuthDate time.Time
	// QueryID is the optional web app query identifier.
	QueryID string
	// Hash is the signature computed by Telegram. It is carried through
	// verbatim; this module never verifies it, the backend does.
	Hash string
}

// Validate checks the shape of a raw launch credential: it must be non-empty
// and decode to URL-encoded parameters containing both a user and an
// auth_date key. This is a shape check only, not an authenticity check.
func Validate(raw string) error {
	if raw == "" {
		return ErrEmptyInitData
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return errors.Join(ErrMalformedInitData, err)
	}

	if !values.Has("user") {
		return ErrMissingUser
	}
	if !values.Has("auth_date") {
		return ErrMissingAuthDate
	}

	return nil
}

// Parse validates raw and returns its decoded view.
func Parse(raw string) (InitData, error) {
	if err := Validate(raw); err != nil {
		return InitData{}, err
	}

	values, err := url.ParseQuery(raw)
	if err != nil {
		return InitData{}, errors.Join(ErrMalformedInitData, err)
	}

	data := InitData{
		UserJSON: values.Get("user"),
		QueryID:  values.Get("query_id"),
		Hash:     values.Get("hash"),
	}

	seconds, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
	if err != nil {
		return InitData{}, errors.Join(ErrMalformedInitData, err)
	}
	data.AuthDate = time.Unix(seconds, 0).UTC()

	return data, nil
}
