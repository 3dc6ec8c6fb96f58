package initdata

import "errors"

var (
	// ErrEmptyInitData is returned when no launch credential is available.
	ErrEmptyInitData = errors.New("init data is empty")
	// ErrMalformedInitData is returned when the credential is not URL-encoded.
	ErrMalformedInitData = errors.New("init data is not url-encoded")
	// ErrMissingUser is returned when the credential lacks the user field.
	ErrMissingUser = errors.New("init data is missing the user field")
	// ErrMissingAuthDate is returned when the credential lacks the auth_date field.
	ErrMissingAuthDate = errors.New("init data is missing the auth_date field")
)
