package credstore

import "errors"

var (
	// ErrNotFound is returned when a key is absent or its entry has expired.
	// Absence is an expected state, not a storage failure.
	ErrNotFound = errors.New("credential entry not found")
	// ErrEmptyKey is returned when an operation is attempted with an empty key.
	ErrEmptyKey = errors.New("credential key is empty")
	// ErrAlreadyStarted is returned when Start is called on a running store.
	ErrAlreadyStarted = errors.New("credential store already started")
	// ErrCleanupDisabled is returned when Start is called with cleanup disabled.
	ErrCleanupDisabled = errors.New("credential store cleanup is disabled")
)
