package bolt

import "errors"

var (
	// ErrFailedToOpenDatabase is returned when the database file cannot be
	// opened, typically because the path is invalid or the file is locked
	// by another process.
	ErrFailedToOpenDatabase = errors.New("failed to open bolt database")
	// ErrCorruptedEntry is returned when a stored record cannot be decoded.
	ErrCorruptedEntry = errors.New("corrupted bolt entry")
)
