package auth

import "errors"

var (
	// ErrInvalidInitData is returned when the launch credential fails shape
	// validation. No network call is made in this case.
	ErrInvalidInitData = errors.New("invalid telegram init data")
	// ErrLoginFailed is returned when the credential exchange with the
	// backend does not produce a usable token and user.
	ErrLoginFailed = errors.New("login failed")
	// ErrCorruptedUserData is returned when the persisted user profile can
	// no longer be decoded.
	ErrCorruptedUserData = errors.New("persisted user data is corrupted")
)
