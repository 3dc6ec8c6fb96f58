package apiclient

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrInvalidConfig is returned when the client configuration is unusable.
	ErrInvalidConfig = errors.New("invalid api client config")
	// ErrTimeout is returned when a request attempt exceeds the configured deadline.
	ErrTimeout = errors.New("request timeout")
	// ErrNetwork is returned when a request fails before receiving a response.
	ErrNetwork = errors.New("network error occurred")
)

// APIError represents a non-2xx response from the backend.
type APIError struct {
	Status     int
	StatusText string
	Message    string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.Status, e.StatusText, e.Message)
}

// Temporary reports whether the failure is worth retrying. Server errors and
// the two retryable client statuses (request timeout, too many requests)
// qualify; other client errors are permanent.
func (e *APIError) Temporary() bool {
	return e.Status >= http.StatusInternalServerError ||
		e.Status == http.StatusRequestTimeout ||
		e.Status == http.StatusTooManyRequests
}

// newAPIError builds an APIError with the canonical message for the status.
func newAPIError(status int) *APIError {
	return &APIError{
		Status:     status,
		StatusText: http.StatusText(status),
		Message:    statusMessage(status),
	}
}

// statusMessage maps HTTP statuses to the fixed user-facing message table.
func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad request"
	case http.StatusUnauthorized:
		return "Unauthorized access"
	case http.StatusForbidden:
		return "Access forbidden"
	case http.StatusNotFound:
		return "Resource not found"
	case http.StatusInternalServerError:
		return "Internal server error"
	default:
		return "Unknown error occurred"
	}
}
