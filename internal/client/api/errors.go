package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized reports a missing or rejected credential. Callers are
	// expected to clear the stored session and redirect to login.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound reports that the referenced analysis record is absent.
	ErrNotFound = errors.New("analysis not found")
)

// ValidationError is an input violation, detected either client-side before
// any network call or by the service (HTTP 422).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ServiceError is any other non-success response. Message carries the
// server-provided text when the body had one, else a generic fallback.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error (status %d): %s", e.StatusCode, e.Message)
}
