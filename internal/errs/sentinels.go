// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import (
	"errors"
	"strings"
)

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested entity does not exist or is not owned by the caller.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a unique constraint violation (e.g., email taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrUnauthorized indicates failed authentication (bad credentials).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken indicates a missing, malformed, unknown or revoked token.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired indicates a correctly signed access token past its validity window.
	ErrTokenExpired = errors.New("token expired")

	// ErrRateLimited indicates the caller exhausted its request window.
	ErrRateLimited = errors.New("rate limited")
)

// ValidationError reports malformed or out-of-range input with per-field messages.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(e.Details, "; ")
}

// Validation builds a ValidationError from the given messages.
func Validation(details ...string) *ValidationError {
	return &ValidationError{Details: details}
}

// AsValidation reports whether err is (or wraps) a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
