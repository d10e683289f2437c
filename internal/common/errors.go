// Package common defines shared constants, sentinel errors and small helpers
// used across client and server layers of Falimatik. Callers should use
// errors.Is to match the error values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
	ErrValidation = errors.New("validation error")

	// Signin errors. Unknown email and wrong password share one value.
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmailNotVerified   = errors.New("please verify your email before signing in")

	// Verification and session token errors.
	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrAlreadyVerified = errors.New("email already verified")

	// Request-time authentication failure.
	ErrUnauthenticated = errors.New("could not validate credentials")
)

// ValidationError describes a rejected input field. It matches ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
