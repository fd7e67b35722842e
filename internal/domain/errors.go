package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrRequestFailed upstream call failed after all attempts.
	ErrRequestFailed = errors.New("request failed")
	// ErrAuthenticationFailed upstream rejected the login credentials.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrUnexpectedPayload response received but could not be normalized.
	ErrUnexpectedPayload = errors.New("unexpected payload")
)

// RequestError final failure of an upstream call. It matches ErrRequestFailed
// and unwraps to the cause of the last attempt.
type RequestError struct {
	Method   string
	Path     string
	Attempts int
	Err      error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %s %s after %d attempt(s): %v", e.Method, e.Path, e.Attempts, e.Err)
}

// Is reports whether target is ErrRequestFailed.
func (e *RequestError) Is(target error) bool {
	return target == ErrRequestFailed
}

// Unwrap returns the cause of the last attempt.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// AuthenticationError login failure the upstream attributed to credentials.
// It matches ErrAuthenticationFailed and, through the wrapped request error,
// ErrRequestFailed as well.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

// Is reports whether target is ErrAuthenticationFailed.
func (e *AuthenticationError) Is(target error) bool {
	return target == ErrAuthenticationFailed
}

// Unwrap returns the underlying request error.
func (e *AuthenticationError) Unwrap() error {
	return e.Err
}
