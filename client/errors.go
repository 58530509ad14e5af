package client

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated matches any *AuthPreconditionError with errors.Is.
var ErrNotAuthenticated = errors.New("request requires auth but session token is missing")

// AuthPreconditionError is returned when an authenticated request is attempted before the
// suite has logged in. No request is made in that case.
type AuthPreconditionError struct {
	Method string
	Path   string
}

func (e *AuthPreconditionError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Method, e.Path, ErrNotAuthenticated)
}

func (e *AuthPreconditionError) Is(target error) bool {
	return target == ErrNotAuthenticated
}

// APIError is returned when the service responds with a non-2xx status.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s -> %d: %s", e.Method, e.Path, e.Status, e.Message)
}
