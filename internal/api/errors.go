package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnauthorized is returned when a request fails with 401 even after a
// token refresh attempt.
var ErrUnauthorized = errors.New("unauthorized")

// Error is a failed API request. Status 0 means the request never
// completed (connectivity, timeout); any other value is the HTTP status
// the server answered with.
type Error struct {
	Status int
	Method string
	Path   string
	Detail string // server-provided message, if any
	Err    error  // underlying transport error, if any
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.Path, e.Err)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNetworkFailure reports whether err is a request that never completed.
func IsNetworkFailure(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == 0
}

// IsStatus reports whether err is an API error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// IsNotFound reports whether err is a 404 response.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsRejected reports whether the server refused the request because of
// current resource state (400 or 409). Lifecycle transition endpoints
// answer this way when the invoice status disallows the command.
func IsRejected(err error) bool {
	return IsStatus(err, http.StatusBadRequest) || IsStatus(err, http.StatusConflict)
}
