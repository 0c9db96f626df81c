package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a non-2xx response from the backend. The backend does not
// distinguish validation, not-found and server failures in any way a4s relies
// on, so neither does Error.
type Error struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	msg := e.Body
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	if e.Op == "" {
		return msg
	}
	return e.Op + ": " + msg
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// StatusCode returns the HTTP status of err, or 0 when err is not a
// backend response error.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}
