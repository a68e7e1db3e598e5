package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthExpired means the server rejected the session (HTTP 401).
	// Callers must drop the cached session and send the user back to the
	// login surface rather than just printing a message.
	ErrAuthExpired = errors.New("authentication expired")

	// ErrUnavailable means the server could not be reached at all.
	ErrUnavailable = errors.New("server unavailable")
)

// TransportError carries a failed exchange: the HTTP status and whatever
// structured body the server returned.
type TransportError struct {
	StatusCode int
	Body       []byte
	Message    string
}

// Status returns the HTTP status, defaulting a missing or unknown one to
// 500: an undiagnosable failure is treated as a server error.
func (e *TransportError) Status() int {
	if e.StatusCode < 100 {
		return http.StatusInternalServerError
	}
	return e.StatusCode
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error (%d): %s", e.Status(), e.Message)
	}
	return fmt.Sprintf("server error (%d)", e.Status())
}
