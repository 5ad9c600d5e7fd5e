package api

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable marks transport-level failures: no response, a broken
	// connection, or a payload that could not be decoded. Safe to retry.
	ErrUnavailable = errors.New("server unavailable")

	// ErrNoActiveSession marks a profile operation attempted without a
	// credential. A sequencing error in the caller, not a network condition.
	ErrNoActiveSession = errors.New("no active session")
)

// ServerError is a well-formed rejection from the backend. Code is the
// server's short error code, e.g. "error_user_already_exists". Callers match
// it with errors.As and map known codes to user-facing messages.
type ServerError struct {
	Code string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server rejected request: %s", e.Code)
}
