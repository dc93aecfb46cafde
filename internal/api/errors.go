package api

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	// ErrInvalidCredentials is returned when the backend rejects a login.
	// The server's own detail is never echoed to the user.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrSessionExpired is returned when the single refresh-and-retry has
	// failed and the session has been force-ended.
	ErrSessionExpired = errors.New("session expired, please log in again")
)

// APIError is any other non-2xx response from the backend. It is
// propagated to the caller unmodified; retry decisions belong to the user.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("server returned HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned HTTP %d: %s", e.StatusCode, e.Detail)
}
