package session

import (
	"errors"
	"fmt"

	"github.com/wanmail/sauce-selenium/sauce"
)

// ErrSessionState is returned when an operation is attempted in a state that
// does not allow it. Sessions never move backwards.
var ErrSessionState = errors.New("session: operation not allowed in current state")

// ConfigurationError reports missing or invalid configuration. It is always
// returned before any request reaches the grid.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("session: configuration %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// SessionCreationError reports a failed negotiation: a malformed endpoint,
// a network failure or a capability rejection by the grid.
type SessionCreationError struct {
	Endpoint string
	Err      error
}

func (e *SessionCreationError) Error() string {
	return fmt.Sprintf("session: creating session on %s: %v", e.Endpoint, e.Err)
}

func (e *SessionCreationError) Unwrap() error { return e.Err }

// AssertionFailure reports a page whose title differs from the expected one.
type AssertionFailure struct {
	URL, Want, Got string
}

func (e *AssertionFailure) Error() string {
	return fmt.Sprintf("session: title of %s = %q, want %q", e.URL, e.Got, e.Want)
}

// ReportingError reports a failed side-channel command. It is never fatal:
// the session is closed regardless.
type ReportingError struct {
	SessionID string
	Result    sauce.JobResult
	Err       error
}

func (e *ReportingError) Error() string {
	return fmt.Sprintf("session %s: reporting %q: %v", e.SessionID, e.Result, e.Err)
}

func (e *ReportingError) Unwrap() error { return e.Err }
