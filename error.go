package selenium

import "fmt"

// Error contains information about a failure of a command. See the table of
// errors in the W3C WebDriver specification:
// https://www.w3.org/TR/webdriver/#handling-errors
type Error struct {
	// Err contains a general error string provided by the server, e.g.
	// "session not created" or "invalid argument".
	Err string `json:"error"`
	// Message is a detailed, human-readable message specific to the failure.
	Message string `json:"message"`
	// Stacktrace may contain the server-side stacktrace where the error occurred.
	Stacktrace string `json:"stacktrace"`
	// HTTPCode is the HTTP status code returned by the server.
	HTTPCode int `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return e.Err
	}
	return fmt.Sprintf("%s: %s", e.Err, e.Message)
}
