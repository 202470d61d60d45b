// Package sessiontest binds session lifecycles to Go tests.
package sessiontest

import (
	"errors"
	"testing"

	"github.com/wanmail/sauce-selenium/session"
)

// Open opens a session named after the running test and registers a cleanup
// that reports whether the test passed and closes the session. A test that
// fails, calls FailNow or panics is reported as failed, as is one that
// recorded a failed assertion on the session. A skipped test did not finish
// its checks and is reported as failed too.
//
// Open fails the test immediately if no session can be obtained.
func Open(t testing.TB, n *session.Negotiator, b session.Browser) *session.Session {
	t.Helper()
	s, err := n.Open(t.Name(), b)
	if err != nil {
		t.Fatalf("opening %s session: %v", b, err)
		return nil
	}
	t.Cleanup(func() {
		if s.State() != session.Open {
			return
		}
		err := s.ReportOutcome(!t.Failed() && !t.Skipped() && !s.Failed())
		var reportErr *session.ReportingError
		switch {
		case errors.As(err, &reportErr):
			t.Logf("%v", err)
		case err != nil:
			t.Errorf("%v", err)
		}
	})
	return s
}
