package session

// Run opens a session named testID, hands it to body and then reports and
// closes it. The outcome is passed only if body returned nil and recorded no
// failure; an error, a panic or runtime.Goexit in body reports failed. Panics
// propagate after the session is closed.
//
// The returned error is the open error, else body's error, else a close
// error. Reporting failures are logged and not returned.
func Run(n *Negotiator, testID string, b Browser, body func(*Session) error) (err error) {
	s, err := n.Open(testID, b)
	if err != nil {
		return err
	}

	completed := false
	defer func() {
		_, closeErr := s.finish(completed && err == nil && !s.Failed())
		if err == nil && completed {
			err = closeErr
		}
	}()

	err = body(s)
	completed = true
	return err
}
