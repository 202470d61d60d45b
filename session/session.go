// Package session opens remote browser sessions on the Sauce Labs grid, runs
// a navigation and title check in them and reports the outcome back to the
// provider before releasing the session.
//
// A Session moves strictly forward through Unopened, Open, Reported and
// Closed. Every opened session is reported once and closed once; Run and
// sessiontest.Open guarantee this on every exit path of a test body.
package session

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/golang/glog"
	"github.com/wanmail/sauce-selenium"
	"github.com/wanmail/sauce-selenium/sauce"
)

// State is the lifecycle position of a Session.
type State int

const (
	Unopened State = iota
	Open
	Reported
	Closed
)

func (s State) String() string {
	switch s {
	case Unopened:
		return "unopened"
	case Open:
		return "open"
	case Reported:
		return "reported"
	case Closed:
		return "closed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

type outcome int

const (
	unset outcome = iota
	passed
	failed
)

// Negotiator opens sessions. The zero value reads credentials from the
// environment and targets the default region.
type Negotiator struct {
	// Credentials defaults to EnvCredentials.
	Credentials CredentialsProvider
	// Endpoint overrides the region endpoint.
	Endpoint string
	Region   sauce.Region
	// Options is the template for the sauce:options block of every session.
	// Name and credentials are filled in per session.
	Options sauce.Options
	// Reporter defaults to ScriptReporter.
	Reporter Reporter
}

func (n *Negotiator) endpoint() string {
	if n.Endpoint != "" {
		return n.Endpoint
	}
	return sauce.Endpoint(n.Region)
}

// Open negotiates a new remote session named testID. Configuration problems
// are reported as *ConfigurationError before any request is made; every
// failure to obtain the session is a *SessionCreationError.
func (n *Negotiator) Open(testID string, b Browser) (*Session, error) {
	provider := n.Credentials
	if provider == nil {
		provider = EnvCredentials{}
	}
	creds, err := provider.Credentials()
	if err != nil {
		return nil, &ConfigurationError{Field: "credentials", Err: err}
	}
	if err := creds.Validate(); err != nil {
		return nil, &ConfigurationError{Field: "credentials", Err: err}
	}
	caps, err := n.Capabilities(testID, b, creds)
	if err != nil {
		return nil, err
	}

	endpoint := n.endpoint()
	glog.V(1).Infof("opening %s session %q on %s", b, testID, endpoint)
	wd, err := selenium.NewRemote(caps, endpoint)
	if err != nil {
		return nil, &SessionCreationError{Endpoint: endpoint, Err: err}
	}

	reporter := n.Reporter
	if reporter == nil {
		reporter = ScriptReporter{}
	}
	s := &Session{
		wd:       wd,
		id:       wd.SessionID(),
		testID:   testID,
		caps:     caps,
		reporter: reporter,
		state:    Open,
	}
	glog.V(1).Infof("session %s opened for %q", s.id, testID)
	return s, nil
}

// Session is one remote browser session owned by a single test. It is not
// safe for concurrent use.
type Session struct {
	wd       selenium.WebDriver
	id       string
	testID   string
	caps     selenium.Capabilities
	reporter Reporter
	state    State
	outcome  outcome
}

// ID returns the remote session ID, which is also the Sauce Labs job ID.
func (s *Session) ID() string { return s.id }

// State returns the lifecycle state.
func (s *Session) State() State { return s.state }

// Capabilities returns the descriptor the session was requested with.
func (s *Session) Capabilities() selenium.Capabilities { return s.caps }

// WebDriver returns the underlying client.
func (s *Session) WebDriver() selenium.WebDriver { return s.wd }

// BrowserVersion parses the browser version negotiated by the grid.
func (s *Session) BrowserVersion() (semver.Version, error) {
	v := s.wd.Capabilities().BrowserVersion()
	if v == "" {
		return semver.Version{}, fmt.Errorf("session %s: no negotiated browser version", s.id)
	}
	return semver.ParseTolerant(v)
}

// RecordOutcome records a check result. A failure is never overwritten by a
// later success.
func (s *Session) RecordOutcome(ok bool) {
	switch {
	case !ok:
		s.outcome = failed
	case s.outcome == unset:
		s.outcome = passed
	}
}

// Failed reports whether a failure has been recorded.
func (s *Session) Failed() bool { return s.outcome == failed }

// RunAssertion navigates to targetURL and reports whether the document title
// equals expectedTitle exactly. Any error or mismatch records a failure.
func (s *Session) RunAssertion(targetURL, expectedTitle string) (bool, error) {
	_, ok, err := s.checkTitle(targetURL, expectedTitle)
	return ok, err
}

// AssertTitle is RunAssertion returning *AssertionFailure on mismatch.
func (s *Session) AssertTitle(targetURL, expectedTitle string) error {
	got, ok, err := s.checkTitle(targetURL, expectedTitle)
	if err != nil {
		return err
	}
	if !ok {
		return &AssertionFailure{URL: targetURL, Want: expectedTitle, Got: got}
	}
	return nil
}

func (s *Session) checkTitle(targetURL, want string) (string, bool, error) {
	if s.state != Open {
		return "", false, fmt.Errorf("%w: assertion in %s session", ErrSessionState, s.state)
	}
	if err := s.wd.Get(targetURL); err != nil {
		s.RecordOutcome(false)
		return "", false, fmt.Errorf("session %s: navigating to %q: %w", s.id, targetURL, err)
	}
	got, err := s.wd.Title()
	if err != nil {
		s.RecordOutcome(false)
		return "", false, fmt.Errorf("session %s: reading title of %q: %w", s.id, targetURL, err)
	}
	ok := got == want
	s.RecordOutcome(ok)
	glog.V(1).Infof("session %s: title of %s = %q, want %q", s.id, targetURL, got, want)
	return got, ok, nil
}

// ReportOutcome sends the outcome over the provider side channel and closes
// the session. The session is closed even when reporting fails, in which
// case a *ReportingError is returned.
func (s *Session) ReportOutcome(passed bool) error {
	if s.state != Open {
		return fmt.Errorf("%w: report in %s session", ErrSessionState, s.state)
	}
	reportErr, closeErr := s.finish(passed)
	if reportErr != nil {
		return reportErr
	}
	return closeErr
}

func (s *Session) finish(passed bool) (reportErr, closeErr error) {
	result := sauce.ResultFor(passed)
	if err := s.reporter.Report(s.wd, passed); err != nil {
		reportErr = &ReportingError{SessionID: s.id, Result: result, Err: err}
		glog.Warningf("%v", reportErr)
	}
	s.state = Reported

	if err := s.wd.Quit(); err != nil {
		closeErr = fmt.Errorf("session %s: closing: %w", s.id, err)
		glog.Errorf("%v", closeErr)
	}
	s.state = Closed
	glog.V(1).Infof("session %s: reported %s and closed", s.id, result)
	return reportErr, closeErr
}
