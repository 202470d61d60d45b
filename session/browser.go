package session

import (
	"fmt"
	"strings"

	"github.com/wanmail/sauce-selenium"
	"github.com/wanmail/sauce-selenium/chrome"
	"github.com/wanmail/sauce-selenium/firefox"
	"github.com/wanmail/sauce-selenium/safari"
	"github.com/wanmail/sauce-selenium/sauce"
)

// Browser selects the target environment of a session.
type Browser struct {
	Name     string
	Version  string
	Platform string

	// Args are extra command-line arguments for Chrome or Firefox.
	Args []string
	// ScreenResolution and TimeZone configure the grid VM, e.g. "1920x1080"
	// and "Berlin". Empty values keep the Negotiator's options.
	ScreenResolution string
	TimeZone         string
}

func (b Browser) String() string {
	s := b.Name
	if b.Version != "" {
		s += " " + b.Version
	}
	if b.Platform != "" {
		s += " on " + b.Platform
	}
	return s
}

// Capabilities builds the descriptor sent when opening a session named testID
// on b. The browser name, version and platform are copied verbatim.
func (n *Negotiator) Capabilities(testID string, b Browser, creds sauce.Credentials) (selenium.Capabilities, error) {
	if b.Name == "" {
		return nil, &ConfigurationError{Field: selenium.BrowserNameKey, Err: fmt.Errorf("empty browser name")}
	}

	opts := n.Options
	opts.Tags = append([]string(nil), n.Options.Tags...)
	if testID != "" {
		opts.TestName = testID
	}
	if b.ScreenResolution != "" {
		opts.ScreenResolution = b.ScreenResolution
	}
	if b.TimeZone != "" {
		opts.TimeZone = b.TimeZone
	}
	if opts.SeleniumVersion == "" {
		opts.SeleniumVersion = sauce.DefaultSeleniumVersion
	}
	opts.SetCredentials(creds)
	if err := opts.Validate(); err != nil {
		return nil, &ConfigurationError{Field: sauce.CapabilitiesKey, Err: err}
	}

	caps := selenium.Capabilities{}
	caps.SetBrowser(b.Name, b.Version, b.Platform)
	switch strings.ToLower(b.Name) {
	case "chrome", "googlechrome":
		caps.AddChrome(chrome.Capabilities{Args: b.Args, W3C: true})
	case "safari":
		caps.AddSafari(safari.Capabilities{W3C: true})
	case "firefox":
		caps.AddFirefox(firefox.Capabilities{Args: b.Args})
	}
	caps[sauce.CapabilitiesKey] = opts
	return caps, nil
}
