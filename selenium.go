package selenium

import (
	"github.com/wanmail/sauce-selenium/chrome"
	"github.com/wanmail/sauce-selenium/firefox"
	"github.com/wanmail/sauce-selenium/safari"
)

// Standard W3C capability names.
const (
	BrowserNameKey    = "browserName"
	BrowserVersionKey = "browserVersion"
	PlatformNameKey   = "platformName"
)

// Capabilities configures the remote end and the target browser, with
// standard and vendor-specific options.
type Capabilities map[string]interface{}

// AddChrome adds Chrome-specific capabilities.
func (c Capabilities) AddChrome(f chrome.Capabilities) {
	c[chrome.CapabilitiesKey] = f
}

// AddFirefox adds Firefox-specific capabilities.
func (c Capabilities) AddFirefox(f firefox.Capabilities) {
	c[firefox.CapabilitiesKey] = f
}

// AddSafari adds Safari-specific capabilities.
func (c Capabilities) AddSafari(f safari.Capabilities) {
	c[safari.CapabilitiesKey] = f
}

// SetBrowser sets the three standard keys that select the target
// environment. Empty values are left unset.
func (c Capabilities) SetBrowser(name, version, platform string) {
	for k, v := range map[string]string{
		BrowserNameKey:    name,
		BrowserVersionKey: version,
		PlatformNameKey:   platform,
	} {
		if v != "" {
			c[k] = v
		}
	}
}

// stringValue returns the named capability if it is a string.
func (c Capabilities) stringValue(key string) string {
	s, _ := c[key].(string)
	return s
}

// BrowserName returns the browserName capability, if set.
func (c Capabilities) BrowserName() string { return c.stringValue(BrowserNameKey) }

// BrowserVersion returns the browserVersion capability, if set.
func (c Capabilities) BrowserVersion() string { return c.stringValue(BrowserVersionKey) }

// PlatformName returns the platformName capability, if set.
func (c Capabilities) PlatformName() string { return c.stringValue(PlatformNameKey) }

// Status contains information returned by the Status method.
type Status struct {
	// The following fields are specified by the W3C WebDriver specification.
	Ready   bool
	Message string

	// Build is populated by Selenium based grids, including Sauce Labs.
	Build struct {
		Version, Revision, Time string
	}
}

// WebDriver defines the commands supported against a remote session.
type WebDriver interface {
	// Status returns various pieces of information about the server environment.
	Status() (*Status, error)

	// NewSession starts a new session and returns the session ID.
	NewSession() (string, error)

	// SessionID returns the current session ID.
	SessionID() string

	// Capabilities returns the capabilities the remote end negotiated for the
	// current session.
	Capabilities() Capabilities

	// Quit ends the current session. The browser instance will be closed.
	Quit() error

	// CurrentURL returns the browser's current URL.
	CurrentURL() (string, error)
	// Title returns the current page's title.
	Title() (string, error)

	// Get navigates the browser to the provided URL.
	Get(url string) error

	// ExecuteScript executes a script.
	ExecuteScript(script string, args []interface{}) (interface{}, error)
	// ExecuteScriptRaw executes a script but does not perform JSON decoding.
	ExecuteScriptRaw(script string, args []interface{}) ([]byte, error)
}
