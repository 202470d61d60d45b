// Package chrome provides the Chrome options block of a WebDriver session.
package chrome

// CapabilitiesKey is the capability under which ChromeDriver reads its
// options.
const CapabilitiesKey = "goog:chromeOptions"

// Capabilities is the goog:chromeOptions block. See
// https://chromedriver.chromium.org/capabilities
type Capabilities struct {
	// Args are extra command-line switches for the browser, e.g.
	// "--window-size=1280,800".
	Args []string `json:"args,omitempty"`
	// W3C selects the W3C dialect. ChromeDriver 75 and later default to it;
	// older drivers on the grid need it set explicitly.
	W3C bool `json:"w3c"`
}
