// Package firefox provides the Firefox options block of a WebDriver session.
//
// Geckodriver only implements the W3C protocol, so unlike Chrome and Safari
// there is no flag to opt into it.
package firefox

// CapabilitiesKey is the capability under which geckodriver reads its
// options.
const CapabilitiesKey = "moz:firefoxOptions"

// Capabilities is the moz:firefoxOptions block.
type Capabilities struct {
	// Args are extra command-line arguments for the browser, including the
	// leading dashes, e.g. "-headless".
	Args []string `json:"args,omitempty"`
}
