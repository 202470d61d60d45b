// Package safari provides Safari-specific types for WebDriver.
package safari

// CapabilitiesKey is the name of the Safari-specific key in the WebDriver
// capabilities object.
const CapabilitiesKey = "safari.options"

// Capabilities provides Safari-specific options to WebDriver.
type Capabilities struct {
	// Use W3C mode, if true.
	W3C bool `json:"w3c"`
	// TechnologyPreview selects Safari Technology Preview instead of the
	// release channel.
	TechnologyPreview bool `json:"technologyPreview,omitempty"`
}
