// Package sauce interacts with the Sauce Labs hosted browser testing environment.
package sauce

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/blang/semver"
)

// CapabilitiesKey is the vendor-prefixed key under which Options are stored
// in the W3C capabilities object.
const CapabilitiesKey = "sauce:options"

// DefaultSeleniumVersion is the client library version tag sent when none is
// configured.
const DefaultSeleniumVersion = "3.141.59"

// Limits documented by Sauce Labs, in seconds.
const (
	MaxDurationLimit    = 10800
	CommandTimeoutLimit = 600
	IdleTimeoutLimit    = 1000
)

// Credentials identify a Sauce Labs account.
type Credentials struct {
	Username  string
	AccessKey string
}

// Validate returns an error naming the first missing field.
func (c Credentials) Validate() error {
	switch {
	case c.Username == "":
		return errors.New("sauce: username is empty")
	case c.AccessKey == "":
		return errors.New("sauce: access key is empty")
	}
	return nil
}

// Options is the "sauce:options" capability: job metadata, credentials and
// VM settings. See https://docs.saucelabs.com/dev/test-configuration-options/
type Options struct {
	// TestName is the job name shown in the dashboard.
	TestName string `json:"name,omitempty"`
	// Build groups jobs of one CI run.
	Build string   `json:"build,omitempty"`
	Tags  []string `json:"tags,omitempty"`

	// Account credentials. They travel with the capabilities rather than in
	// the endpoint URL.
	Username  string `json:"username,omitempty"`
	AccessKey string `json:"accessKey,omitempty"`

	// SeleniumVersion is the client library version tag, a semantic version.
	SeleniumVersion string `json:"seleniumVersion,omitempty"`

	// Limits in seconds, capped at MaxDurationLimit, CommandTimeoutLimit and
	// IdleTimeoutLimit. Zero leaves the grid default.
	MaximumDuration int `json:"maxDuration,omitempty"`
	CommandTimeout  int `json:"commandTimeout,omitempty"`
	IdleTimeout     int `json:"idleTimeout,omitempty"`

	// VM settings, e.g. "1920x1080" and "Berlin".
	ScreenResolution string `json:"screenResolution,omitempty"`
	TimeZone         string `json:"timeZone,omitempty"`
	// TunnelName routes the browser through a running Sauce Connect tunnel.
	TunnelName string `json:"tunnelName,omitempty"`
	// ExtendedDebugging records network and console logs.
	ExtendedDebugging bool `json:"extendedDebugging,omitempty"`
}

// SetCredentials copies c into the options.
func (o *Options) SetCredentials(c Credentials) {
	o.Username = c.Username
	o.AccessKey = c.AccessKey
}

// Validate checks the version tag and the documented timeout limits.
func (o *Options) Validate() error {
	if o.SeleniumVersion != "" {
		if _, err := semver.ParseTolerant(o.SeleniumVersion); err != nil {
			return fmt.Errorf("sauce: seleniumVersion %q: %w", o.SeleniumVersion, err)
		}
	}
	for _, l := range []struct {
		name       string
		val, limit int
	}{
		{"maxDuration", o.MaximumDuration, MaxDurationLimit},
		{"commandTimeout", o.CommandTimeout, CommandTimeoutLimit},
		{"idleTimeout", o.IdleTimeout, IdleTimeoutLimit},
	} {
		if l.val < 0 || l.val > l.limit {
			return fmt.Errorf("sauce: %s = %d, must be within [0, %d]", l.name, l.val, l.limit)
		}
	}
	return nil
}

// ToMap returns the options in a key/value structure.
func (o *Options) ToMap() (map[string]interface{}, error) {
	buf, err := json.Marshal(o)
	if err != nil {
		return nil, err
	}
	m := make(map[string]interface{})
	if err := json.Unmarshal(buf, &m); err != nil {
		return nil, err
	}
	return m, nil
}
