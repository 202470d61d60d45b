// Package matrix loads the browser matrix run by saucecheck.
//
// A matrix file is YAML:
//
//	url: https://www.saucedemo.com
//	title: Swag Labs
//	build: nightly
//	tags: [smoke]
//	maxDuration: 600
//	extendedDebugging: true
//	browsers:
//	  - browserName: chrome
//	    browserVersion: latest
//	    platformName: Windows 10
//	    args: [--window-size=1280,800]
//	    screenResolution: 1280x1024
//	  - browserName: safari
//	    browserVersion: latest
//	    platformName: macOS 13
package matrix

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/wanmail/sauce-selenium/sauce"
	"github.com/wanmail/sauce-selenium/session"
	"gopkg.in/yaml.v3"
)

// Entry is one target environment.
type Entry struct {
	BrowserName    string `yaml:"browserName"`
	BrowserVersion string `yaml:"browserVersion"`
	PlatformName   string `yaml:"platformName"`

	Args             []string `yaml:"args"`
	ScreenResolution string   `yaml:"screenResolution"`
	TimeZone         string   `yaml:"timeZone"`
}

// Browser converts the entry for session.Negotiator.
func (e Entry) Browser() session.Browser {
	return session.Browser{
		Name:             e.BrowserName,
		Version:          e.BrowserVersion,
		Platform:         e.PlatformName,
		Args:             e.Args,
		ScreenResolution: e.ScreenResolution,
		TimeZone:         e.TimeZone,
	}
}

// Matrix is a title check to run on every browser in Browsers.
type Matrix struct {
	URL   string   `yaml:"url"`
	Title string   `yaml:"title"`
	Build string   `yaml:"build"`
	Tags  []string `yaml:"tags"`

	// Job limits in seconds, see sauce.Options.
	MaxDuration       int  `yaml:"maxDuration"`
	CommandTimeout    int  `yaml:"commandTimeout"`
	IdleTimeout       int  `yaml:"idleTimeout"`
	ExtendedDebugging bool `yaml:"extendedDebugging"`

	Browsers []Entry `yaml:"browsers"`
}

// Options returns the sauce:options shared by every job of the matrix.
func (m *Matrix) Options() sauce.Options {
	return sauce.Options{
		Build:             m.Build,
		Tags:              m.Tags,
		MaximumDuration:   m.MaxDuration,
		CommandTimeout:    m.CommandTimeout,
		IdleTimeout:       m.IdleTimeout,
		ExtendedDebugging: m.ExtendedDebugging,
	}
}

// Default is the matrix used when no file is given: the Sauce Labs demo
// storefront on the three W3C browsers.
func Default() *Matrix {
	return &Matrix{
		URL:   "https://www.saucedemo.com",
		Title: "Swag Labs",
		Browsers: []Entry{
			{BrowserName: "chrome", BrowserVersion: "latest", PlatformName: "Windows 10"},
			{BrowserName: "firefox", BrowserVersion: "latest", PlatformName: "Windows 10"},
			{BrowserName: "safari", BrowserVersion: "latest", PlatformName: "macOS 13"},
		},
	}
}

// Load reads and validates a matrix file.
func Load(path string) (*Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read matrix file: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Parse decodes and validates a YAML matrix. Unknown keys are rejected.
func Parse(data []byte) (*Matrix, error) {
	var m Matrix
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that the matrix names a page, a title and at least one
// browser.
func (m *Matrix) Validate() error {
	switch {
	case m.URL == "":
		return errors.New("matrix: url is required")
	case m.Title == "":
		return errors.New("matrix: title is required")
	case len(m.Browsers) == 0:
		return errors.New("matrix: at least one browser is required")
	}
	for i, e := range m.Browsers {
		if e.BrowserName == "" {
			return fmt.Errorf("matrix: browsers[%d]: browserName is required", i)
		}
	}
	opts := m.Options()
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("matrix: %w", err)
	}
	return nil
}
