package matrix

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/wanmail/sauce-selenium/sauce"
	"github.com/wanmail/sauce-selenium/session"
)

const sample = `
url: https://www.saucedemo.com
title: Swag Labs
build: nightly
tags: [smoke, w3c]
maxDuration: 600
extendedDebugging: true
browsers:
  - browserName: chrome
    browserVersion: latest
    platformName: Windows 10
    args: [--window-size=1280,800]
    screenResolution: 1280x1024
    timeZone: Berlin
  - browserName: safari
    platformName: macOS 13
`

func TestParse(t *testing.T) {
	got, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("Parse(sample) returned error: %v", err)
	}
	want := &Matrix{
		URL:   "https://www.saucedemo.com",
		Title: "Swag Labs",
		Build: "nightly",
		Tags:  []string{"smoke", "w3c"},

		MaxDuration:       600,
		ExtendedDebugging: true,

		Browsers: []Entry{
			{
				BrowserName:      "chrome",
				BrowserVersion:   "latest",
				PlatformName:     "Windows 10",
				Args:             []string{"--window-size=1280,800"},
				ScreenResolution: "1280x1024",
				TimeZone:         "Berlin",
			},
			{BrowserName: "safari", PlatformName: "macOS 13"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse(sample) returned diff (-want/+got):\n%s", diff)
	}

	wantBrowser := session.Browser{
		Name:             "chrome",
		Version:          "latest",
		Platform:         "Windows 10",
		Args:             []string{"--window-size=1280,800"},
		ScreenResolution: "1280x1024",
		TimeZone:         "Berlin",
	}
	if diff := cmp.Diff(wantBrowser, got.Browsers[0].Browser()); diff != "" {
		t.Errorf("Browsers[0].Browser() returned diff (-want/+got):\n%s", diff)
	}

	wantOpts := sauce.Options{
		Build:             "nightly",
		Tags:              []string{"smoke", "w3c"},
		MaximumDuration:   600,
		ExtendedDebugging: true,
	}
	if diff := cmp.Diff(wantOpts, got.Options()); diff != "" {
		t.Errorf("Options() returned diff (-want/+got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	for _, tc := range []struct {
		desc, doc, wantErr string
	}{
		{"not yaml", "url: [", "parse YAML"},
		{"unknown key", "url: x\ntitle: y\nbrowser: chrome\n", "parse YAML"},
		{"no url", "title: y\nbrowsers: [{browserName: chrome}]\n", "url is required"},
		{"no title", "url: x\nbrowsers: [{browserName: chrome}]\n", "title is required"},
		{"no browsers", "url: x\ntitle: y\n", "at least one browser"},
		{"empty browser name", "url: x\ntitle: y\nbrowsers: [{platformName: Linux}]\n", "browsers[0]: browserName"},
		{"duration over limit", "url: x\ntitle: y\nmaxDuration: 20000\nbrowsers: [{browserName: chrome}]\n", "maxDuration"},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Parse(%q) returned error %v, want one containing %q", tc.doc, err, tc.wantErr)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "matrix.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatalf("os.WriteFile(%q) returned error: %v", path, err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load(%q) returned error: %v", path, err)
	}
	if len(m.Browsers) != 2 {
		t.Errorf("Load(%q) returned %d browsers, want 2", path, len(m.Browsers))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("Load() of a missing file returned nil error")
	}
}

func TestDefault(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() returned error: %v", err)
	}
}
