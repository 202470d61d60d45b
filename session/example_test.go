package session_test

import (
	"github.com/golang/glog"
	"github.com/wanmail/sauce-selenium/session"
)

// This example checks the demo storefront title on Chrome. The job is marked
// passed or failed on Sauce Labs and the session is closed even if the check
// panics.
func ExampleRun() {
	n, err := session.NewNegotiatorFromEnv()
	if err != nil {
		glog.Exitf("Unable to configure Sauce Labs: %v", err)
	}
	browser := session.Browser{Name: "chrome", Version: "latest", Platform: "Windows 10"}

	err = session.Run(n, "storefront title", browser, func(s *session.Session) error {
		return s.AssertTitle("https://www.saucedemo.com", "Swag Labs")
	})
	if err != nil {
		glog.Errorf("Title check failed: %v", err)
	}
}
