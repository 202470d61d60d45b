/*
Package selenium provides a W3C WebDriver client for remote grids such as
Sauce Labs.

Only the W3C dialect is spoken: new sessions are requested with an
alwaysMatch capabilities object and every reply is expected in the
{"value": ...} envelope.

Example usage:

	caps := selenium.Capabilities{}
	caps.SetBrowser("chrome", "latest", "Windows 10")
	caps.AddChrome(chrome.Capabilities{W3C: true})

	opts := sauce.Options{TestName: "smoke"}
	opts.SetCredentials(sauce.Credentials{Username: user, AccessKey: key})
	caps[sauce.CapabilitiesKey] = opts

	wd, err := selenium.NewRemote(caps, sauce.Endpoint(sauce.DefaultRegion))
	if err != nil {
		return err
	}
	defer wd.Quit()

	if err := wd.Get("https://www.saucedemo.com"); err != nil {
		return err
	}
	title, err := wd.Title()

Most callers should use package session instead, which closes the session
and reports the job result on every path.
*/
package selenium
