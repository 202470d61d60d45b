package session

import (
	"context"

	"github.com/wanmail/sauce-selenium"
	"github.com/wanmail/sauce-selenium/sauce"
)

// Reporter sends a job outcome to the grid provider.
type Reporter interface {
	Report(wd selenium.WebDriver, passed bool) error
}

// ScriptReporter annotates the job through the execute-script endpoint with
// "sauce:job-result=passed" or "sauce:job-result=failed".
type ScriptReporter struct{}

// Report implements Reporter.
func (ScriptReporter) Report(wd selenium.WebDriver, passed bool) error {
	_, err := wd.ExecuteScript(sauce.ResultFor(passed).Script(), nil)
	return err
}

// RESTReporter sets the job status through the Sauce Labs REST API. The job
// ID is the WebDriver session ID.
type RESTReporter struct {
	Client *sauce.JobsClient
}

// Report implements Reporter.
func (r RESTReporter) Report(wd selenium.WebDriver, passed bool) error {
	return r.Client.SetPassed(context.Background(), wd.SessionID(), passed)
}
