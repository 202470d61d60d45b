// Binary saucecheck opens one Sauce Labs session per browser of a matrix,
// checks the title of a page in each and reports every job as passed or
// failed.
//
// Credentials are read from SAUCE_USERNAME and SAUCE_ACCESS_KEY. The exit
// status is 1 if any check failed.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wanmail/sauce-selenium"
	"github.com/wanmail/sauce-selenium/internal/matrix"
	"github.com/wanmail/sauce-selenium/sauce"
	"github.com/wanmail/sauce-selenium/session"
)

var (
	matrixFile = flag.String("matrix", "", "YAML browser matrix; the built-in matrix is used if empty.")
	targetURL  = flag.String("url", "", "If set, overrides the page URL of the matrix.")
	title      = flag.String("title", "", "If set, overrides the expected title of the matrix.")
	endpoint   = flag.String("endpoint", "", "If set, overrides the WebDriver endpoint of SAUCE_REGION.")
	parallel   = flag.Int("parallel", 4, "Maximum number of concurrent sessions.")
	useREST    = flag.Bool("rest", false, "If true, report results through the REST API instead of the job-result script.")
	status     = flag.Bool("status", false, "If true, log the grid status from every session.")
	debug      = flag.Bool("debug", false, "If true, log every WebDriver request and reply.")
)

type config struct {
	matrix   *matrix.Matrix
	endpoint string
	parallel int
	rest     bool
	status   bool
}

type result struct {
	browser session.Browser
	jobID   string
	err     error
}

func main() {
	flag.Parse()
	defer glog.Flush()
	selenium.SetDebug(*debug)

	m := matrix.Default()
	if *matrixFile != "" {
		var err error
		if m, err = matrix.Load(*matrixFile); err != nil {
			glog.Exitf("Unable to load the browser matrix: %v", err)
		}
	}
	if *targetURL != "" {
		m.URL = *targetURL
	}
	if *title != "" {
		m.Title = *title
	}

	results, err := run(config{
		matrix:   m,
		endpoint: *endpoint,
		parallel: *parallel,
		rest:     *useREST,
		status:   *status,
	})
	if err != nil {
		glog.Exit(err.Error())
	}

	failed := 0
	for _, r := range results {
		verdict := sauce.Passed
		if r.err != nil {
			verdict = sauce.Failed
			failed++
		}
		fmt.Printf("%-6s %-40s %s\n", verdict, r.browser, r.jobID)
		if r.err != nil {
			fmt.Printf("       %v\n", r.err)
		}
	}
	if failed > 0 {
		glog.Flush()
		os.Exit(1)
	}
}

// run checks every browser of cfg.matrix. Per-browser failures are returned
// in the results; the error is set only if no check could be attempted.
func run(cfg config) ([]result, error) {
	n, err := session.NewNegotiatorFromEnv()
	if err != nil {
		return nil, err
	}
	if cfg.endpoint != "" {
		n.Endpoint = cfg.endpoint
	}
	// SAUCE_BUILD and SAUCE_TUNNEL_NAME take precedence over the matrix.
	opts := cfg.matrix.Options()
	if n.Options.Build != "" {
		opts.Build = n.Options.Build
	}
	if opts.Build == "" {
		opts.Build = "saucecheck-" + uuid.New().String()
	}
	opts.TunnelName = n.Options.TunnelName
	n.Options = opts

	creds, err := n.Credentials.Credentials()
	if err == nil {
		err = creds.Validate()
	}
	if err != nil {
		return nil, &session.ConfigurationError{Field: "credentials", Err: err}
	}
	if cfg.rest {
		n.Reporter = session.RESTReporter{Client: &sauce.JobsClient{Credentials: creds, Region: n.Region}}
	}
	glog.Infof("Checking %q on %d browsers, build %q", cfg.matrix.URL, len(cfg.matrix.Browsers), n.Options.Build)

	results := make([]result, len(cfg.matrix.Browsers))
	var wg errgroup.Group
	if cfg.parallel > 0 {
		wg.SetLimit(cfg.parallel)
	}
	for i, e := range cfg.matrix.Browsers {
		i, b := i, e.Browser()
		wg.Go(func() error {
			r := &results[i]
			r.browser = b
			r.err = session.Run(n, fmt.Sprintf("title of %s on %s", cfg.matrix.URL, b), b, func(s *session.Session) error {
				r.jobID = s.ID()
				if cfg.status {
					logStatus(s)
				}
				return s.AssertTitle(cfg.matrix.URL, cfg.matrix.Title)
			})
			if r.err != nil {
				glog.Errorf("%s: %v", b, r.err)
			}
			return nil
		})
	}
	return results, wg.Wait()
}

func logStatus(s *session.Session) {
	st, err := s.WebDriver().Status()
	if err != nil {
		glog.Warningf("Session %s: unable to read grid status: %v", s.ID(), err)
		return
	}
	glog.Infof("Session %s: grid ready=%t %q build %s", s.ID(), st.Ready, st.Message, st.Build.Version)
}
