package sauce

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// APIError is returned when the REST API answers with a non-2xx status.
type APIError struct {
	Method, URL string
	StatusCode  int
	Body        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("sauce: %s %s: HTTP %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// JobsClient updates job metadata through the Sauce Labs REST API. It is an
// alternative to the execute-script side channel that works after the
// WebDriver session is gone.
type JobsClient struct {
	Credentials Credentials
	// Region selects the API host. BaseURL, if set, takes precedence.
	Region  Region
	BaseURL string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

func (c *JobsClient) jobURL(jobID string) string {
	base := c.BaseURL
	if base == "" {
		base = APIBase(c.Region)
	}
	return fmt.Sprintf("%s/rest/v1/%s/jobs/%s",
		strings.TrimSuffix(base, "/"), url.PathEscape(c.Credentials.Username), url.PathEscape(jobID))
}

// SetPassed marks the job as passed or failed.
func (c *JobsClient) SetPassed(ctx context.Context, jobID string, passed bool) error {
	if err := c.Credentials.Validate(); err != nil {
		return err
	}
	if jobID == "" {
		return fmt.Errorf("sauce: empty job ID")
	}
	body, err := json.Marshal(map[string]bool{"passed": passed})
	if err != nil {
		return err
	}

	u := c.jobURL(jobID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.Credentials.Username, c.Credentials.AccessKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		buf, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			Method:     http.MethodPut,
			URL:        u,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(buf)),
		}
	}
	io.Copy(io.Discard, resp.Body) // ignore error; drains for connection reuse.
	return nil
}
