// Remote Selenium client implementation.
// See https://www.w3.org/TR/webdriver for the protocol.

package selenium

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	// JSONType is JSON content type.
	JSONType = "application/json"
	// MaxRedirects is the maximum number of redirects to follow.
	MaxRedirects = 10
)

// HTTPClient is the default client to use to communicate with the WebDriver
// server. It has no timeout of its own; the remote end's limits apply.
var HTTPClient = &http.Client{
	// http.Client doesn't copy request headers, and selenium requires that
	CheckRedirect: func(req *http.Request, via []*http.Request) error {
		if len(via) > MaxRedirects {
			return fmt.Errorf("too many redirects (%d)", len(via))
		}

		req.Header.Add("Accept", JSONType)
		return nil
	},
}

type remoteWD struct {
	id, urlPrefix string
	// capabilities are the ones requested, negotiated the ones returned by the
	// remote end.
	capabilities, negotiated Capabilities
}

func newRequest(method string, url string, data []byte) (*http.Request, error) {
	request, err := http.NewRequest(method, url, bytes.NewBuffer(data))
	if err != nil {
		return nil, err
	}
	request.Header.Add("Accept", JSONType)
	if data != nil {
		request.Header.Add("Content-Type", JSONType+"; charset=utf-8")
	}

	return request, nil
}

func (wd *remoteWD) requestURL(template string, args ...interface{}) string {
	return wd.urlPrefix + fmt.Sprintf(template, args...)
}

func (wd *remoteWD) execute(method, url string, data []byte) ([]byte, error) {
	return executeCommand(method, url, data)
}

func executeCommand(method, url string, data []byte) ([]byte, error) {
	debugLog("-> %s %s\n%s", method, url, redact(data))
	request, err := newRequest(method, url, data)
	if err != nil {
		return nil, err
	}

	response, err := HTTPClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	buf, err := io.ReadAll(response.Body)
	if debugFlag && err == nil {
		// Pretty print the JSON response
		var prettyBuf bytes.Buffer
		if err := json.Indent(&prettyBuf, buf, "", "    "); err == nil && prettyBuf.Len() > 0 {
			debugLog("<- %s [%s]\n%s", response.Status, response.Header.Get("Content-Type"), redact(prettyBuf.Bytes()))
		} else {
			debugLog("<- %s [%s]\n%s", response.Status, response.Header.Get("Content-Type"), redact(buf))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("reading reply to %s %s: %w", method, url, err)
	}

	if response.StatusCode < 400 {
		return buf, nil
	}

	reply := new(struct{ Value *Error })
	if err := json.Unmarshal(buf, reply); err != nil || reply.Value == nil || reply.Value.Err == "" {
		return nil, &Error{
			Err:      "unknown error",
			Message:  response.Status,
			HTTPCode: response.StatusCode,
		}
	}
	reply.Value.HTTPCode = response.StatusCode
	return nil, reply.Value
}

// NewRemote creates new remote client, this will also start a new session.
// capabilities provides the desired capabilities. urlPrefix is the URL to the
// Selenium server, must be prefixed with protocol (http, https, ...).
func NewRemote(capabilities Capabilities, urlPrefix string) (WebDriver, error) {
	u, err := url.Parse(urlPrefix)
	if err != nil {
		return nil, fmt.Errorf("invalid WebDriver URL %q: %w", urlPrefix, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid WebDriver URL %q: scheme must be http or https", urlPrefix)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid WebDriver URL %q: missing host", urlPrefix)
	}

	wd := &remoteWD{
		urlPrefix:    strings.TrimSuffix(urlPrefix, "/"),
		capabilities: capabilities,
	}
	if _, err := wd.NewSession(); err != nil {
		return nil, err
	}
	return wd, nil
}

func (wd *remoteWD) stringCommand(urlTemplate string) (string, error) {
	url := wd.requestURL(urlTemplate, wd.id)
	response, err := wd.execute("GET", url, nil)
	if err != nil {
		return "", err
	}

	reply := new(struct{ Value *string })
	if err := json.Unmarshal(response, reply); err != nil {
		return "", err
	}

	if reply.Value == nil {
		return "", fmt.Errorf("nil return value")
	}

	return *reply.Value, nil
}

func (wd *remoteWD) voidCommand(urlTemplate string, params interface{}) error {
	data, err := json.Marshal(params)
	if err != nil {
		return err
	}
	_, err = wd.execute("POST", wd.requestURL(urlTemplate, wd.id), data)
	return err
}

func (wd *remoteWD) Status() (*Status, error) {
	url := wd.requestURL("/status")
	reply, err := wd.execute("GET", url, nil)
	if err != nil {
		return nil, err
	}

	status := new(struct{ Value Status })
	if err := json.Unmarshal(reply, status); err != nil {
		return nil, err
	}

	return &status.Value, nil
}

func (wd *remoteWD) NewSession() (string, error) {
	data, err := json.Marshal(map[string]interface{}{
		"capabilities": map[string]interface{}{
			"alwaysMatch": wd.capabilities,
		},
	})
	if err != nil {
		return "", err
	}

	response, err := wd.execute("POST", wd.requestURL("/session"), data)
	if err != nil {
		return "", err
	}

	reply := new(struct {
		// Some intermediaries still answer with the session ID at the top
		// level, next to the value.
		SessionID string `json:"sessionId"`
		Value     struct {
			SessionID    string       `json:"sessionId"`
			Capabilities Capabilities `json:"capabilities"`
		}
	})
	if err := json.Unmarshal(response, reply); err != nil {
		return "", fmt.Errorf("decoding new session reply: %w", err)
	}

	id := reply.Value.SessionID
	if id == "" {
		id = reply.SessionID
	}
	if id == "" {
		return "", errors.New("new session reply carries no session ID")
	}

	wd.id = id
	wd.negotiated = reply.Value.Capabilities
	if wd.negotiated == nil {
		wd.negotiated = make(Capabilities)
	}
	return wd.id, nil
}

// SessionID returns the current session ID
func (wd *remoteWD) SessionID() string {
	return wd.id
}

func (wd *remoteWD) Capabilities() Capabilities {
	return wd.negotiated
}

func (wd *remoteWD) Quit() error {
	if wd.id == "" {
		return errors.New("no active session")
	}
	_, err := wd.execute("DELETE", wd.requestURL("/session/%s", wd.id), nil)
	if err == nil {
		wd.id = ""
	}
	return err
}

func (wd *remoteWD) CurrentURL() (string, error) {
	return wd.stringCommand("/session/%s/url")
}

func (wd *remoteWD) Get(url string) error {
	return wd.voidCommand("/session/%s/url", map[string]string{
		"url": url,
	})
}

func (wd *remoteWD) Title() (string, error) {
	return wd.stringCommand("/session/%s/title")
}

func (wd *remoteWD) ExecuteScriptRaw(script string, args []interface{}) ([]byte, error) {
	if args == nil {
		args = make([]interface{}, 0)
	}

	data, err := json.Marshal(map[string]interface{}{
		"script": script,
		"args":   args,
	})
	if err != nil {
		return nil, err
	}

	return wd.execute("POST", wd.requestURL("/session/%s/execute/sync", wd.id), data)
}

func (wd *remoteWD) ExecuteScript(script string, args []interface{}) (interface{}, error) {
	response, err := wd.ExecuteScriptRaw(script, args)
	if err != nil {
		return nil, err
	}

	reply := new(struct{ Value interface{} })
	if err = json.Unmarshal(response, reply); err != nil {
		return nil, err
	}

	return reply.Value, nil
}
