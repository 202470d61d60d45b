// Package seleniumtest provides an in-process W3C WebDriver remote end that
// behaves enough like the Sauce Labs grid to exercise the client and the
// session layer without a network.
package seleniumtest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// HubPath is the path prefix under which the grid serves WebDriver commands.
const HubPath = "/wd/hub"

// Grid is a fake remote end. Configure its exported fields before the first
// request; read its recordings through the accessor methods.
type Grid struct {
	// URL is the WebDriver endpoint, including HubPath.
	URL string

	// Titles maps a navigated URL to the document title served for it.
	Titles map[string]string
	// Accounts, if non-nil, maps usernames to access keys. Sessions whose
	// sauce:options credentials do not match are rejected with HTTP 401.
	Accounts map[string]string
	// Unsupported lists browser names rejected at session creation.
	Unsupported []string

	// Failure injection: when non-empty the matching command answers with
	// this W3C error string.
	NavigateError, TitleError, ScriptError, QuitError string

	server *httptest.Server

	mu       sync.Mutex
	nextID   int
	sessions map[string]*session
	created  []map[string]interface{}
	scripts  map[string][]string
	deleted  []string
	requests int
}

type session struct {
	url string
}

// NewGrid starts a fake grid. Call Close when done.
func NewGrid() *Grid {
	g := &Grid{
		Titles:   make(map[string]string),
		sessions: make(map[string]*session),
		scripts:  make(map[string][]string),
	}
	g.server = httptest.NewServer(http.HandlerFunc(g.handle))
	g.URL = g.server.URL + HubPath
	return g
}

// Close shuts the grid down.
func (g *Grid) Close() {
	g.server.Close()
}

// Requests returns the number of HTTP requests served so far.
func (g *Grid) Requests() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.requests
}

// Created returns the alwaysMatch capabilities of every new session request
// that was accepted, in order.
func (g *Grid) Created() []map[string]interface{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]map[string]interface{}(nil), g.created...)
}

// Scripts returns the scripts executed in the given session.
func (g *Grid) Scripts(sessionID string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.scripts[sessionID]...)
}

// Deleted returns the IDs of the sessions that were deleted, in order.
func (g *Grid) Deleted() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.deleted...)
}

// Live returns the number of sessions that were created and not deleted.
func (g *Grid) Live() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sessions)
}

func writeValue(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]interface{}{"value": v})
}

func writeError(w http.ResponseWriter, code int, errString, message string) {
	writeValue(w, code, map[string]string{
		"error":      errString,
		"message":    message,
		"stacktrace": "",
	})
}

func (g *Grid) handle(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.requests++

	if !strings.HasPrefix(r.URL.Path, HubPath) {
		http.NotFound(w, r)
		return
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, HubPath), "/"), "/")

	switch {
	case len(parts) == 1 && parts[0] == "status" && r.Method == http.MethodGet:
		writeValue(w, http.StatusOK, map[string]interface{}{
			"ready":   true,
			"message": "fake grid ready",
			"build":   map[string]string{"version": "Sauce Labs"},
		})
	case len(parts) == 1 && parts[0] == "session" && r.Method == http.MethodPost:
		g.newSession(w, r)
	case len(parts) >= 2 && parts[0] == "session":
		s, ok := g.sessions[parts[1]]
		if !ok {
			writeError(w, http.StatusNotFound, "invalid session id", fmt.Sprintf("no session %q", parts[1]))
			return
		}
		g.command(w, r, parts[1], s, strings.Join(parts[2:], "/"))
	default:
		writeError(w, http.StatusNotFound, "unknown command", r.Method+" "+r.URL.Path)
	}
}

func (g *Grid) newSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Capabilities *struct {
			AlwaysMatch map[string]interface{} `json:"alwaysMatch"`
		} `json:"capabilities"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Capabilities == nil {
		writeError(w, http.StatusBadRequest, "invalid argument", "missing W3C capabilities")
		return
	}
	caps := req.Capabilities.AlwaysMatch
	if caps == nil {
		caps = make(map[string]interface{})
	}

	if g.Accounts != nil {
		opts, _ := caps["sauce:options"].(map[string]interface{})
		user, _ := opts["username"].(string)
		key, _ := opts["accessKey"].(string)
		if want, ok := g.Accounts[user]; !ok || want != key {
			writeError(w, http.StatusUnauthorized, "session not created", "Misconfigured -- Unauthorized")
			return
		}
	}
	browser, _ := caps["browserName"].(string)
	for _, b := range g.Unsupported {
		if strings.EqualFold(b, browser) {
			writeError(w, http.StatusBadRequest, "session not created",
				fmt.Sprintf("unsupported OS/browser/version/device combo: %v", browser))
			return
		}
	}

	g.nextID++
	id := fmt.Sprintf("session-%d", g.nextID)
	g.sessions[id] = &session{}
	g.created = append(g.created, caps)

	negotiated := make(map[string]interface{}, len(caps))
	for k, v := range caps {
		negotiated[k] = v
	}
	if v, _ := negotiated["browserVersion"].(string); v == "" || v == "latest" {
		negotiated["browserVersion"] = "120.0.1"
	}
	writeValue(w, http.StatusOK, map[string]interface{}{
		"sessionId":    id,
		"capabilities": negotiated,
	})
}

func (g *Grid) command(w http.ResponseWriter, r *http.Request, id string, s *session, cmd string) {
	switch {
	case cmd == "" && r.Method == http.MethodDelete:
		if g.QuitError != "" {
			writeError(w, http.StatusInternalServerError, g.QuitError, "injected quit failure")
			return
		}
		delete(g.sessions, id)
		g.deleted = append(g.deleted, id)
		writeValue(w, http.StatusOK, nil)

	case cmd == "url" && r.Method == http.MethodPost:
		if g.NavigateError != "" {
			writeError(w, http.StatusInternalServerError, g.NavigateError, "injected navigation failure")
			return
		}
		var req struct{ URL string }
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
			writeError(w, http.StatusBadRequest, "invalid argument", "missing url")
			return
		}
		s.url = req.URL
		writeValue(w, http.StatusOK, nil)

	case cmd == "url" && r.Method == http.MethodGet:
		writeValue(w, http.StatusOK, s.url)

	case cmd == "title" && r.Method == http.MethodGet:
		if g.TitleError != "" {
			writeError(w, http.StatusInternalServerError, g.TitleError, "injected title failure")
			return
		}
		writeValue(w, http.StatusOK, g.Titles[s.url])

	case cmd == "execute/sync" && r.Method == http.MethodPost:
		var req struct {
			Script string        `json:"script"`
			Args   []interface{} `json:"args"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Args == nil {
			writeError(w, http.StatusBadRequest, "invalid argument", "script and args are required")
			return
		}
		g.scripts[id] = append(g.scripts[id], req.Script)
		if g.ScriptError != "" {
			writeError(w, http.StatusInternalServerError, g.ScriptError, "injected script failure")
			return
		}
		writeValue(w, http.StatusOK, nil)

	default:
		writeError(w, http.StatusNotFound, "unknown command", r.Method+" "+cmd)
	}
}
