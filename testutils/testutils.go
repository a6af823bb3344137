// Package testutils provides common utilities for testing across the todoist project
package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

// RecordedRequest is a request received by FakeTodoist
type RecordedRequest struct {
	Method  string
	Path    string
	RawPath string
	Query   url.Values
	Header  http.Header
	Body    []byte
}

// DecodeJSON decodes the recorded body into v, failing the test on error
func (r RecordedRequest) DecodeJSON(t *testing.T, v any) {
	t.Helper()

	if err := json.Unmarshal(r.Body, v); err != nil {
		t.Fatalf("Failed to decode recorded body %q: %v", string(r.Body), err)
	}
}

// FakeTodoist is an in-process stand-in for the Todoist REST and Sync APIs.
// Routes are registered per test; unknown routes answer 404.
type FakeTodoist struct {
	URL string

	engine *gin.Engine
	server *httptest.Server

	mu       sync.Mutex
	requests []RecordedRequest
}

// NewFakeTodoist starts a fake server that is closed when the test ends
func NewFakeTodoist(t *testing.T) *FakeTodoist {
	t.Helper()

	gin.SetMode(gin.TestMode)
	f := &FakeTodoist{engine: gin.New()}
	f.engine.Use(f.record)
	f.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	f.server = httptest.NewServer(f.engine)
	f.URL = f.server.URL
	t.Cleanup(f.server.Close)

	return f
}

func (f *FakeTodoist) record(c *gin.Context) {
	body, _ := c.GetRawData() // Best effort read
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	f.mu.Lock()
	f.requests = append(f.requests, RecordedRequest{
		Method:  c.Request.Method,
		Path:    c.Request.URL.Path,
		RawPath: c.Request.URL.EscapedPath(),
		Query:   c.Request.URL.Query(),
		Header:  c.Request.Header.Clone(),
		Body:    body,
	})
	f.mu.Unlock()

	c.Next()
}

// Reply registers a route answering with a fixed status and JSON body.
// An empty body sends no content.
func (f *FakeTodoist) Reply(method, path string, status int, body string) {
	f.engine.Handle(method, path, func(c *gin.Context) {
		if body == "" {
			c.Status(status)
			return
		}
		c.Data(status, "application/json", []byte(body))
	})
}

// Handle registers a custom handler for a route
func (f *FakeTodoist) Handle(method, path string, handler gin.HandlerFunc) {
	f.engine.Handle(method, path, handler)
}

// Requests returns every request received so far
func (f *FakeTodoist) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]RecordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

// LastRequest returns the most recent request, failing the test if there is none
func (f *FakeTodoist) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()

	reqs := f.Requests()
	if len(reqs) == 0 {
		t.Fatalf("No request was received")
	}
	return reqs[len(reqs)-1]
}

// TempDir creates a temporary directory for testing
func TempDir(t *testing.T, prefix string) string {
	t.Helper()

	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		_ = os.RemoveAll(dir) // Best effort cleanup
	})

	return dir
}

// SetEnv sets an environment variable for the duration of a test
func SetEnv(t *testing.T, key, value string) {
	t.Helper()

	oldValue, had := os.LookupEnv(key)
	_ = os.Setenv(key, value) // Best effort

	t.Cleanup(func() {
		if !had {
			_ = os.Unsetenv(key) // Best effort
		} else {
			_ = os.Setenv(key, oldValue) // Best effort
		}
	})
}
