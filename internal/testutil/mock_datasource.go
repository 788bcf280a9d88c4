// Package testutil provides testing utilities for the infinite-scroll packages.
package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/Sternrassler/infinite-scroll/pkg/rows"
	"github.com/Sternrassler/infinite-scroll/pkg/rowsource"
)

// FetchPath is the path the mock DataSource serves rows on.
const FetchPath = "/fetchrows"

// MockResponse defines a canned DataSource response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockDataSource is a configurable DataSource server for testing.
// By default it serves the reference row set.
type MockDataSource struct {
	server *httptest.Server

	mu       sync.RWMutex
	handler  http.Handler
	requests []rows.Payload
	held     bool
	gate     chan struct{}
}

// NewMockDataSource creates a new mock DataSource server.
func NewMockDataSource() *MockDataSource {
	mock := &MockDataSource{
		handler: rowsource.NewHandler(rowsource.DefaultConfig()),
		gate:    make(chan struct{}),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		var payload rows.Payload
		_ = json.Unmarshal(body, &payload)

		mock.mu.Lock()
		mock.requests = append(mock.requests, payload)
		held := mock.held
		handler := mock.handler
		mock.mu.Unlock()

		if held {
			select {
			case <-mock.gate:
			case <-r.Context().Done():
				return
			}
		}

		handler.ServeHTTP(w, r)
	}))

	return mock
}

// URL returns the full row endpoint URL.
func (m *MockDataSource) URL() string {
	return m.server.URL + FetchPath
}

// Close shuts down the mock server.
func (m *MockDataSource) Close() {
	m.server.CloseClientConnections()
	m.server.Close()
}

// SetHandler replaces the handler serving requests.
func (m *MockDataSource) SetHandler(handler http.Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handler = handler
}

// SetResponse configures a fixed response for every request.
func (m *MockDataSource) SetResponse(resp MockResponse) {
	m.SetHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	}))
}

// Hold makes subsequent requests block until Release is called once per request.
func (m *MockDataSource) Hold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = true
}

// Release lets exactly one held request proceed.
func (m *MockDataSource) Release() {
	m.gate <- struct{}{}
}

// Unhold stops holding new requests. Requests already waiting still need Release.
func (m *MockDataSource) Unhold() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.held = false
}

// Requests returns the decoded payloads received so far.
func (m *MockDataSource) Requests() []rows.Payload {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]rows.Payload, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestCount returns the number of requests received.
func (m *MockDataSource) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.requests)
}

// NewRowsResponse creates a 200 OK response carrying the given JSON array.
func NewRowsResponse(body string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewServerErrorResponse creates a 500 Internal Server Error response.
func NewServerErrorResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       `{"error": "Internal server error"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}

// NewMalformedResponse creates a 200 OK response whose body is not a row array.
func NewMalformedResponse() MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       `{"rows": "nope"}`,
		Headers: map[string]string{
			"Content-Type": "application/json; charset=utf-8",
		},
	}
}
