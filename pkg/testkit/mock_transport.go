// Package testkit provides HTTP test doubles for the admin client.
//
// MockTransport implements http.RoundTripper and answers outgoing requests
// from registered stubs instead of the network:
//
//	mt := testkit.NewMockTransport(
//	    testkit.Stub{Method: "GET", Path: "/api/tours", Status: 200, Body: `[]`},
//	)
//	c := transport.New("https://example.test", store,
//	    transport.WithHTTPClient(mt.Client()))
//	// ... exercise ...
//	mt.AssertAllCalled(t)
package testkit

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Stub describes one canned response. Method "" matches any method; Path is
// matched as a prefix of the request path. Err, when set, simulates a
// network-level failure instead of returning a response.
type Stub struct {
	Method string
	Path   string
	Status int
	Body   string
	Err    error
}

// RecordedRequest is a request the transport saw, with its body drained.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type stubEntry struct {
	stub  Stub
	calls int
}

// MockTransport matches outgoing requests against stubs in registration
// order and records everything it sees.
type MockTransport struct {
	mu      sync.Mutex
	stubs   []*stubEntry
	seen    []RecordedRequest
	delayed []chan struct{} // gates installed by Block
}

// NewMockTransport builds a transport answering from stubs.
func NewMockTransport(stubs ...Stub) *MockTransport {
	mt := &MockTransport{}
	for _, s := range stubs {
		mt.AddStub(s)
	}
	return mt
}

// AddStub registers another stub; later stubs only match when no earlier
// one does.
func (mt *MockTransport) AddStub(s Stub) {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	mt.stubs = append(mt.stubs, &stubEntry{stub: s})
}

// Client wraps the transport in an *http.Client ready for injection.
func (mt *MockTransport) Client() *http.Client {
	return &http.Client{Transport: mt}
}

// Block makes every subsequent matched request wait until the returned
// release func is called. Used to hold fetches in flight while asserting
// coalescing behaviour.
func (mt *MockTransport) Block() (release func()) {
	gate := make(chan struct{})
	mt.mu.Lock()
	mt.delayed = append(mt.delayed, gate)
	mt.mu.Unlock()

	var once sync.Once
	return func() { once.Do(func() { close(gate) }) }
}

// RoundTrip answers req from the first matching stub, or 404 when nothing
// matches.
func (mt *MockTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	if req.Body != nil {
		body, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}

	mt.mu.Lock()
	mt.seen = append(mt.seen, RecordedRequest{
		Method: req.Method,
		Path:   req.URL.Path,
		Header: req.Header.Clone(),
		Body:   body,
	})

	var gates []chan struct{}
	gates = append(gates, mt.delayed...)

	var matched *stubEntry
	for _, entry := range mt.stubs {
		if entry.stub.Method != "" && entry.stub.Method != req.Method {
			continue
		}
		if !strings.HasPrefix(req.URL.Path, entry.stub.Path) {
			continue
		}
		entry.calls++
		matched = entry
		break
	}
	mt.mu.Unlock()

	for _, gate := range gates {
		<-gate
	}

	if matched == nil {
		return jsonResponse(req, http.StatusNotFound, `{"message":"no stub configured"}`), nil
	}
	if matched.stub.Err != nil {
		return nil, matched.stub.Err
	}

	status := matched.stub.Status
	if status == 0 {
		status = http.StatusOK
	}
	return jsonResponse(req, status, matched.stub.Body), nil
}

// Calls returns how many requests matched the stub for method+path.
func (mt *MockTransport) Calls(method, path string) int {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for _, entry := range mt.stubs {
		if entry.stub.Method == method && entry.stub.Path == path {
			return entry.calls
		}
	}
	return 0
}

// Requests returns a copy of everything the transport saw, in order.
func (mt *MockTransport) Requests() []RecordedRequest {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	return append([]RecordedRequest(nil), mt.seen...)
}

// LastRequest returns the most recent request matching method and path
// prefix, or nil.
func (mt *MockTransport) LastRequest(method, path string) *RecordedRequest {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for i := len(mt.seen) - 1; i >= 0; i-- {
		r := mt.seen[i]
		if r.Method == method && strings.HasPrefix(r.Path, path) {
			return &r
		}
	}
	return nil
}

// AssertAllCalled fails the test for every stub that never matched.
func (mt *MockTransport) AssertAllCalled(t *testing.T) {
	t.Helper()
	mt.mu.Lock()
	defer mt.mu.Unlock()

	for _, entry := range mt.stubs {
		assert.Greater(t, entry.calls, 0,
			"stub %s %s was never called", entry.stub.Method, entry.stub.Path)
	}
}

func jsonResponse(req *http.Request, status int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     header,
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}
}
