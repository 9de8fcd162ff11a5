// Package transport wraps all outbound calls to the booking API.
//
// Every request automatically carries the persisted bearer token and an
// X-Request-ID. A 401 from any endpoint clears the session store and fires
// event.SessionExpired — the process-wide "session expired" signal — before
// the structured error is returned to the caller. Non-2xx responses surface
// as *HTTPError and are never swallowed. This layer does not retry.
//
//	c := transport.New(config.APIBaseURL(), store)
//	resp, err := c.Get("/api/tours").Send(ctx)
//	var tours []model.Tour
//	err = resp.JSON(&tours)
package transport

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/bekzodm/sayohat/config"
	"github.com/bekzodm/sayohat/internal/session"
	"github.com/bekzodm/sayohat/pkg/logger"
)

// defaultTransport is the connection-pooled transport used in production.
// Tests swap it via WithHTTPClient to inject mocks.
var defaultTransport = &http.Transport{
	MaxIdleConns:        100,
	MaxIdleConnsPerHost: 50,
	IdleConnTimeout:     90 * time.Second,
}

// Client talks to one API base URL on behalf of one session.
type Client struct {
	baseURL string
	http    *http.Client
	session session.Store
	timeout time.Duration
	breaker *gobreaker.CircuitBreaker[*Response]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (tests inject a
// RoundTripper stub this way).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithBreaker guards the upstream with a circuit breaker. Only network-level
// failures count against it; HTTP error statuses pass through untouched, so
// the breaker never masks a server-side rejection.
func WithBreaker() Option {
	return func(c *Client) {
		c.breaker = gobreaker.NewCircuitBreaker[*Response](gobreaker.Settings{
			Name:        "booking-api",
			MaxRequests: 3,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn("api breaker state change", "name", name,
					"from", from.String(), "to", to.String())
			},
		})
	}
}

// New builds a Client for baseURL using store for bearer tokens.
func New(baseURL string, store session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Transport: defaultTransport},
		session: store,
		timeout: config.HTTPTimeout(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get starts a GET request for path (e.g. "/api/tours").
func (c *Client) Get(path string) *Request { return c.newRequest(http.MethodGet, path) }

// Post starts a POST request.
func (c *Client) Post(path string) *Request { return c.newRequest(http.MethodPost, path) }

// Put starts a PUT request.
func (c *Client) Put(path string) *Request { return c.newRequest(http.MethodPut, path) }

// Patch starts a PATCH request.
func (c *Client) Patch(path string) *Request { return c.newRequest(http.MethodPatch, path) }

// Delete starts a DELETE request.
func (c *Client) Delete(path string) *Request { return c.newRequest(http.MethodDelete, path) }

// bearer returns the token to attach, treating a locally expired JWT as
// absent so the request does not burn a round trip on a guaranteed 401.
func (c *Client) bearer() string {
	token := c.session.Token()
	if token == "" {
		return ""
	}
	if session.Expired(token) {
		logger.Debug("session token expired locally, clearing")
		_ = c.session.Clear()
		return ""
	}
	return token
}
