package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/bekzodm/sayohat/pkg/event"
	"github.com/bekzodm/sayohat/pkg/logger"
	"github.com/bekzodm/sayohat/pkg/metrics"
)

// Request is a fluent builder for one API call.
type Request struct {
	client  *Client
	method  string
	path    string
	headers map[string]string
	body    interface{}

	// multipart upload
	fileField string
	fileName  string
	file      io.Reader
}

func (c *Client) newRequest(method, path string) *Request {
	return &Request{
		client: c,
		method: method,
		path:   path,
		headers: map[string]string{
			"Accept": "application/json",
		},
	}
}

// Header adds a single header.
func (r *Request) Header(key, value string) *Request {
	r.headers[key] = value
	return r
}

// Body sets the JSON request body.
func (r *Request) Body(v interface{}) *Request {
	r.body = v
	return r
}

// File attaches content as a multipart file upload under field.
// Mutually exclusive with Body.
func (r *Request) File(field, filename string, content io.Reader) *Request {
	r.fileField = field
	r.fileName = filename
	r.file = content
	return r
}

// Send executes the request. Non-2xx responses return (*Response, *HTTPError)
// so callers can still read the raw body; a 401 additionally clears the
// session and fires event.SessionExpired.
func (r *Request) Send(ctx context.Context) (*Response, error) {
	c := r.client

	var resp *Response
	var err error
	if c.breaker != nil {
		resp, err = c.breaker.Execute(func() (*Response, error) { return r.do(ctx) })
	} else {
		resp, err = r.do(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("transport: %s %s: %w", r.method, r.path, err)
	}

	metrics.RequestTotal.WithLabelValues(r.method, r.path, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized {
		// Global session invalidation: every later call goes out unauthenticated
		// until the next successful login.
		_ = c.session.Clear()
		event.Fire(event.SessionExpired, r.path)
		logger.Warn("session expired", "path", r.path)
	}

	if !resp.OK() {
		return resp, &HTTPError{
			Status:  resp.StatusCode,
			Message: serverMessage(resp.Raw, resp.StatusCode),
		}
	}
	return resp, nil
}

func (r *Request) do(ctx context.Context) (*Response, error) {
	body, contentType, err := r.buildBody()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, r.client.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, r.method, r.client.baseURL+r.path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for k, v := range r.headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := r.client.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := r.client.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send: %w", err)
	}

	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	elapsed := time.Since(start)
	status := strconv.Itoa(resp.StatusCode)
	metrics.RequestDuration.WithLabelValues(r.method, r.path, status).Observe(elapsed.Seconds())
	logger.Debug("api call", "method", r.method, "path", r.path,
		"status", resp.StatusCode, "elapsed", elapsed)

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Raw:        raw,
	}, nil
}

func (r *Request) buildBody() (io.Reader, string, error) {
	if r.file != nil {
		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile(r.fileField, r.fileName)
		if err != nil {
			return nil, "", fmt.Errorf("multipart: %w", err)
		}
		if _, err := io.Copy(part, r.file); err != nil {
			return nil, "", fmt.Errorf("multipart copy: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, "", fmt.Errorf("multipart close: %w", err)
		}
		return &buf, w.FormDataContentType(), nil
	}

	if r.body == nil {
		return nil, "", nil
	}

	b, err := json.Marshal(r.body)
	if err != nil {
		return nil, "", fmt.Errorf("marshal body: %w", err)
	}
	return bytes.NewReader(b), "application/json", nil
}

// Response wraps the HTTP response with convenience methods.
type Response struct {
	StatusCode int
	Headers    http.Header
	Raw        []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON unmarshals the response body into dest.
func (r *Response) JSON(dest interface{}) error {
	if err := json.Unmarshal(r.Raw, dest); err != nil {
		return fmt.Errorf("transport: decode JSON: %w", err)
	}
	return nil
}

// Text returns the response body as a string.
func (r *Response) Text() string { return string(r.Raw) }
