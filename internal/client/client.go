// Package client is a typed HTTP/JSON client for the ClassTrak API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ryanbastic/classtrak/internal/circuitbreaker"
	"github.com/ryanbastic/classtrak/internal/record"
	"github.com/ryanbastic/classtrak/internal/tabular"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// countsAsFailure reports whether err says the server is unreachable or
// broken. Client errors (4xx) and caller cancellation do not.
func countsAsFailure(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500
	}
	return true
}

// Client calls the four student endpoints. It never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	breaker    *circuitbreaker.Breaker
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds each request. Zero leaves the http.Client's own
// timeout in place. It holds regardless of where WithHTTPClient appears.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithBreaker fails calls fast after maxFailures consecutive transport
// errors or 5xx responses, until resetTimeout has passed.
func WithBreaker(maxFailures int, resetTimeout time.Duration) Option {
	return func(c *Client) {
		c.breaker = circuitbreaker.New(maxFailures, resetTimeout,
			circuitbreaker.WithFailurePredicate(countsAsFailure))
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a Client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		breaker:    circuitbreaker.New(0, 0),
	}
	for _, o := range opts {
		o(c)
	}
	if c.timeout > 0 {
		// Copy so a caller's shared http.Client is not modified.
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// BreakerState reports the circuit breaker state.
func (c *Client) BreakerState() circuitbreaker.State {
	return c.breaker.State()
}

// StartUp fetches the student table.
func (c *Client) StartUp(ctx context.Context) (tabular.Result, error) {
	var resp record.StartUpResponse
	if err := c.do(ctx, http.MethodGet, "/StartUp", nil, nil, &resp); err != nil {
		return nil, fmt.Errorf("start up: %w", err)
	}
	return resp.Students, nil
}

// Retrieve fetches the class table of one student.
func (c *Client) Retrieve(ctx context.Context, studentID int) (tabular.Result, error) {
	var resp record.RetrieveResponse
	if err := c.do(ctx, http.MethodGet, "/Retrieve", idQuery(studentID), nil, &resp); err != nil {
		return nil, fmt.Errorf("retrieve %d: %w", studentID, err)
	}
	return resp.Table, nil
}

// Delete removes a student. The response carries the refreshed student table.
func (c *Client) Delete(ctx context.Context, studentID int) (*record.DeleteResponse, error) {
	var resp record.DeleteResponse
	if err := c.do(ctx, http.MethodDelete, "/Delete", idQuery(studentID), nil, &resp); err != nil {
		return nil, fmt.Errorf("delete %d: %w", studentID, err)
	}
	return &resp, nil
}

// Update replaces a student's names and school and returns the affected
// row count.
func (c *Client) Update(ctx context.Context, req record.UpdateRequest) (int, error) {
	var resp record.UpdateResponse
	if err := c.do(ctx, http.MethodPut, "/Update", nil, req, &resp); err != nil {
		return 0, fmt.Errorf("update %d: %w", req.ID, err)
	}
	return resp.Rows, nil
}

func idQuery(id int) url.Values {
	return url.Values{"id": []string{strconv.Itoa(id)}}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	return c.breaker.Execute(func() error {
		return c.roundTrip(ctx, method, path, query, in, out)
	})
}

func (c *Client) roundTrip(ctx context.Context, method, path string, query url.Values, in, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
