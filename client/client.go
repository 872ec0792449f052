// Package client implements the typed HTTP client for the paydesk API.
//
// Every service routes its requests through the http.Client the caller
// supplies, which is expected to carry the transport.Authorizer so that the
// session credential is attached and rejections are detected. There is no
// unauthenticated side door: all mutating operations go through the same
// pipeline.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// Client talks to the paydesk API.
type Client struct {
	baseURL *url.URL
	httpc   *http.Client

	Auth        *AuthService
	Users       *UsersService
	Employees   *EmployeesService
	Payroll     *PayrollService
	Departments *DepartmentsService
	Audit       *AuditService
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for all requests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpc = h
	}
}

// New creates a Client for the API rooted at baseURL (e.g. "http://host/api").
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	c := &Client{
		baseURL: u,
		httpc:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.Auth = &AuthService{client: c}
	c.Users = &UsersService{client: c}
	c.Employees = &EmployeesService{client: c}
	c.Payroll = &PayrollService{client: c}
	c.Departments = &DepartmentsService{client: c}
	c.Audit = &AuditService{client: c}
	return c, nil
}

// envelope is the API's response wrapper: {"data": ...} on success,
// {"message": "..."} on failure.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (c *Client) newRequest(ctx context.Context, method string, query url.Values, body any, elem ...string) (*http.Request, error) {
	u := c.baseURL.JoinPath(elem...)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do issues a request and decodes the {data} envelope into out (when non-nil).
// Network failures are returned unchanged; non-2xx statuses become *APIError.
func (c *Client) do(ctx context.Context, method string, query url.Values, body, out any, elem ...string) error {
	req, err := c.newRequest(ctx, method, query, body, elem...)
	if err != nil {
		return err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}
	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decoding response envelope: %w", err)
	}
	if env.Data == nil {
		return fmt.Errorf("response envelope missing data field")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decoding response data: %w", err)
	}
	return nil
}

// doRaw issues a request and returns the raw response body. Used for byte
// stream downloads (payslips, CSV exports).
func (c *Client) doRaw(ctx context.Context, method string, query url.Values, elem ...string) ([]byte, error) {
	req, err := c.newRequest(ctx, method, query, nil, elem...)
	if err != nil {
		return nil, err
	}
	req.Header.Del("Accept")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp.StatusCode, data)
	}
	return data, nil
}
