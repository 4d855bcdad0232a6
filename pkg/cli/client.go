package cli

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

	"github.com/gorilla/websocket"

	"github.com/mockario/mockario/pkg/endpoint"
	"github.com/mockario/mockario/pkg/requestlog"
)

// DefaultTimeout is the HTTP timeout for admin API calls.
const DefaultTimeout = 30 * time.Second

// APIError represents an error response from the admin API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("admin API error (%d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("admin API error (%d)", e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the admin API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// Client talks to the admin API of a running server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	dialer     *websocket.Dialer
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the server at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
		dialer:     &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HealthStatus is the body of GET /api/health.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	Uptime  int64  `json:"uptime"`
}

// Health checks the server.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var h HealthStatus
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// ListEndpoints returns every registered endpoint.
func (c *Client) ListEndpoints(ctx context.Context) ([]endpoint.Endpoint, error) {
	var eps []endpoint.Endpoint
	if err := c.do(ctx, http.MethodGet, "/api/endpoints", nil, &eps); err != nil {
		return nil, err
	}
	return eps, nil
}

// CreateEndpoint registers a new endpoint.
func (c *Client) CreateEndpoint(ctx context.Context, in endpoint.Input) (*endpoint.Endpoint, error) {
	var ep endpoint.Endpoint
	if err := c.do(ctx, http.MethodPost, "/api/endpoints", in, &ep); err != nil {
		return nil, err
	}
	return &ep, nil
}

// DeleteEndpoint removes an endpoint by ID.
func (c *Client) DeleteEndpoint(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/endpoints/"+url.PathEscape(id), nil, nil)
}

// LogQuery narrows a request log listing.
type LogQuery struct {
	Method     string
	Path       string
	EndpointID string
	Limit      int
}

func (q LogQuery) values() url.Values {
	v := url.Values{}
	if q.Method != "" {
		v.Set("method", q.Method)
	}
	if q.Path != "" {
		v.Set("path", q.Path)
	}
	if q.EndpointID != "" {
		v.Set("endpointId", q.EndpointID)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	return v
}

// ListLogs returns request log entries, newest first.
func (c *Client) ListLogs(ctx context.Context, q LogQuery) ([]*requestlog.Entry, error) {
	path := "/api/logs"
	if v := q.values(); len(v) > 0 {
		path += "?" + v.Encode()
	}
	var entries []*requestlog.Entry
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// StreamLogs follows the live request log until ctx is cancelled, the
// server closes the stream or fn returns an error.
func (c *Client) StreamLogs(ctx context.Context, fn func(*requestlog.Entry) error) error {
	wsURL, err := websocketURL(c.baseURL + "/api/logs/stream")
	if err != nil {
		return err
	}

	conn, resp, err := c.dialer.DialContext(ctx, wsURL, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("connect to log stream: %w", err)
	}
	defer func() { _ = conn.Close() }()

	stopped := make(chan struct{})
	defer close(stopped)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			_ = conn.Close()
		case <-stopped:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read log stream: %w", err)
		}
		var entry requestlog.Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			return fmt.Errorf("decode log entry: %w", err)
		}
		if err := fn(&entry); err != nil {
			return err
		}
	}
}

func websocketURL(httpURL string) (string, error) {
	u, err := url.Parse(httpURL)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}
	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("invalid server URL scheme %q", u.Scheme)
	}
	return u.String(), nil
}

// do sends a JSON request and decodes a JSON response into out when out is
// non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("cannot connect to mockario at %s: %w", c.baseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return parseError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// parseError builds an APIError from an error response body.
func parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		apiErr.Message = payload.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}
