package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultBaseURL = "https://a-cn-p-backend.vercel.app/"

// ErrNoResults is returned by the status-filtered list endpoints when the
// backend answers with its "No ... found" message instead of an array.
var ErrNoResults = errors.New("backend: no results")

// StatusError is a non-2xx answer from the backend.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend %s %s: status=%d", e.Method, e.Path, e.StatusCode)
	}
	return fmt.Sprintf("backend %s %s: status=%d body=%s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Client maps one domain operation to one HTTP call. It never retries and
// never caches.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Zero means no timeout. The client set
// by WithHTTPClient is copied, not modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.httpClient
		hc.Timeout = d
		c.httpClient = &hc
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("backend base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend base url: unsupported scheme %q", u.Scheme)
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func segment(s string) string {
	return url.PathEscape(strings.TrimSpace(s))
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend %s %s: marshal payload: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, body, contentType, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+strings.TrimPrefix(path, "/"), body)
	if err != nil {
		return fmt.Errorf("backend %s %s: create request: %w", method, path, err)
	}
	req.Header.Set("accept", "application/json")
	if contentType != "" {
		req.Header.Set("content-type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend %s %s: request failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("backend %s %s: decode response: %w", method, path, err)
	}
	return nil
}

// listByStatus fetches a status-filtered collection. The backend answers an
// empty collection with an error status and a "No <kind> found" message, and
// occasionally with a non-array payload; both become ErrNoResults.
func listByStatus[T any](ctx context.Context, c *Client, path, emptyMessage string) ([]T, error) {
	var raw json.RawMessage
	err := c.doJSON(ctx, http.MethodGet, path, nil, &raw)
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && strings.Contains(se.Body, emptyMessage) {
			return nil, ErrNoResults
		}
		return nil, err
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, ErrNoResults
	}
	var items []T
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("backend GET %s: decode response: %w", path, err)
	}
	return items, nil
}
