// Package postgrest provides a client for the PostgREST API that fronts
// the managed table store (Supabase).
//
// It covers the four table operations the service needs (select with
// filters and order, insert, update by filter, delete by filter) plus a
// reachability ping. Filters use PostgREST's query syntax, e.g.
// name=ilike.*milk* or id=eq.<id>.
package postgrest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// restPath is where Supabase mounts PostgREST under the project URL.
	restPath = "rest/v1/"

	// maxErrorBody bounds how much of an error response is read.
	maxErrorBody = 64 << 10
)

// Client talks to one PostgREST endpoint with a fixed API key.
//
// It is safe for concurrent use; the underlying http.Client is shared.
type Client struct {
	restURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the timeout of the default http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) {
		c.logger = logger.With().Str("component", "postgrest").Logger()
	}
}

// NewClient creates a client for the project at baseURL
// (e.g. https://xyz.supabase.co). The key is sent both as the apikey
// header and as a bearer token, as Supabase expects.
func NewClient(baseURL, apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("postgrest: api key is required")
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("postgrest: invalid base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("postgrest: base url must be http or https, got %q", baseURL)
	}
	if !strings.HasSuffix(parsed.Path, "/") {
		parsed.Path += "/"
	}

	c := &Client{
		restURL:    parsed.JoinPath(restPath),
		apiKey:     apiKey,
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Select runs GET /<table>?<params> and decodes the JSON array into out.
func (c *Client) Select(ctx context.Context, table string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, table, params, nil, out)
}

// Insert runs POST /<table> with rows as the JSON body.
func (c *Client) Insert(ctx context.Context, table string, rows any) error {
	return c.do(ctx, http.MethodPost, table, nil, rows, nil)
}

// Update runs PATCH /<table>?<filter> with patch as the JSON body.
// Rows not matched by filter are untouched; zero matches is not an error.
func (c *Client) Update(ctx context.Context, table string, filter url.Values, patch any) error {
	return c.do(ctx, http.MethodPatch, table, filter, patch, nil)
}

// Delete runs DELETE /<table>?<filter>. Zero matches is not an error.
func (c *Client) Delete(ctx context.Context, table string, filter url.Values) error {
	return c.do(ctx, http.MethodDelete, table, filter, nil, nil)
}

// Ping checks that the endpoint is reachable and accepts the key.
func (c *Client) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "", nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, table string, query url.Values, body any, out any) error {
	start := time.Now()

	endpoint := c.restURL
	if table != "" {
		endpoint = c.restURL.JoinPath(table)
	}
	u := *endpoint
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("postgrest: encode body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("postgrest: build request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if method != http.MethodGet {
		req.Header.Set("Prefer", "return=minimal")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	c.logger.Debug().
		Str("method", method).
		Str("table", table).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("postgrest request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("postgrest: decode response: %w", err)
	}
	return nil
}
