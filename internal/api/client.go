// Package api is the thin wrapper around the remote dashboard API. It owns
// the base URL, bearer-token attachment, multipart uploads, and the global
// 401 handling; everything above it works with decoded domain values.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"ekstre/internal/domain"
)

const maxResponseBody = 1 << 20

// TokenSource supplies the current bearer credential. An empty string means
// the request goes out unauthenticated.
type TokenSource interface {
	AccessToken() string
}

// Client talks to the remote API. All methods are safe for concurrent use.
type Client struct {
	baseURL        *url.URL
	http           *http.Client
	tokens         TokenSource
	limiter        *rate.Limiter
	onUnauthorized func()
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRateLimit throttles outgoing requests to the given per-minute budget.
func WithRateLimit(requestsPerMinute int) Option {
	return func(c *Client) {
		if requestsPerMinute > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute)
		}
	}
}

// WithUnauthorizedHandler registers the hook invoked on any 401 response,
// regardless of which call triggered it.
func WithUnauthorizedHandler(fn func()) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// New creates a Client for the given base URL.
func New(baseURL string, tokens TokenSource, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	c := &Client{
		baseURL: u,
		http:    &http.Client{},
		tokens:  tokens,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// do issues one request and decodes the JSON response into out (when out is
// non-nil). Content-Type comes from header: application/json for JSON
// bodies, the writer's boundary-bearing type for multipart uploads, nothing
// for body-less requests. No retries: a failed request is reported once and
// left to the caller.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, header http.Header, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	u := c.baseURL.ResolveReference(&url.URL{Path: path, RawQuery: query.Encode()})
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%s %s: reading response: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		log.Warn().Str("path", path).Msg("unauthorized response, clearing session")
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return fmt.Errorf("%s %s: %w", method, path, domain.ErrUnauthorized)
	}
	if resp.StatusCode >= 400 {
		return &Error{Status: resp.StatusCode, Message: ExtractMessage(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: decoding response: %w", method, path, err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, nil, out)
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	header := http.Header{"Content-Type": []string{"application/json"}}
	return c.do(ctx, http.MethodPost, path, nil, bytes.NewReader(body), header, out)
}
