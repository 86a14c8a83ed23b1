// ABOUTME: HTTP client core for the Zorel Leather storefront API
// ABOUTME: Single request path handling auth, serialization, and error normalization

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lazybrownass/zorel-leather/internal/store"
)

const (
	defaultBaseURL = "http://localhost:8000"
	defaultVersion = "v1"
)

// Config carries the injected collaborators for a Client. Zero values get
// local-development defaults.
type Config struct {
	BaseURL    string       // backend origin, default http://localhost:8000
	Version    string       // API version segment, default v1
	HTTPClient *http.Client // default: 30s timeout
	Tokens     store.Store  // read-only here; default store.Null
	Logger     *slog.Logger // diagnostic sink; default discards
}

// Client is the single choke point for every storefront API call.
type Client struct {
	baseURL    string // {origin}/api/{version}
	httpClient *http.Client
	tokens     store.Store
	log        *slog.Logger
}

// New creates a client from cfg, applying defaults for unset fields.
func New(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	version := cfg.Version
	if version == "" {
		version = defaultVersion
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	var tokens store.Store = cfg.Tokens
	if tokens == nil {
		tokens = store.Null{}
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	return &Client{
		baseURL:    strings.TrimRight(base, "/") + "/api/" + version,
		httpClient: httpClient,
		tokens:     tokens,
		log:        log,
	}
}

// BaseURL returns the resolved versioned base, for display purposes.
func (c *Client) BaseURL() string { return c.baseURL }

// Get issues an ad hoc GET to a relative endpoint path.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, nil, out)
}

// Post issues an ad hoc POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put issues an ad hoc PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues an ad hoc DELETE.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

// do serializes body as JSON (when present) and sends the request. Every
// typed endpoint wrapper funnels through here.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializing request body: %w", err)
		}
		reader = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.send(ctx, method, path, query, reader, contentType, body, out)
}

// send issues the network call. contentType is empty for bodyless requests
// and for multipart bodies, where the writer's boundary-bearing value is
// passed instead.
func (c *Client) send(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, logBody, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := store.BearerToken(c.tokens); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	c.log.Debug("api request",
		"method", method,
		"url", target,
		"body", redact(logBody))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		apiErr := transportError(err)
		c.log.Debug("api transport failure", "method", method, "url", target, "error", err)
		return apiErr
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		apiErr := transportError(err)
		c.log.Debug("api read failure", "method", method, "url", target, "error", err)
		return apiErr
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, http.StatusText(resp.StatusCode), raw)
		c.log.Debug("api error response",
			"method", method,
			"url", target,
			"status", resp.StatusCode,
			"code", apiErr.Code(),
			"message", apiErr.Message,
			"validation_errors", apiErr.ValidationErrors())
		return apiErr
	}

	c.log.Debug("api response",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"bytes", len(raw))

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
