package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/stockpro/stockpro-cli/internal/debug"
	"github.com/stockpro/stockpro-cli/internal/inflight"
	"github.com/stockpro/stockpro-cli/internal/validation"
)

const (
	DefaultBaseURL = "http://localhost:8000/api/"
	DefaultTimeout = 30 * time.Second
)

// Client is the StockPro backend API client.
//
// The bearer token is requested from Tokens on every call and never cached,
// so a token refreshed by another process is picked up immediately.
//
// Guard serializes mutating calls per record. It defaults to an in-process
// guard; set it to a shared implementation (inflight.Redis) to extend the
// protection across processes, or to inflight.Noop{} to disable it.
type Client struct {
	BaseURL   string
	Tokens    TokenProvider
	HTTP      *http.Client
	UserAgent string
	Guard     inflight.Guard
}

var _ requester = (*Client)(nil)

// New creates a new StockPro API client.
func New(baseURL string, tokens TokenProvider) *Client {
	baseTransport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		baseTransport = &http.Transport{}
	}
	transport := baseTransport.Clone()
	if transport.TLSClientConfig == nil {
		transport.TLSClientConfig = &tls.Config{}
	} else {
		transport.TLSClientConfig = transport.TLSClientConfig.Clone()
	}
	transport.TLSClientConfig.MinVersion = tls.VersionTLS12

	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		BaseURL: validation.NormalizeBaseURL(baseURL),
		Tokens:  tokens,
		HTTP: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: transport,
		},
		Guard: inflight.NewMemory(),
	}
}

// endpoint joins a relative resource path ("products/12/") onto BaseURL.
func (c *Client) endpoint(path string) string {
	return validation.NormalizeBaseURL(c.BaseURL) + strings.TrimPrefix(path, "/")
}

// acquire takes the in-flight slot for key.
func (c *Client) acquire(ctx context.Context, key string) (func(), error) {
	if c.Guard == nil {
		return func() {}, nil
	}
	return c.Guard.Acquire(ctx, key)
}

// do performs a request and decodes a JSON response into result.
func (c *Client) do(ctx context.Context, method, path string, body requestBody, result any) error {
	respBody, err := c.execute(ctx, method, path, body)
	if err != nil {
		return err
	}
	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unexpected API response format (JSON decode failed): %w", err)
		}
	}
	return nil
}

// execute performs a single HTTP request. There is no retry: every failure is
// returned to the caller.
func (c *Client) execute(ctx context.Context, method, path string, body requestBody) ([]byte, error) {
	var (
		payload     []byte
		contentType string
	)
	if body != nil {
		var err error
		payload, contentType, err = body.encode()
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	url := c.endpoint(path)
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if err := c.authorize(ctx, req); err != nil {
		return nil, err
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		debug.Log(ctx, "request failed", "method", method, "url", url, "error", err)
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	debug.Log(ctx, "request complete", "method", method, "url", url, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return respBody, newAPIError(method, url, resp.StatusCode, respBody)
	}
	return respBody, nil
}

func (c *Client) authorize(ctx context.Context, req *http.Request) error {
	if c.Tokens == nil {
		return nil
	}
	token, err := c.Tokens.Token(ctx)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return nil
		}
		return fmt.Errorf("failed to load access token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return nil
}

// Ping checks that the backend answers on the API root. Any HTTP response,
// including 401 and 404, counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(""), nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}
