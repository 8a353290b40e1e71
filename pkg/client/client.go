// Package client talks to a running sociallogin instance: it builds login
// links and reads the health and provider endpoints.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Second

// Config holds the configuration for a Client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

type healthResponse struct {
	Status string `json:"status"`
}

// Client is a sociallogin API client.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a new Client.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// LoginURL is the link that starts a login with provider.
func (c *Client) LoginURL(provider string) string {
	return fmt.Sprintf("%s/login/%s", c.baseURL, url.PathEscape(provider))
}

// Providers returns the configured provider names in registry order.
func (c *Client) Providers(ctx context.Context) ([]string, error) {
	resp, err := c.get(ctx, "/providers")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, newStatusError("failed to fetch providers", resp)
	}

	var providers []string
	if err := json.NewDecoder(resp.Body).Decode(&providers); err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to decode response: %s", err.Error())}
	}
	return providers, nil
}

// HealthCheck returns nil when the server reports status "ok".
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.get(ctx, "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return newStatusError("health check failed", resp)
	}

	var data healthResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return &Error{Message: fmt.Sprintf("failed to decode response: %s", err.Error())}
	}
	if data.Status != "ok" {
		return &Error{Message: fmt.Sprintf("unhealthy: %q", data.Status), StatusCode: resp.StatusCode}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to create request: %s", err.Error())}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{Message: fmt.Sprintf("network error: %s", err.Error())}
	}
	return resp, nil
}

func newStatusError(prefix string, resp *http.Response) *Error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	msg := fmt.Sprintf("%s: %s", prefix, http.StatusText(resp.StatusCode))
	if s := strings.TrimSpace(string(body)); s != "" {
		msg += ": " + s
	}
	return &Error{Message: msg, StatusCode: resp.StatusCode}
}
