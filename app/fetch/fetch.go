// Package fetch provides a polite HTTP client for list and detail pages:
// a descriptive User-Agent, per-request timeout and a fixed delay between
// requests to the source site.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client fetches pages sequentially with a minimum delay between requests.
type Client struct {
	httpClient *http.Client
	userAgent  string
	delay      time.Duration
	lastReq    time.Time
}

// Options configures a Client.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Delay     time.Duration
}

func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  opts.UserAgent,
		delay:      opts.Delay,
	}
}

// Get fetches a URL and returns the response body. Non-200 statuses are
// errors. The configured delay is applied before every request after the
// first.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	if err := c.waitDelay(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9,nb;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error fetching %s: %d %s", url, resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	c.lastReq = time.Now()
	return string(body), nil
}

func (c *Client) waitDelay(ctx context.Context) error {
	if c.delay == 0 || c.lastReq.IsZero() {
		return nil
	}
	remaining := c.delay - time.Since(c.lastReq)
	if remaining <= 0 {
		return nil
	}
	select {
	case <-time.After(remaining):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
