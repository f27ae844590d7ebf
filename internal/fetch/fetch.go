// Package fetch downloads the menu page. One GET per call, no retry and no
// caching: every API request re-fetches and re-parses on purpose.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultMenuURL is the upstream totem page serving the weekly menu.
const DefaultMenuURL = "https://app2.eldora.ch/totem/matin?NumEts=9677"

// DefaultTimeout bounds the whole fetch.
const DefaultTimeout = 30 * time.Second

// browserHeaders makes the request look like an ordinary browser visit; the
// totem page serves a reduced document to unknown agents.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "fr-FR,fr;q=0.9,en;q=0.8",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// Client performs the menu page download.
type Client struct {
	// HTTPClient is optional; a default client is used when nil.
	HTTPClient *http.Client
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
}

// Get fetches rawURL and returns the response body as text. Non-2xx
// statuses and unsupported schemes are errors.
func (c *Client) Get(ctx context.Context, rawURL string) (string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	if req.URL == nil || !isHTTPScheme(req.URL) {
		return "", fmt.Errorf("unsupported URL scheme: %q", rawURL)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(b), nil
}

func isHTTPScheme(u *url.URL) bool {
	return u.Scheme == "http" || u.Scheme == "https"
}
