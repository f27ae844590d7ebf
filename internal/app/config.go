package app

import (
	"time"

	"github.com/elcappfet/menuapi/internal/fetch"
	"github.com/elcappfet/menuapi/internal/imagegen"
)

// Config holds runtime configuration for the service.
type Config struct {
	// Addr is the listen address, e.g. ":8000".
	Addr string

	// Menu page fetch
	MenuURL      string
	FetchTimeout time.Duration

	// Image generation (OpenAI-compatible backend). Generation is disabled
	// when APIKey is empty.
	ImageBaseURL string
	ImageModel   string
	ImageAPIKey  string
	CacheTTL     time.Duration

	Verbose bool
}

// Defaults fills unset fields with working values.
func (c *Config) Defaults() {
	if c.Addr == "" {
		c.Addr = ":8000"
	}
	if c.MenuURL == "" {
		c.MenuURL = fetch.DefaultMenuURL
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = fetch.DefaultTimeout
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = imagegen.DefaultTTL
	}
}
