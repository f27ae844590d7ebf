package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ApplyEnvToConfig populates unset fields of cfg from environment
// variables. Explicit cfg values take precedence over env.
func ApplyEnvToConfig(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Addr == "" {
		cfg.Addr = os.Getenv("MENUAPI_ADDR")
	}
	if cfg.MenuURL == "" {
		cfg.MenuURL = os.Getenv("MENU_URL")
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = os.Getenv("OPENAI_BASE_URL")
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = os.Getenv("IMAGE_MODEL")
	}
	if cfg.ImageAPIKey == "" {
		cfg.ImageAPIKey = os.Getenv("OPENAI_API_KEY")
	}

	if cfg.FetchTimeout == 0 {
		if s := os.Getenv("FETCH_TIMEOUT"); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				cfg.FetchTimeout = d
			}
		}
	}

	// CACHE_TTL_HOURS is kept for compatibility with existing deployments.
	if cfg.CacheTTL == 0 {
		if s := os.Getenv("CACHE_TTL_HOURS"); s != "" {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil && n > 0 {
				cfg.CacheTTL = time.Duration(n) * time.Hour
			}
		}
	}

	if !cfg.Verbose {
		if s := strings.ToLower(strings.TrimSpace(os.Getenv("VERBOSE"))); s != "" {
			cfg.Verbose = s == "1" || s == "true" || s == "yes" || s == "on"
		}
	}
}
