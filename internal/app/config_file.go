package app

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// FileConfig is the single-file configuration schema. Nested sections map
// naturally onto flags and env variables.
type FileConfig struct {
	Addr string `yaml:"addr" json:"addr"`

	Menu struct {
		URL     string        `yaml:"url" json:"url"`
		Timeout time.Duration `yaml:"timeout" json:"timeout"`
	} `yaml:"menu" json:"menu"`

	Images struct {
		BaseURL  string        `yaml:"base" json:"base"`
		Model    string        `yaml:"model" json:"model"`
		APIKey   string        `yaml:"key" json:"key"`
		CacheTTL time.Duration `yaml:"cacheTTL" json:"cacheTTL"`
	} `yaml:"images" json:"images"`

	Verbose bool `yaml:"verbose" json:"verbose"`
}

// LoadFileConfig reads a YAML or JSON config file, chosen by extension.
func LoadFileConfig(path string) (*FileConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc := &FileConfig{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(b, fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(b, fc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return fc, nil
}

// MergeFileConfig copies set file values into unset cfg fields, so explicit
// flags keep precedence over the file.
func MergeFileConfig(cfg *Config, fc *FileConfig) {
	if cfg == nil || fc == nil {
		return
	}
	if cfg.Addr == "" {
		cfg.Addr = fc.Addr
	}
	if cfg.MenuURL == "" {
		cfg.MenuURL = fc.Menu.URL
	}
	if cfg.FetchTimeout == 0 {
		cfg.FetchTimeout = fc.Menu.Timeout
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = fc.Images.BaseURL
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = fc.Images.Model
	}
	if cfg.ImageAPIKey == "" {
		cfg.ImageAPIKey = fc.Images.APIKey
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = fc.Images.CacheTTL
	}
	if !cfg.Verbose {
		cfg.Verbose = fc.Verbose
	}
}
