// Package config loads and persists the user configuration from
// ~/.trendremix/config.json. A missing file yields defaults; the
// GEMINI_API_KEY environment variable always wins over the stored key.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config is the persisted user configuration.
type Config struct {
	APIKey  string `json:"api_key,omitempty"`
	Model   string `json:"model,omitempty"`
	DataDir string `json:"data_dir,omitempty"`
	Verbose bool   `json:"verbose,omitempty"`
}

// DefaultModel mirrors the gateway default; kept here so the config file is
// self-describing without importing the gateway.
const DefaultModel = "gemini-3-pro-preview"

// DefaultDir returns the dotdir holding config and data.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".trendremix"
	}
	return filepath.Join(home, ".trendremix")
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.json")
}

// Load reads the config at path, applying defaults and env overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// defaults only
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.DataDir == "" {
		cfg.DataDir = DefaultDir()
	}
	return cfg, nil
}

// Save writes the config to path, creating the parent directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

// DatabasePath returns the SQLite file under the data dir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "trendremix.db")
}

// MediaDir returns the directory for local media copies.
func (c *Config) MediaDir() string {
	return filepath.Join(c.DataDir, "media")
}
