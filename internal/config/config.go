// Package config holds samplerev's configuration: defaults, the viper
// unmarshal target, and the config file written by `config init`.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config is the resolved configuration. Precedence: CLI flags, then
// SAMPLEREV_* environment variables, then the config file, then
// defaults.
type Config struct {
	// BackendURL is the base URL of the sample-management API.
	BackendURL string `mapstructure:"backend_url" yaml:"backend_url"`
	// APIToken is the bearer token sent on every request.
	APIToken string `mapstructure:"api_token" yaml:"api_token"`
	// PageSize is the listing page size used when loading review lists.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`
	// RateLimit caps requests per second against the backend.
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	// WatchDebounceMS is how long a dropped CSV must be quiet before
	// auto-import picks it up.
	WatchDebounceMS int `mapstructure:"watch_debounce_ms" yaml:"watch_debounce_ms"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BackendURL:      "http://localhost:8000",
		PageSize:        200,
		RateLimit:       20,
		WatchDebounceMS: 500,
	}
}

// Load unmarshals the viper state over the defaults.
func Load() (Config, error) {
	cfg := Default()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("unmarshaling config: %w", err)
	}
	if cfg.PageSize <= 0 {
		return cfg, fmt.Errorf("page_size must be positive, got %d", cfg.PageSize)
	}
	if cfg.RateLimit <= 0 {
		return cfg, fmt.Errorf("rate_limit must be positive, got %v", cfg.RateLimit)
	}
	return cfg, nil
}

// Dir returns the config directory (~/.samplerev).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".samplerev"), nil
}

// Path returns the config file path.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// WriteDefault creates the config file with defaults, refusing to
// overwrite an existing one.
func WriteDefault() (string, error) {
	path, err := Path()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("marshaling defaults: %w", err)
	}
	header := []byte("# samplerev configuration.\n# Overridden by SAMPLEREV_* environment variables and CLI flags.\n")
	if err := os.WriteFile(path, append(header, data...), 0o644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}
