// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading for the forkful TUI.
//
// Configuration is TOML with sensible defaults and environment variable
// overrides. File location: ~/.forkful/config.toml.
package config

import (
	"bytes"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/forkfulapp/forkful-tui/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete forkful client configuration.
type Config struct {
	// Server settings
	Server ServerConfig `toml:"server"`

	// UI settings
	UI UIConfig `toml:"ui"`

	// State settings (local files the client keeps between runs)
	State StateConfig `toml:"state"`
}

// ServerConfig describes how to reach the account service.
type ServerConfig struct {
	// BaseURL is the root URL of the account service, e.g. "https://api.forkful.app".
	BaseURL string `toml:"base_url"`
	// RequestTimeoutSecs is the per-request timeout in seconds.
	RequestTimeoutSecs int `toml:"request_timeout_secs"`
}

// UIConfig contains presentation settings.
type UIConfig struct {
	// Theme selects the color theme: "dark" or "light".
	Theme string `toml:"theme"`
}

// StateConfig controls where the client keeps local state.
type StateConfig struct {
	// Dir is the directory for local state files (session cookies, key file).
	// Empty means the config directory.
	Dir string `toml:"dir"`
}

// Default configuration values.
const (
	DefaultBaseURL            = "https://api.forkful.app"
	DefaultRequestTimeoutSecs = 30
	DefaultTheme              = "dark"
)

// Default returns a Config populated with built-in defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			BaseURL:            DefaultBaseURL,
			RequestTimeoutSecs: DefaultRequestTimeoutSecs,
		},
		UI: UIConfig{
			Theme: DefaultTheme,
		},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns the forkful configuration directory (~/.forkful).
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".forkful"), nil
}

// ConfigPath returns the path of the TOML configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// StateDir returns the directory for local state files, honoring the
// state.dir override when set.
func (c *Config) StateDir() (string, error) {
	if c.State.Dir != "" {
		return c.State.Dir, nil
	}
	return ConfigDir()
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file, applies environment overrides and
// validates the result. A missing config file is not an error; defaults
// are used.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err == nil {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := LoadTOML(cfg, path); err != nil {
				return nil, fmt.Errorf("failed to load config: %w", err)
			}
		}
	}

	cfg.ApplyEnvOverrides()
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadTOML decodes a TOML config file into cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides applies FORKFUL_* environment variables on top of the
// loaded configuration. Environment always wins over the file.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("FORKFUL_SERVER_URL"); v != "" {
		c.Server.BaseURL = v
	}
	if v := os.Getenv("FORKFUL_REQUEST_TIMEOUT_SECS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			c.Server.RequestTimeoutSecs = secs
		}
	}
	if v := os.Getenv("FORKFUL_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("FORKFUL_STATE_DIR"); v != "" {
		c.State.Dir = v
	}
}

// fillDefaults replaces zero values with defaults after loading.
func (c *Config) fillDefaults() {
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = DefaultBaseURL
	}
	if c.Server.RequestTimeoutSecs <= 0 {
		c.Server.RequestTimeoutSecs = DefaultRequestTimeoutSecs
	}
	if c.UI.Theme == "" {
		c.UI.Theme = DefaultTheme
	}
}

// =============================================================================
// VALIDATION
// =============================================================================

// Validate checks the configuration for values the client cannot work with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("server.base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.base_url: unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("server.base_url: missing host")
	}
	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		return fmt.Errorf("ui.theme: unknown theme %q", c.UI.Theme)
	}
	return nil
}

// RequestTimeout returns the configured per-request timeout as a Duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.Server.RequestTimeoutSecs) * time.Second
}

// =============================================================================
// SAVING
// =============================================================================

// Save writes the configuration back to the TOML config file.
func Save(cfg *Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}
