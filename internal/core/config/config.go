// Package config handles configuration loading and validation for a4s.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the backend address used when none is configured.
const DefaultBaseURL = "http://0.0.0.0:8000"

// DefaultTheme is the name of the default TUI theme.
const DefaultTheme = "tokyo-night"

// Config holds the application configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	TUI     TUIConfig     `yaml:"tui"`
	History HistoryConfig `yaml:"history"`
	DataDir string        `yaml:"-"` // set by caller, not from config file
}

// APIConfig configures the crew backend client.
type APIConfig struct {
	BaseURL            string            `yaml:"base_url"`
	Timeout            time.Duration     `yaml:"timeout"`
	Headers            map[string]string `yaml:"headers"`
	RefreshConcurrency int               `yaml:"refresh_concurrency"`
}

// TUIConfig holds interactive UI settings.
type TUIConfig struct {
	Theme    string        `yaml:"theme"`
	ToastTTL time.Duration `yaml:"toast_ttl"`
}

// HistoryConfig controls how many execution payloads are remembered.
type HistoryConfig struct {
	MaxPayloads int `yaml:"max_payloads"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:            DefaultBaseURL,
			Timeout:            30 * time.Second,
			Headers:            map[string]string{},
			RefreshConcurrency: 4,
		},
		TUI: TUIConfig{
			Theme:    DefaultTheme,
			ToastTTL: 5 * time.Second,
		},
		History: HistoryConfig{
			MaxPayloads: 20,
		},
	}
}

// Load reads configuration from the given path and sets the data directory.
// If configPath is empty or doesn't exist, returns defaults with the provided dataDir.
func Load(configPath, dataDir string) (*Config, error) {
	cfg, err := Read(configPath, dataDir)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation. Only parse failures are returned.
func Read(configPath, dataDir string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.DataDir = dataDir

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}

			// Re-set dataDir since Unmarshal may have cleared it
			cfg.DataDir = dataDir
		}
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaults.API.BaseURL
	}
	if c.API.Timeout == 0 {
		c.API.Timeout = defaults.API.Timeout
	}
	if c.API.Headers == nil {
		c.API.Headers = map[string]string{}
	}
	if c.API.RefreshConcurrency == 0 {
		c.API.RefreshConcurrency = defaults.API.RefreshConcurrency
	}
	if c.TUI.Theme == "" {
		c.TUI.Theme = defaults.TUI.Theme
	}
	if c.TUI.ToastTTL == 0 {
		c.TUI.ToastTTL = defaults.TUI.ToastTTL
	}
	if c.History.MaxPayloads == 0 {
		c.History.MaxPayloads = defaults.History.MaxPayloads
	}
}

// PayloadHistoryFile returns the path of the execution payload history file.
func (c *Config) PayloadHistoryFile() string {
	return filepath.Join(c.DataDir, "payloads.json")
}
