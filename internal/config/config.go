// Package config handles reading and writing .eareview/config.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .eareview/config.yaml.
type Config struct {
	Version int           `yaml:"version"`
	Server  ServerConfig  `yaml:"server"`
	History HistoryConfig `yaml:"history"`
	Display DisplayConfig `yaml:"display"`
}

// ServerConfig points the client at the review backend.
type ServerConfig struct {
	BaseURL        string `yaml:"base_url"`
	RequestTimeout int    `yaml:"request_timeout"` // seconds, non-streaming calls only
}

// HistoryConfig controls the session browser.
type HistoryConfig struct {
	PageSize    int `yaml:"page_size"`
	MonthsShown int `yaml:"months_shown"`
}

// DisplayConfig holds presentation preferences.
type DisplayConfig struct {
	Color bool `yaml:"color"`
}

const configDir = ".eareview"
const configFile = "config.yaml"

// DefaultDir returns the config directory under the user's home, falling
// back to the current directory when the home cannot be determined.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// ReadConfig reads .eareview/config.yaml from the given base directory.
// dir is the parent of .eareview/ (normally the user's home).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .eareview/config.yaml in the given base directory.
// Creates the .eareview/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Load reads the config from dir, falling back to defaults when no file
// exists yet. A malformed file is still an error.
func Load(dir string) (*Config, error) {
	cfg, err := ReadConfig(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

// applyDefaults fills zero values left by older config files.
func applyDefaults(cfg *Config) {
	def := DefaultConfig()
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = def.Server.BaseURL
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = def.Server.RequestTimeout
	}
	if cfg.History.PageSize == 0 {
		cfg.History.PageSize = def.History.PageSize
	}
	if cfg.History.MonthsShown == 0 {
		cfg.History.MonthsShown = def.History.MonthsShown
	}
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Server: ServerConfig{
			BaseURL:        "http://localhost:8000",
			RequestTimeout: 30,
		},
		History: HistoryConfig{
			PageSize:    10,
			MonthsShown: 12,
		},
		Display: DisplayConfig{
			Color: true,
		},
	}
}
