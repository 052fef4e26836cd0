// Package config provides configuration management for wikitext.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Output formats the render command understands.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatEvents   = "events"
)

// Config holds the wikitext configuration.
type Config struct {
	Language string `yaml:"language,omitempty"`
	Format   string `yaml:"format,omitempty"`
	LinkBase string `yaml:"link_base,omitempty"`
	Style    string `yaml:"style,omitempty"`
}

// Validate checks that all set fields carry usable values.
func (c *Config) Validate() error {
	switch c.Format {
	case "", FormatHTML, FormatMarkdown, FormatEvents:
	default:
		return fmt.Errorf("format must be %s, %s or %s",
			FormatHTML, FormatMarkdown, FormatEvents)
	}
	return nil
}

// NormalizeLinkBase ensures a set link base ends with a single slash so
// link targets can be appended directly.
func (c *Config) NormalizeLinkBase() {
	if c.LinkBase == "" {
		return
	}
	c.LinkBase = strings.TrimRight(c.LinkBase, "/") + "/"
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Precedence: WIKITEXT_* → WIKI_* → existing config value
func (c *Config) LoadFromEnv() {
	if lang := getEnvWithFallback("WIKITEXT_LANGUAGE", "WIKI_LANGUAGE"); lang != "" {
		c.Language = lang
	}
	if format := getEnvWithFallback("WIKITEXT_FORMAT", "WIKI_FORMAT"); format != "" {
		c.Format = format
	}
	if base := getEnvWithFallback("WIKITEXT_LINK_BASE", "WIKI_LINK_BASE"); base != "" {
		c.LinkBase = base
	}
	if style := os.Getenv("WIKITEXT_STYLE"); style != "" {
		c.Style = style
	}
}

// getEnvWithFallback returns the value of the primary env var, or the fallback if primary is empty.
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "wikitext", "config.yml")
	}

	// Fall back to ~/.config/wikitext/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".wikitext", "config.yml")
	}

	return filepath.Join(home, ".config", "wikitext", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		// If file doesn't exist, start with defaults
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}

// ApplyDefaults fills unset fields with their defaults.
func (c *Config) ApplyDefaults() {
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Format == "" {
		c.Format = FormatHTML
	}
	if c.Style == "" {
		c.Style = "friendly"
	}
}
