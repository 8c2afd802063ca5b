// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	InputRoot  string `json:"input_root,omitempty"`  // Root directory holding per-company input folders
	OutputRoot string `json:"output_root,omitempty"` // Directory where generated decks are written
	Template   string `json:"template,omitempty"`    // Path to the slide template (.pptx)

	// Behavior
	APIKey    string `json:"api_key,omitempty"`    // Gemini API key
	MaxImages int    `json:"max_images,omitempty"` // Maximum images collected per search query
	Verbose   bool   `json:"verbose,omitempty"`    // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.MaxImages < 0 {
		return fmt.Errorf("config error: 'max_images' must be non-negative")
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.InputRoot == "" {
		result.InputRoot = defaults.InputRoot
	}
	if result.OutputRoot == "" {
		result.OutputRoot = defaults.OutputRoot
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.MaxImages == 0 {
		result.MaxImages = defaults.MaxImages
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
