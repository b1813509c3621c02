// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		Format        string `yaml:"format"`
		Verbose       bool   `yaml:"verbose"`
		Debug         bool   `yaml:"debug"`
		NoColor       bool   `yaml:"no_color"`
		Recursive     bool   `yaml:"recursive"`
		PreviewLength int    `yaml:"preview_length"`
	} `yaml:"defaults"`

	// Extra label variants per canonical field, appended after the
	// built-in patterns. Keys must be canonical field names.
	Fields map[string]FieldConfig `yaml:"fields"`

	// Web server settings
	Web struct {
		Port string `yaml:"port"`
	} `yaml:"web"`

	// Registry persistence settings
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
}

// FieldConfig holds per-field configuration overrides
type FieldConfig struct {
	ExtraLabels []string `yaml:"extra_labels"`
}

// ExtraLabels collects the configured label extensions keyed by field name.
func (c *Config) ExtraLabels() map[string][]string {
	if len(c.Fields) == 0 {
		return nil
	}
	extra := make(map[string][]string, len(c.Fields))
	for name, fc := range c.Fields {
		if len(fc.ExtraLabels) > 0 {
			extra[name] = fc.ExtraLabels
		}
	}
	return extra
}

// LoadConfig loads configuration from the specified file path
func LoadConfig(configPath string) (*Config, error) {
	// Default configuration
	config := &Config{}

	// Set default values
	config.Defaults.Format = "text"
	config.Defaults.Verbose = false
	config.Defaults.Debug = false
	config.Defaults.NoColor = false
	config.Defaults.Recursive = false
	config.Defaults.PreviewLength = 1000
	config.Web.Port = "8080"

	// If no config file specified, return default config
	if configPath == "" {
		return config, nil
	}

	// Read config file
	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Parse YAML over the defaults
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	candidates := []string{
		"config.yaml",
		"property-scan.yaml",
		"property-scan.yml",
		".property-scan.yaml",
		".property-scan.yml",
	}
	for _, c := range candidates {
		if fileExists(c) {
			return c
		}
	}

	// Fall back to the user config directory
	if home, err := os.UserHomeDir(); err == nil {
		standard := filepath.Join(home, ".property-scan", "config.yaml")
		if fileExists(standard) {
			return standard
		}
	}
	return ""
}

// LoadConfigOrDefault loads the config file, falling back to defaults on
// any error so the scanner is always runnable.
func LoadConfigOrDefault(configFile string) *Config {
	configPath := configFile
	if configPath == "" {
		configPath = FindConfigFile()
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(os.Stderr, "Using default configuration\n")
		cfg, _ = LoadConfig("")
	}
	return cfg
}

// ValidateConfig performs sanity checks on loaded configuration values
func ValidateConfig(config *Config) error {
	switch config.Defaults.Format {
	case "", "text", "json", "csv":
	default:
		return fmt.Errorf("unsupported output format %q", config.Defaults.Format)
	}
	if config.Defaults.PreviewLength < 0 {
		return fmt.Errorf("preview_length must not be negative")
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
