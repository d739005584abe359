package utils

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the CLI commands
type Config struct {
	Name            string `yaml:"name"`              // Circuit name used in logs and reports
	LogLevel        string `yaml:"log_level"`         // error, warning, info, debug or trace
	LogFile         string `yaml:"log_file"`          // Empty means stderr
	MaxDepth        int    `yaml:"max_depth"`         // Recursion limit for a single evaluation
	TruthTableLimit int    `yaml:"truth_table_limit"` // Maximum number of inputs enumerated by table
	MetricsAddr     string `yaml:"metrics_addr"`      // Listen address for /metrics, empty disables
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() Config {
	return Config{
		Name:            "circuit",
		LogLevel:        "info",
		MaxDepth:        4096,
		TruthTableLimit: 16,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig
func LoadConfig(filename string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", filename, err)
	}

	return cfg, nil
}

// Validate checks that every field holds a usable value
func (c Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxDepth <= 0 {
		return errors.New("max_depth must be positive")
	}
	if c.TruthTableLimit <= 0 || c.TruthTableLimit > 24 {
		return errors.New("truth_table_limit must be between 1 and 24")
	}
	return nil
}

// Level returns the parsed log level, falling back to InfoLevel
func (c Config) Level() LogLevel {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return InfoLevel
	}
	return level
}
