// Package config loads the demo host's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LogConfig controls the logger handed to the access-log middleware.
type LogConfig struct {
	Format  string            `yaml:"format"`            // "json" or "text"
	Level   string            `yaml:"level"`             // debug, info, warn, error
	Fields  map[string]string `yaml:"fields,omitempty"`  // static fields bound to every record
	Exclude []string          `yaml:"exclude,omitempty"` // paths never access-logged
}

// Config is the top-level YAML configuration.
type Config struct {
	Addr string    `yaml:"addr"`
	Log  LogConfig `yaml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Addr: ":8080",
		Log: LogConfig{
			Format: "json",
			Level:  "info",
		},
	}
}

// Load reads and parses a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML bytes into a Config, filling in defaults for
// anything left unset.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("addr cannot be empty")
	}
	if cfg.Log.Format != "json" && cfg.Log.Format != "text" {
		return fmt.Errorf("log format must be json or text, got %q", cfg.Log.Format)
	}
	for i, p := range cfg.Log.Exclude {
		if p == "" {
			return fmt.Errorf("exclude %d: path cannot be empty", i)
		}
	}
	return nil
}
