// Package config handles loading and parsing the application's configuration.
package config

import (
	"github.com/ASHISH26940/txkv/internal/logging"
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel       string `toml:"log_level"`
	Echo           bool   `toml:"echo"`            // Write each input line before its result
	Prompt         string `toml:"prompt"`          // Prefix of result lines
	TranscriptPath string `toml:"transcript_path"` // Append session output here when set
	MetricsPath    string `toml:"metrics_path"`    // Write command counters here on exit when set
}

// New returns a new Config with default values.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Echo:     true,
		Prompt:   "> ",
	}
}

// Load reads a configuration file from the given path and populates the Config struct.
func (c *Config) Load(path string) error {
	if _, err := toml.DecodeFile(path, c); err != nil {
		return errors.Wrapf(err, "load config %s", path)
	}
	return c.Validate()
}

// Validate checks that the configured values are usable.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "log_level")
	}
	return nil
}
