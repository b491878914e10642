// Package config holds the interpreter settings that can come from a YAML
// file and be overridden on the command line.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("config: invalid value")

// Config of one interpreter process.
type Config struct {
	Gas           int    `yaml:"gas"`
	LogLevel      string `yaml:"log-level"`
	Diagnostics   string `yaml:"diagnostics"` // stderr | off
	Banner        bool   `yaml:"banner"`
	Prompt        string `yaml:"prompt"`
	Color         string `yaml:"color"` // auto | always | never
	MaxSourceSize int    `yaml:"max-source-size"`
	HistoryFile   string `yaml:"history-file,omitempty"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Gas:           0,
		LogLevel:      "warning",
		Diagnostics:   "stderr",
		Banner:        true,
		Prompt:        "? ",
		Color:         "auto",
		MaxSourceSize: 1 << 20,
	}
}

// ParseFile reads a YAML file on top of the current settings.
// An empty file name is a no-op.
func (c *Config) ParseFile(fileName string) error {
	if len(fileName) == 0 {
		return nil // OK
	}

	data, err := os.ReadFile(fileName)
	if err != nil {
		return fmt.Errorf("failed to read configuration: %w", err)
	}
	return c.Parse(data)
}

// Parse decodes YAML data on top of the current settings.
func (c *Config) Parse(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse configuration: %w", err)
	}
	return c.Validate()
}

// Validate checks enumerated and numeric settings.
func (c *Config) Validate() error {
	if c.Gas < 0 {
		return fmt.Errorf("%w: gas %d", ErrInvalid, c.Gas)
	}
	if c.MaxSourceSize < 0 {
		return fmt.Errorf("%w: max-source-size %d", ErrInvalid, c.MaxSourceSize)
	}
	switch strings.ToLower(c.Diagnostics) {
	case "stderr", "off":
	default:
		return fmt.Errorf("%w: diagnostics %q", ErrInvalid, c.Diagnostics)
	}
	switch strings.ToLower(c.Color) {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: color %q", ErrInvalid, c.Color)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed diagnostics log level.
func (c *Config) Level() (logrus.Level, error) {
	ll, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return ll, fmt.Errorf("%w: failed to parse level: %s", ErrInvalid, err)
	}
	return ll, nil
}

// DiagnosticsEnabled reports whether diagnostics are written at all.
func (c *Config) DiagnosticsEnabled() bool {
	return strings.ToLower(c.Diagnostics) != "off"
}

// Dump renders the effective settings as YAML.
func (c *Config) Dump() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
