// Package config loads the settings of the ndf command from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given; a missing file is not an error
const DefaultPath = ".ndf.yaml"

// Config holds all ndf settings
type Config struct {
	Format FormatConfig `yaml:"format"`
	Log    LogConfig    `yaml:"log"`
	// Workers bounds how many files are processed at once; 0 means one per CPU
	Workers int `yaml:"workers"`
}

// FormatConfig controls printed output
type FormatConfig struct {
	Indent    string `yaml:"indent"`
	LineWidth int    `yaml:"line_width"`
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	// Level is a zap level name: debug, info, warn or error
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Format: FormatConfig{
			Indent:    "    ",
			LineWidth: 100,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// Load reads the YAML file at path over the defaults. A missing file yields the defaults. NDF_LOG_LEVEL, when set,
// overrides the log level.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if level := os.Getenv("NDF_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to path as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// Validate rejects settings that cannot be honoured.
func (c *Config) Validate() error {
	if c.Format.LineWidth < 0 {
		return fmt.Errorf("format.line_width must not be negative, got %d", c.Format.LineWidth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the configured log level; an empty level means warn.
func (c *Config) Level() (zapcore.Level, error) {
	if c.Log.Level == "" {
		return zapcore.WarnLevel, nil
	}
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return zapcore.WarnLevel, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}
