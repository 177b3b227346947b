// Package config provides configuration management for c4model.
//
// Config file locations (priority order):
//  1. $C4MODEL_CONFIG
//  2. ./c4model.yaml
//  3. $XDG_CONFIG_HOME/c4model/config.yaml
//  4. ~/.config/c4model/config.yaml
//  5. /etc/c4model/config.yaml
//
// A missing config file is not an error; defaults are used instead.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultDatabasePath = "./c4model.db"
	defaultLogLevel     = "info"
	defaultDebounce     = 500 * time.Millisecond
)

// Load finds and loads the config file, or returns defaults if none found
func Load() (*Config, string, error) {
	path := FindConfigPath()

	if path == "" {
		return DefaultConfig(), "", nil
	}

	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, errors.Wrap(err, "read config")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, errors.Wrap(err, "parse config")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, path, err
	}

	return &cfg, path, nil
}

// Save writes config to the specified path
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return errors.Wrap(err, "create config dir")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation
func DefaultConfig() *Config {
	return &Config{
		Version:  1,
		Database: DatabaseConfig{Path: defaultDatabasePath},
		Logging:  LoggingConfig{Level: defaultLogLevel},
		Watch:    WatchConfig{Debounce: Duration(defaultDebounce)},
	}
}

// applyDefaults fills in missing values with defaults
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Path == "" {
		c.Database.Path = defaultDatabasePath
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = Duration(defaultDebounce)
	}
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured log level
func (c *Config) LogLevel() (zapcore.Level, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(c.Logging.Level))
	if err != nil {
		return zapcore.InfoLevel, errors.Wrapf(err, "logging.level %q", c.Logging.Level)
	}
	return level, nil
}

// Summary returns a human-readable config summary
func (c *Config) Summary() string {
	summary := fmt.Sprintf("Database: %s\n", c.Database.Path)
	summary += fmt.Sprintf("Logging: %s (development: %v)\n", c.Logging.Level, c.Logging.Development)
	summary += fmt.Sprintf("Watch debounce: %s\n", c.Watch.Debounce.Duration())
	summary += fmt.Sprintf("Definitions (%d):", len(c.Definitions))
	for _, d := range c.Definitions {
		summary += fmt.Sprintf(" %s", d)
	}
	return summary
}
