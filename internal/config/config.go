// Package config loads propctl settings from the environment and builds the
// process logger from them.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds propctl settings. Command-line flags override the values
// loaded from the environment.
type Config struct {
	LogLevel     string `env:"PROPCTL_LOG_LEVEL" envDefault:"warn"`
	LogFormat    string `env:"PROPCTL_LOG_FORMAT" envDefault:"console"`
	MaxEntries   int    `env:"PROPCTL_MAX_ENTRIES" envDefault:"0"`
	MaxListeners int    `env:"PROPCTL_MAX_LISTENERS" envDefault:"0"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load reads Config from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks value ranges and enumerations.
func (c Config) Validate() error {
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "console", "json":
	default:
		return fmt.Errorf("log format %q: want console or json", c.LogFormat)
	}
	if c.MaxEntries < 0 {
		return fmt.Errorf("max entries %d: must not be negative", c.MaxEntries)
	}
	if c.MaxListeners < 0 {
		return fmt.Errorf("max listeners %d: must not be negative", c.MaxListeners)
	}
	return nil
}

// NewLogger builds a zap logger writing to stderr at the configured level
// and format.
func (c Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}

	var zc zap.Config
	if strings.EqualFold(c.LogFormat, "json") {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.DisableStacktrace = level > zapcore.DebugLevel

	return zc.Build()
}
