package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Zero(t, cfg.MaxEntries)
	assert.Zero(t, cfg.MaxListeners)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PROPCTL_LOG_LEVEL", "debug")
	t.Setenv("PROPCTL_LOG_FORMAT", "json")
	t.Setenv("PROPCTL_MAX_ENTRIES", "10")
	t.Setenv("PROPCTL_MAX_LISTENERS", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Config{LogLevel: "debug", LogFormat: "json", MaxEntries: 10, MaxListeners: 3}, cfg)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"unparsable int", "PROPCTL_MAX_ENTRIES", "many", "parse env:"},
		{"negative cap", "PROPCTL_MAX_LISTENERS", "-1", "must not be negative"},
		{"bad level", "PROPCTL_LOG_LEVEL", "loud", "log level"},
		{"bad format", "PROPCTL_LOG_FORMAT", "xml", "want console or json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			cfg := Config{LogLevel: "info", LogFormat: format}
			logger, err := cfg.NewLogger()
			require.NoError(t, err)

			assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
			assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
		})
	}

	_, err := Config{LogLevel: "nope", LogFormat: "console"}.NewLogger()
	assert.Error(t, err)
}
