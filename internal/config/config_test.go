package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue int
		expected     int
	}{
		{
			name:         "env not set, return default",
			envValue:     "",
			defaultValue: 4,
			expected:     4,
		},
		{
			name:         "env set to 2, return 2",
			envValue:     "2",
			defaultValue: 4,
			expected:     2,
		},
		{
			name:         "env set to invalid value, return default",
			envValue:     "invalid",
			defaultValue: 4,
			expected:     4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := "TEST_INT_VALUE"
			if tt.envValue != "" {
				os.Setenv(key, tt.envValue)
				defer os.Unsetenv(key)
			} else {
				os.Unsetenv(key)
			}

			assert.Equal(t, tt.expected, getEnvInt(key, tt.defaultValue))
		})
	}
}

func TestGetEnvDuration(t *testing.T) {
	key := "TEST_DURATION_VALUE"

	os.Unsetenv(key)
	assert.Equal(t, time.Minute, getEnvDuration(key, time.Minute))

	os.Setenv(key, "30s")
	defer os.Unsetenv(key)
	assert.Equal(t, 30*time.Second, getEnvDuration(key, time.Minute))
}

func TestLoadFromEnvDefaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFromEnv(dir, filepath.Join(dir, ".env"))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.Analyzer.TabWidth)
	assert.Equal(t, 0, cfg.Analyzer.IndentUnit)
	assert.Equal(t, filepath.Join(dir, "indentwise.db"), cfg.Database.Path)
	assert.Equal(t, "WAL", cfg.Database.JournalMode)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, dir, cfg.ConfigDir())
}

func TestValidate(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFromEnv(dir, filepath.Join(dir, ".env"))
	require.NoError(t, err)

	cfg.Analyzer.TabWidth = 0
	assert.Error(t, cfg.Validate())

	cfg.Analyzer.TabWidth = 4
	cfg.Logging.Level = "loud"
	assert.Error(t, cfg.Validate())
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLogLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLogLevel("unknown"))
}
