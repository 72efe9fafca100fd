package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// LoadFromEnv loads configuration from environment variables.
// Parameters:
// - configDir: Directory containing config files (or empty for default)
// - configFilePath: Path to .env file (or empty for default)
func LoadFromEnv(configDir string, configFilePath string) (*Config, error) {
	cfg := New()

	// If configDir is empty, use the default
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".indentwise")

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	cfg.configDir = configDir

	// Default database and log paths live in the config directory
	cfg.Database.Path = filepath.Join(configDir, "indentwise.db")
	defaultLogPath := filepath.Join(configDir, "indentwise.log")

	if configFilePath == "" {
		configFilePath = filepath.Join(configDir, ".env")
	}

	// ENV_FILE_PATH overrides where the .env file is loaded from
	if envFilePath := getEnvString("ENV_FILE_PATH", ""); envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			return nil, fmt.Errorf("failed to load env file from %s: %w", envFilePath, err)
		}
	} else {
		// Try the config directory first, then the current directory
		if err := godotenv.Load(configFilePath); err != nil {
			_ = godotenv.Load() // Ignore errors if file doesn't exist
		}
	}

	cfg.Analyzer = AnalyzerConfig{
		TabWidth:    getEnvInt("INDENTWISE_TAB_WIDTH", 4),
		IndentUnit:  getEnvInt("INDENTWISE_INDENT_UNIT", 0),
		MaxFileSize: int64(getEnvInt("INDENTWISE_MAX_FILE_SIZE", 1<<20)),
	}

	cfg.Workspace = WorkspaceConfig{
		AutoCreate: getEnvBool("INDENTWISE_WORKSPACE_AUTO_CREATE", true),
	}

	cfg.Database = DatabaseConfig{
		Path:            getEnvString("INDENTWISE_DB_PATH", cfg.Database.Path),
		BusyTimeout:     getEnvInt("INDENTWISE_DB_BUSY_TIMEOUT", 5000),
		JournalMode:     getEnvString("INDENTWISE_DB_JOURNAL_MODE", "WAL"),
		SynchronousMode: getEnvString("INDENTWISE_DB_SYNCHRONOUS_MODE", "NORMAL"),
		CacheSize:       getEnvInt("INDENTWISE_DB_CACHE_SIZE", -64000), // ~64MB
		ForeignKeys:     getEnvBool("INDENTWISE_DB_FOREIGN_KEYS", true),
		ConnMaxLife:     getEnvDuration("INDENTWISE_DB_CONN_MAX_LIFE", 5*time.Minute),
		QueryTimeout:    getEnvDuration("INDENTWISE_DB_QUERY_TIMEOUT", 30*time.Second),
		OpenRetries:     getEnvInt("INDENTWISE_DB_OPEN_RETRIES", 3),
	}

	cfg.Logging = LoggingConfig{
		Level:      getEnvString("INDENTWISE_LOG_LEVEL", "info"),
		Format:     getEnvString("INDENTWISE_LOG_FORMAT", "text"),
		Output:     getEnvString("INDENTWISE_LOG_OUTPUT", defaultLogPath),
		AddSource:  getEnvBool("INDENTWISE_LOG_ADD_SOURCE", false),
		TimeFormat: getEnvString("INDENTWISE_LOG_TIME_FORMAT", time.RFC3339),
	}

	return cfg, cfg.Validate()
}

// getEnvString retrieves a string from the environment or returns the default
func getEnvString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer from the environment or returns the default
func getEnvInt(key string, defaultValue int) int {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvBool retrieves a boolean from the environment or returns the default
func getEnvBool(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvDuration retrieves a duration from the environment or returns the default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
