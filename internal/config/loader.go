package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/thruflo/tasklist/internal/logging"
)

// Default values for Config.
const (
	DefaultBackend  = BackendFile
	DefaultWidth    = 60
	DefaultLogLevel = "warn"
	DefaultDirName  = ".tasklist"

	// DirEnv overrides the default data directory.
	DirEnv = "TASKLIST_DIR"

	configFileName = "config.yaml"
	fileStoreName  = "store.json"
	sqliteName     = "tasklist.db"
	minWidth       = 20
)

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{Backend: DefaultBackend},
		UI: UI{
			Width:    DefaultWidth,
			Color:    true,
			ShowDate: false,
		},
		Log: Log{Level: DefaultLogLevel},
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// IsValidationError checks if an error is a ValidationError.
func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// DefaultDir returns the data directory: $TASKLIST_DIR if set,
// otherwise ~/.tasklist.
func DefaultDir() (string, error) {
	if dir := os.Getenv(DirEnv); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// LoadConfig reads and parses config.yaml from the given data directory.
// If the file doesn't exist, returns default config.
// Applies defaults for any missing fields.
func LoadConfig(dir string) (*Config, error) {
	configPath := filepath.Join(dir, configFileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SaveConfig writes cfg to config.yaml in the data directory.
func SaveConfig(dir string, cfg *Config) error {
	if err := ValidateConfig(cfg); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dir, configFileName), data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ValidateConfig checks that all config values are valid.
func ValidateConfig(cfg *Config) error {
	switch cfg.Storage.Backend {
	case BackendFile, BackendSQLite, BackendMemory:
	default:
		return ValidationError{
			Field:   "storage.backend",
			Message: fmt.Sprintf("must be one of %s, %s, %s", BackendFile, BackendSQLite, BackendMemory),
		}
	}
	if cfg.UI.Width < minWidth {
		return ValidationError{Field: "ui.width", Message: fmt.Sprintf("must be at least %d", minWidth)}
	}
	if _, err := logging.ParseLevel(cfg.Log.Level); err != nil {
		return ValidationError{Field: "log.level", Message: "must be debug, info, warn or error"}
	}
	return nil
}

// StorePath resolves the storage file for the configured backend.
// The memory backend has no file and returns "".
func (c *Config) StorePath(dir string) string {
	if c.Storage.Backend == BackendMemory {
		return ""
	}
	path := c.Storage.Path
	if path == "" {
		path = fileStoreName
		if c.Storage.Backend == BackendSQLite {
			path = sqliteName
		}
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
