// Package config loads application settings from a config file and
// DAYBOOK_* environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/amarling/daybook/internal/constants"
)

// Config holds the application configuration.
type Config struct {
	// Backend is "sqlite" or "postgres".
	Backend string `mapstructure:"backend"`
	// DatabasePath is the sqlite file location.
	DatabasePath string `mapstructure:"database_path"`
	// ConnectionString is the postgres DSN/URL; credentials must come
	// from the environment or .pgpass, never the string itself.
	ConnectionString string `mapstructure:"connection_string"`
	// Timezone resolves "today" for date-less commands.
	Timezone string `mapstructure:"timezone"`
	Debug    bool   `mapstructure:"debug"`
}

// ConfigDir returns the daybook config directory, creating nothing.
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", constants.AppName), nil
}

// Load reads the config file (if present) and environment overrides,
// falling back to defaults for anything unset.
func Load() (Config, error) {
	dir, err := ConfigDir()
	if err != nil {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix(strings.ToUpper(constants.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("backend", "sqlite")
	v.SetDefault("database_path", filepath.Join(dir, constants.AppName+".db"))
	v.SetDefault("connection_string", "")
	v.SetDefault("timezone", "Local")
	v.SetDefault("debug", false)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Backend != "sqlite" && cfg.Backend != "postgres" {
		return Config{}, fmt.Errorf("invalid backend %q: must be sqlite or postgres", cfg.Backend)
	}
	if cfg.Backend == "postgres" && cfg.ConnectionString == "" {
		return Config{}, fmt.Errorf("postgres backend requires a connection string")
	}

	return cfg, nil
}
