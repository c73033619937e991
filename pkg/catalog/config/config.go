package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
	Mode string // gin mode: debug, release, test
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path string // SQLite database file path
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
}

// Load reads configuration from CATALOG_* environment variables,
// falling back to defaults suitable for local development.
// e.g. CATALOG_SERVER_PORT, CATALOG_DATABASE_PATH, CATALOG_LOG_LEVEL.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("CATALOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.path", "catalog.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	return &Config{
		Server: ServerConfig{
			Port: v.GetString("server.port"),
			Mode: v.GetString("server.mode"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}
}
