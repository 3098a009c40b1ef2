package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	API      APIConfig      `mapstructure:"api" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// Storage drivers understood by the server.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=mongo postgres memory"`
	URL    string `mapstructure:"url" validate:"required,url"`
	// Name is the MongoDB database holding the tasks collection.
	Name           string        `mapstructure:"name" validate:"required"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout" validate:"gt=0"`
	// AutoMigrate applies pending PostgreSQL migrations on startup.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// APIConfig contains settings for the HTTP API surface.
type APIConfig struct {
	// StrictNotFound makes update and delete on a missing task answer 404
	// instead of 200 with a null body or confirmation message.
	StrictNotFound     bool     `mapstructure:"strict_not_found"`
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins" validate:"required,min=1"`
}
