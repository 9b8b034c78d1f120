package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server         ServerConfig         `mapstructure:"server" validate:"required"`
	Database       DatabaseConfig       `mapstructure:"database" validate:"required"`
	Auth           AuthConfig           `mapstructure:"auth" validate:"required"`
	Analysis       AnalysisConfig       `mapstructure:"analysis" validate:"required"`
	Recommendation RecommendationConfig `mapstructure:"recommendation" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url" validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0,ltefield=MaxOpenConns"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0,lt=44640"`
}

// AnalysisConfig bounds the time range handed to the pattern engine.
type AnalysisConfig struct {
	DefaultRangeDays int    `mapstructure:"default_range_days" validate:"required,gt=0,ltefield=MaxRangeDays"`
	MaxRangeDays     int    `mapstructure:"max_range_days" validate:"required,gt=0"`
	DefaultTimezone  string `mapstructure:"default_timezone" validate:"required,timezone"`
}

// RecommendationConfig holds the recommendation list limits.
type RecommendationConfig struct {
	DefaultLimit int `mapstructure:"default_limit" validate:"required,gt=0,ltefield=MaxLimit"`
	MaxLimit     int `mapstructure:"max_limit" validate:"required,gt=0,lte=100"`
}
