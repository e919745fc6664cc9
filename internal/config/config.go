// Package config provides configuration management using Viper.
// It loads configuration from environment variables, .env files, and config files.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultServerPort                = 8080
	defaultServerHost                = "0.0.0.0"
	defaultReadTimeout               = 30 * time.Second
	defaultWriteTimeout              = time.Duration(0) // SSE responses stay open
	defaultDatabasePath              = "./data/branchpoint.db"
	defaultDatabaseConnectionTimeout = 5 * time.Second
	defaultDatabaseMigrationsPath    = "file://./migrations"
	defaultLogLevel                  = "info"
	defaultLogPretty                 = false
	defaultPlayerDuration            = 300.0
	defaultPlayerAutoPlay            = false
	defaultPlayerEditing             = false
	defaultPlayerTolerance           = 0.5
	defaultPlayerSkipDelta           = 10.0
	defaultPlayerDemo                = true
	defaultPlayerSource              = "https://storage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4"
	defaultEventBufferSize           = 64
	envPrefix                        = "BRANCHPOINT"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logging  LoggingConfig
	Player   PlayerConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	EventBufferSize int
}

// DatabaseConfig holds the video catalog database configuration
type DatabaseConfig struct {
	Path              string
	ConnectionTimeout time.Duration
	MigrationsPath    string
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Pretty bool
}

// PlayerConfig holds the construction options of the playback/editing session.
type PlayerConfig struct {
	// Source is the URL of the video loaded when the session starts
	Source string
	// Duration in seconds used until the media reports its own
	Duration float64
	AutoPlay bool
	// Editing gates every marker placement and drag operation
	Editing bool
	// Tolerance is the activation window half-width in seconds
	Tolerance float64
	// SkipDelta is the skip forward/backward step in seconds
	SkipDelta float64
	// Demo seeds the two branching demo markers at 5s
	Demo bool
}

// Load reads configuration from .env file, config files, environment variables, and defaults
func Load() (*Config, error) {
	// .env files are optional in production and CI where env vars are set directly
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/branchpoint")

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", defaultServerPort)
	v.SetDefault("server.host", defaultServerHost)
	v.SetDefault("server.readtimeout", defaultReadTimeout)
	v.SetDefault("server.writetimeout", defaultWriteTimeout)
	v.SetDefault("server.eventbuffersize", defaultEventBufferSize)

	v.SetDefault("database.path", defaultDatabasePath)
	v.SetDefault("database.connectiontimeout", defaultDatabaseConnectionTimeout)
	v.SetDefault("database.migrationspath", defaultDatabaseMigrationsPath)

	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.pretty", defaultLogPretty)

	v.SetDefault("player.source", defaultPlayerSource)
	v.SetDefault("player.duration", defaultPlayerDuration)
	v.SetDefault("player.autoplay", defaultPlayerAutoPlay)
	v.SetDefault("player.editing", defaultPlayerEditing)
	v.SetDefault("player.tolerance", defaultPlayerTolerance)
	v.SetDefault("player.skipdelta", defaultPlayerSkipDelta)
	v.SetDefault("player.demo", defaultPlayerDemo)
}

// Validate checks that configuration values are valid
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be between 1 and 65535)", c.Server.Port)
	}
	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("invalid read timeout: %v (must be > 0)", c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout < 0 {
		return fmt.Errorf("invalid write timeout: %v (must be >= 0)", c.Server.WriteTimeout)
	}
	if c.Server.EventBufferSize < 1 {
		return fmt.Errorf("invalid event buffer size: %d (must be >= 1)", c.Server.EventBufferSize)
	}
	if c.Database.ConnectionTimeout <= 0 {
		return fmt.Errorf("invalid database connection timeout: %v (must be > 0)", c.Database.ConnectionTimeout)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.Logging.Level, strings.Join(validLevels, ", "))
	}

	return c.Player.Validate()
}

// Validate checks the session construction options
func (p *PlayerConfig) Validate() error {
	if math.IsNaN(p.Duration) || p.Duration <= 0 {
		return fmt.Errorf("invalid player duration: %v (must be > 0)", p.Duration)
	}
	if math.IsNaN(p.Tolerance) || p.Tolerance < 0 {
		return fmt.Errorf("invalid activation tolerance: %v (must be >= 0)", p.Tolerance)
	}
	if math.IsNaN(p.SkipDelta) || p.SkipDelta <= 0 {
		return fmt.Errorf("invalid skip delta: %v (must be > 0)", p.SkipDelta)
	}
	return nil
}

// contains checks if a string slice contains a specific value
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
