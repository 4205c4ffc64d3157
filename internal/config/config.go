// Package config loads scoreboard settings from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"github.com/sicko7947/gamestate"
)

// History backends
const (
	BackendNone     = "none"
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
)

// Config holds scoreboard settings.
type Config struct {
	LogLevel string `env:"SCOREBOARD_LOG_LEVEL" envDefault:"info"`
	LogFile  string `env:"SCOREBOARD_LOG_FILE"`

	HistoryBackend string        `env:"SCOREBOARD_HISTORY_BACKEND" envDefault:"none"`
	DynamoDBTable  string        `env:"SCOREBOARD_DYNAMODB_TABLE" envDefault:"scoreboard-history"`
	HistoryTTL     time.Duration `env:"SCOREBOARD_HISTORY_TTL" envDefault:"0s"`
	HistoryTimeout time.Duration `env:"SCOREBOARD_HISTORY_TIMEOUT" envDefault:"2s"`

	HistoryBuffer       int           `env:"SCOREBOARD_HISTORY_BUFFER" envDefault:"256"`
	HistoryFlushTimeout time.Duration `env:"SCOREBOARD_HISTORY_FLUSH_TIMEOUT" envDefault:"5s"`

	HistoryRetries    int           `env:"SCOREBOARD_HISTORY_RETRIES" envDefault:"2"`
	HistoryRetryDelay time.Duration `env:"SCOREBOARD_HISTORY_RETRY_DELAY" envDefault:"50ms"`
	HistoryBackoff    string        `env:"SCOREBOARD_HISTORY_BACKOFF" envDefault:"exponential"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load parses and validates the scoreboard configuration.
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

// Validate checks values the env parser cannot.
func (c Config) Validate() error {
	switch c.HistoryBackend {
	case BackendNone, BackendMemory:
	case BackendDynamoDB:
		if c.DynamoDBTable == "" {
			return gamestate.NewStoreError(gamestate.ErrCodeInvalidConfig,
				"SCOREBOARD_DYNAMODB_TABLE is required for the dynamodb backend")
		}
	default:
		return gamestate.NewStoreError(gamestate.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown history backend %q", c.HistoryBackend)).
			WithDetails(map[string]any{"backend": c.HistoryBackend})
	}

	if c.HistoryTTL < 0 || c.HistoryTimeout < 0 || c.HistoryRetryDelay < 0 || c.HistoryFlushTimeout < 0 {
		return gamestate.NewStoreError(gamestate.ErrCodeInvalidConfig, "history durations must not be negative")
	}
	if c.HistoryBuffer < 1 {
		return gamestate.NewStoreError(gamestate.ErrCodeInvalidConfig, "SCOREBOARD_HISTORY_BUFFER must be at least 1")
	}
	if c.HistoryRetries < 0 {
		return gamestate.NewStoreError(gamestate.ErrCodeInvalidConfig, "SCOREBOARD_HISTORY_RETRIES must not be negative")
	}
	if _, err := gamestate.ParseBackoffStrategy(c.HistoryBackoff); err != nil {
		return err
	}

	if _, err := c.Level(); err != nil {
		return gamestate.NewStoreError(gamestate.ErrCodeInvalidConfig, err.Error())
	}

	return nil
}

// Level returns the parsed log level.
func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log level: %w", err)
	}
	return level, nil
}

// SessionConfig maps the history settings onto a session configuration.
func (c Config) SessionConfig() gamestate.SessionConfig {
	sc := gamestate.DefaultSessionConfig
	sc.HistoryTTL = c.HistoryTTL
	sc.HistoryTimeout = c.HistoryTimeout
	sc.HistoryBuffer = c.HistoryBuffer
	sc.HistoryFlushTimeout = c.HistoryFlushTimeout
	sc.HistoryRetries = c.HistoryRetries
	sc.HistoryRetryDelay = c.HistoryRetryDelay
	// Validate has already rejected unknown strategies
	if backoff, err := gamestate.ParseBackoffStrategy(c.HistoryBackoff); err == nil {
		sc.HistoryBackoff = backoff
	}
	return sc
}
