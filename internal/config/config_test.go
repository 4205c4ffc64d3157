package config

import (
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sicko7947/gamestate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, BackendNone, cfg.HistoryBackend)
	assert.Equal(t, "scoreboard-history", cfg.DynamoDBTable)
	assert.Equal(t, time.Duration(0), cfg.HistoryTTL)
	assert.Equal(t, 2*time.Second, cfg.HistoryTimeout)
	assert.Equal(t, 256, cfg.HistoryBuffer)
	assert.Equal(t, 5*time.Second, cfg.HistoryFlushTimeout)
	assert.Equal(t, 2, cfg.HistoryRetries)
	assert.Equal(t, 50*time.Millisecond, cfg.HistoryRetryDelay)
	assert.Equal(t, gamestate.BackoffExponential, cfg.SessionConfig().HistoryBackoff)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SCOREBOARD_LOG_LEVEL", "debug")
	t.Setenv("SCOREBOARD_HISTORY_BACKEND", "dynamodb")
	t.Setenv("SCOREBOARD_DYNAMODB_TABLE", "history")
	t.Setenv("SCOREBOARD_HISTORY_TTL", "24h")
	t.Setenv("SCOREBOARD_HISTORY_TIMEOUT", "500ms")
	t.Setenv("SCOREBOARD_HISTORY_RETRIES", "5")
	t.Setenv("SCOREBOARD_HISTORY_BUFFER", "16")
	t.Setenv("SCOREBOARD_HISTORY_FLUSH_TIMEOUT", "1s")
	t.Setenv("SCOREBOARD_HISTORY_BACKOFF", "linear")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, BackendDynamoDB, cfg.HistoryBackend)
	assert.Equal(t, "history", cfg.DynamoDBTable)

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)

	sc := cfg.SessionConfig()
	assert.Equal(t, 24*time.Hour, sc.HistoryTTL)
	assert.Equal(t, 500*time.Millisecond, sc.HistoryTimeout)
	assert.Equal(t, 5, sc.HistoryRetries)
	assert.Equal(t, 16, sc.HistoryBuffer)
	assert.Equal(t, time.Second, sc.HistoryFlushTimeout)
	assert.Equal(t, gamestate.BackoffLinear, sc.HistoryBackoff)
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("SCOREBOARD_HISTORY_TTL", "forever")

	_, err := Load()
	require.Error(t, err)
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := Config{
		LogLevel:       "info",
		HistoryBackend: BackendMemory,
		DynamoDBTable:  "t",
		HistoryTimeout: time.Second,
		HistoryBackoff: "none",
		HistoryBuffer:  8,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"none backend", func(c *Config) { c.HistoryBackend = BackendNone }, false},
		{"unknown backend", func(c *Config) { c.HistoryBackend = "redis" }, true},
		{"dynamodb without table", func(c *Config) {
			c.HistoryBackend = BackendDynamoDB
			c.DynamoDBTable = ""
		}, true},
		{"negative ttl", func(c *Config) { c.HistoryTTL = -time.Second }, true},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"empty buffer", func(c *Config) { c.HistoryBuffer = 0 }, true},
		{"negative flush timeout", func(c *Config) { c.HistoryFlushTimeout = -time.Second }, true},
		{"negative retries", func(c *Config) { c.HistoryRetries = -1 }, true},
		{"negative retry delay", func(c *Config) { c.HistoryRetryDelay = -time.Millisecond }, true},
		{"unknown backoff", func(c *Config) { c.HistoryBackoff = "fibonacci" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, gamestate.IsInvalidConfig(err))
		})
	}
}
