package gamestate

import (
	"time"

	"github.com/rs/zerolog"
)

// SessionConfig holds session-level configuration
type SessionConfig struct {
	// History persistence
	HistoryTimeout time.Duration
	HistoryTTL     time.Duration // Zero disables expiry

	// Entries waiting for the writer; a full queue drops new entries
	HistoryBuffer int
	// How long Close waits for queued entries; zero cancels them at once
	HistoryFlushTimeout time.Duration

	// Retries for a failed append
	HistoryRetries    int
	HistoryRetryDelay time.Duration
	HistoryBackoff    BackoffStrategy
}

// DefaultSessionConfig provides session defaults
var DefaultSessionConfig = SessionConfig{
	HistoryTimeout: 2 * time.Second,
	HistoryTTL:     0,

	HistoryBuffer:       256,
	HistoryFlushTimeout: 5 * time.Second,

	HistoryRetries:    2,
	HistoryRetryDelay: 50 * time.Millisecond,
	HistoryBackoff:    BackoffExponential,
}

// StoreOption allows functional configuration of stores
type StoreOption func(*storeOptions)

type storeOptions struct {
	logger zerolog.Logger
}

func newStoreOptions(name string, opts []StoreOption) storeOptions {
	o := storeOptions{logger: DefaultLogger()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = StoreLogger(o.logger, name)
	return o
}

// WithLogger sets the logger a store writes diagnostics to
func WithLogger(logger zerolog.Logger) StoreOption {
	return func(o *storeOptions) {
		o.logger = logger
	}
}
