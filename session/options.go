package session

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sicko7947/gamestate"
)

// Option configures a Session
type Option func(*Session)

// WithLogger sets the base logger; the session adds its ID to every line
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithConfig sets a custom session configuration
func WithConfig(config gamestate.SessionConfig) Option {
	return func(s *Session) {
		s.config = config
	}
}

// WithHistory records every store mutation to history
func WithHistory(history gamestate.HistoryStore) Option {
	return func(s *Session) {
		s.history = history
	}
}

// WithID overrides the generated session ID
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// WithContext sets the parent context for history writes.
// Cancelling it stops in-flight writes the same way Close does.
func WithContext(ctx context.Context) Option {
	return func(s *Session) {
		s.parent = ctx
	}
}
