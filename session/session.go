// Package session owns the stores for one application session.
//
// A Session is the composition root handed to whatever renders the UI. It
// creates one ScoreStore and one ModalStore, optionally records their
// mutations to a HistoryStore, and releases everything on Close.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sicko7947/gamestate"
)

// Session holds the per-session store instances
type Session struct {
	id        string
	startedAt time.Time

	score *gamestate.ScoreStore
	modal *gamestate.ModalStore

	history  gamestate.HistoryStore
	recorder *recorder

	logger zerolog.Logger
	config gamestate.SessionConfig

	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce sync.Once
}

// New creates a session with fresh stores.
// If no logger is provided, gamestate.DefaultLogger is used.
// If no config is provided, gamestate.DefaultSessionConfig is used.
func New(opts ...Option) *Session {
	s := &Session{
		id:        uuid.New().String(),
		startedAt: time.Now(),
		logger:    gamestate.DefaultLogger(),
		config:    gamestate.DefaultSessionConfig,
		parent:    context.Background(),
	}

	// Apply options
	for _, opt := range opts {
		opt(s)
	}

	s.ctx, s.cancel = context.WithCancel(s.parent)
	s.logger = gamestate.SessionLogger(s.logger, s.id)

	s.score = gamestate.NewScoreStore(gamestate.WithLogger(s.logger))
	s.modal = gamestate.NewModalStore(gamestate.WithLogger(s.logger))

	if s.history != nil {
		s.recorder = newRecorder(s.ctx, s.id, s.history, s.config, s.logger)
		s.recorder.attach(s.score, s.modal)
	}

	gamestate.LogSessionStarted(s.logger, s.history != nil)

	return s
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// StartedAt returns when the session was created
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// Score returns the session's score store
func (s *Session) Score() *gamestate.ScoreStore {
	return s.score
}

// Modal returns the session's modal store
func (s *Session) Modal() *gamestate.ModalStore {
	return s.modal
}

// Logger returns the session logger
func (s *Session) Logger() zerolog.Logger {
	return s.logger
}

// History lists the entries recorded for this session
func (s *Session) History(ctx context.Context, filter gamestate.HistoryFilter) ([]*gamestate.HistoryEntry, error) {
	if s.history == nil {
		return nil, gamestate.NewStoreError(gamestate.ErrCodeInvalidConfig, "history recording is disabled")
	}
	return s.history.List(ctx, s.id, filter)
}

// Close stops history recording, waiting up to HistoryFlushTimeout for
// queued entries to be written. The stores stay usable but are no longer
// recorded. Calling Close more than once is a no-op.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if s.recorder != nil {
			s.recorder.close()
		}
		s.cancel()
		gamestate.LogSessionClosed(s.logger, time.Since(s.startedAt))
	})
}
