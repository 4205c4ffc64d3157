package gamestate

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Log event names
const (
	// Store events
	EventScoreAdded         = "score_added"
	EventScoreReset         = "score_reset"
	EventModalOpened        = "modal_opened"
	EventModalClosed        = "modal_closed"
	EventModalCornerUnknown = "modal_corner_unknown"

	// Session events
	EventSessionStarted = "session_started"
	EventSessionClosed  = "session_closed"

	// History events
	EventHistoryRecorded = "history_recorded"
	EventHistoryError    = "history_error"
)

// DefaultLogger returns a console logger on stdout at Info level
func DefaultLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger().
		Level(zerolog.InfoLevel)
}

// LogScoreAdded logs a score delta and the resulting total
func LogScoreAdded(logger zerolog.Logger, points, score int) {
	logger.Info().
		Str("event", EventScoreAdded).
		Int("points", points).
		Int("score", score).
		Msgf("Added %d points. New score: %d", points, score)
}

// LogScoreReset logs a score reset
func LogScoreReset(logger zerolog.Logger) {
	logger.Info().
		Str("event", EventScoreReset).
		Int("score", 0).
		Msg("Resetting score to 0")
}

// LogModalOpened logs a modal opening in a corner
func LogModalOpened(logger zerolog.Logger, corner Corner) {
	logger.Debug().
		Str("event", EventModalOpened).
		Str("corner", string(corner)).
		Msg("Modal opened")
}

// LogModalClosed logs the open modal being closed
func LogModalClosed(logger zerolog.Logger) {
	logger.Debug().
		Str("event", EventModalClosed).
		Msg("Modal closed")
}

// LogModalCornerUnknown logs a corner value outside AllCorners.
// suggestion is empty when no known corner is close.
func LogModalCornerUnknown(logger zerolog.Logger, corner Corner, suggestion Corner) {
	ev := logger.Warn().
		Str("event", EventModalCornerUnknown).
		Str("corner", string(corner))
	if suggestion != NoCorner {
		ev = ev.Str("suggestion", string(suggestion))
	}
	ev.Msg("Modal opened in unrecognised corner")
}

// LogSessionStarted logs when a session is created.
// logger is expected to come from SessionLogger.
func LogSessionStarted(logger zerolog.Logger, recordHistory bool) {
	logger.Info().
		Str("event", EventSessionStarted).
		Bool("record_history", recordHistory).
		Msg("Session started")
}

// LogSessionClosed logs when a session is closed
func LogSessionClosed(logger zerolog.Logger, duration time.Duration) {
	logger.Info().
		Str("event", EventSessionClosed).
		Dur("duration", duration).
		Msg("Session closed")
}

// LogHistoryRecorded logs a history entry being appended
func LogHistoryRecorded(logger zerolog.Logger, entry *HistoryEntry) {
	logger.Debug().
		Str("event", EventHistoryRecorded).
		Uint64("seq", entry.Seq).
		Str("kind", entry.Kind.String()).
		Msg("History entry recorded")
}

// LogHistoryError logs errors during history persistence
func LogHistoryError(logger zerolog.Logger, operation string, err error) {
	logger.Error().
		Str("event", EventHistoryError).
		Str("operation", operation).
		Str("code", ToStoreError(err).Code).
		Err(err).
		Msg("History error")
}

// SessionLogger creates a logger enriched with session context
func SessionLogger(baseLogger zerolog.Logger, sessionID string) zerolog.Logger {
	return baseLogger.With().
		Str("session_id", sessionID).
		Logger()
}

// StoreLogger creates a logger enriched with the store name
func StoreLogger(baseLogger zerolog.Logger, store string) zerolog.Logger {
	return baseLogger.With().
		Str("store", store).
		Logger()
}
