package gamestate

import "context"

// HistoryStore persists an append-only trail of store mutations per session.
// Entries are never read back into a store.
type HistoryStore interface {
	Append(ctx context.Context, entry *HistoryEntry) error
	List(ctx context.Context, sessionID string, filter HistoryFilter) ([]*HistoryEntry, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// HistoryFilter defines filtering criteria for history entries
type HistoryFilter struct {
	Kind  EntryKind // Empty matches every kind
	Limit int       // Zero means no limit
}

// Matches returns true if entry passes the kind filter
func (f HistoryFilter) Matches(entry *HistoryEntry) bool {
	return f.Kind == "" || entry.Kind == f.Kind
}
