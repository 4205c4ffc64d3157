package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sicko7947/gamestate"
)

// MemoryHistory implements gamestate.HistoryStore using in-memory storage
type MemoryHistory struct {
	entries map[string]map[string]*gamestate.HistoryEntry // sessionID -> SK -> entry
	mu      sync.RWMutex
}

// NewMemoryHistory creates a new in-memory history store
func NewMemoryHistory() gamestate.HistoryStore {
	return &MemoryHistory{
		entries: make(map[string]map[string]*gamestate.HistoryEntry),
	}
}

func (s *MemoryHistory) Append(ctx context.Context, entry *gamestate.HistoryEntry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.entries[entry.SessionID]
	if !exists {
		session = make(map[string]*gamestate.HistoryEntry)
		s.entries[entry.SessionID] = session
	}

	sk := historyEntrySK(entry.Kind, entry.Seq)
	if _, exists := session[sk]; exists {
		return gamestate.NewStoreError(gamestate.ErrCodeConflict,
			fmt.Sprintf("history entry %s/%s already exists", entry.SessionID, sk))
	}

	// Copy
	entryCopy := *entry
	session[sk] = &entryCopy

	return nil
}

func (s *MemoryHistory) List(ctx context.Context, sessionID string, filter gamestate.HistoryFilter) ([]*gamestate.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	session := s.entries[sessionID]
	entries := make([]*gamestate.HistoryEntry, 0, len(session))
	for _, entry := range session {
		if !filter.Matches(entry) {
			continue
		}
		entryCopy := *entry
		entries = append(entries, &entryCopy)
	}

	sortBySeq(entries)
	return applyLimit(entries, filter.Limit), nil
}

func (s *MemoryHistory) DeleteSession(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[sessionID]; !exists {
		return gamestate.NewStoreError(gamestate.ErrCodeNotFound,
			fmt.Sprintf("no history for session %s", sessionID))
	}

	delete(s.entries, sessionID)
	return nil
}

func sortBySeq(entries []*gamestate.HistoryEntry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Seq < entries[j].Seq
	})
}

func applyLimit(entries []*gamestate.HistoryEntry, limit int) []*gamestate.HistoryEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
