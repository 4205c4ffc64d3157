package store

import (
	"context"
	"testing"
	"time"

	"github.com/sicko7947/gamestate"
)

func newEntry(sessionID string, seq uint64, kind gamestate.EntryKind) *gamestate.HistoryEntry {
	entry := &gamestate.HistoryEntry{
		SessionID:  sessionID,
		Seq:        seq,
		Kind:       kind,
		RecordedAt: time.Now(),
	}
	if kind == gamestate.EntryKindScore {
		entry.Score = int(seq) * 10
	} else {
		entry.Corner = gamestate.CornerTopLeft
	}
	return entry
}

func TestNewMemoryHistory(t *testing.T) {
	store := NewMemoryHistory()
	if store == nil {
		t.Fatal("NewMemoryHistory() returned nil")
	}

	// Verify it implements the interface
	var _ gamestate.HistoryStore = store
}

func TestMemoryHistory_AppendAndList(t *testing.T) {
	store := NewMemoryHistory()
	ctx := context.Background()

	// Appended out of order
	for _, seq := range []uint64{3, 1, 2} {
		if err := store.Append(ctx, newEntry("session-1", seq, gamestate.EntryKindScore)); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	entries, err := store.List(ctx, "session-1", gamestate.HistoryFilter{})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}

	if len(entries) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(entries))
	}

	for i, entry := range entries {
		if entry.Seq != uint64(i+1) {
			t.Errorf("entries[%d].Seq = %d, want %d", i, entry.Seq, i+1)
		}
	}
}

func TestMemoryHistory_Append_Duplicate(t *testing.T) {
	store := NewMemoryHistory()
	ctx := context.Background()

	entry := newEntry("session-1", 1, gamestate.EntryKindScore)

	// First append should succeed
	if err := store.Append(ctx, entry); err != nil {
		t.Fatalf("First Append() failed: %v", err)
	}

	// Second append with same key should fail
	err := store.Append(ctx, entry)
	if err == nil {
		t.Fatal("Append() with duplicate key should have failed")
	}
	if !gamestate.IsConflict(err) {
		t.Errorf("Append() duplicate error = %v, want conflict", err)
	}
}

func TestMemoryHistory_Append_CopiesEntry(t *testing.T) {
	store := NewMemoryHistory()
	ctx := context.Background()

	entry := newEntry("session-1", 1, gamestate.EntryKindScore)
	if err := store.Append(ctx, entry); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	entry.Score = 999

	entries, err := store.List(ctx, "session-1", gamestate.HistoryFilter{})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if entries[0].Score != 10 {
		t.Errorf("stored Score = %d, want 10", entries[0].Score)
	}

	// Mutating a listed entry does not affect the store either
	entries[0].Score = 123
	again, _ := store.List(ctx, "session-1", gamestate.HistoryFilter{})
	if again[0].Score != 10 {
		t.Errorf("stored Score after list mutation = %d, want 10", again[0].Score)
	}
}

func TestMemoryHistory_List_Filter(t *testing.T) {
	store := NewMemoryHistory()
	ctx := context.Background()

	entries := []*gamestate.HistoryEntry{
		newEntry("session-1", 1, gamestate.EntryKindScore),
		newEntry("session-1", 2, gamestate.EntryKindModal),
		newEntry("session-1", 3, gamestate.EntryKindScore),
		newEntry("session-1", 4, gamestate.EntryKindScore),
		newEntry("session-2", 1, gamestate.EntryKindScore),
	}
	for _, entry := range entries {
		if err := store.Append(ctx, entry); err != nil {
			t.Fatalf("Append() failed: %v", err)
		}
	}

	tests := []struct {
		name     string
		session  string
		filter   gamestate.HistoryFilter
		wantSeqs []uint64
	}{
		{"all", "session-1", gamestate.HistoryFilter{}, []uint64{1, 2, 3, 4}},
		{"score only", "session-1", gamestate.HistoryFilter{Kind: gamestate.EntryKindScore}, []uint64{1, 3, 4}},
		{"modal only", "session-1", gamestate.HistoryFilter{Kind: gamestate.EntryKindModal}, []uint64{2}},
		{"limit", "session-1", gamestate.HistoryFilter{Limit: 2}, []uint64{1, 2}},
		{"kind and limit", "session-1", gamestate.HistoryFilter{Kind: gamestate.EntryKindScore, Limit: 2}, []uint64{1, 3}},
		{"other session", "session-2", gamestate.HistoryFilter{}, []uint64{1}},
		{"unknown session", "missing", gamestate.HistoryFilter{}, []uint64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(ctx, tt.session, tt.filter)
			if err != nil {
				t.Fatalf("List() failed: %v", err)
			}
			if len(got) != len(tt.wantSeqs) {
				t.Fatalf("List() returned %d entries, want %d", len(got), len(tt.wantSeqs))
			}
			for i, entry := range got {
				if entry.Seq != tt.wantSeqs[i] {
					t.Errorf("got[%d].Seq = %d, want %d", i, entry.Seq, tt.wantSeqs[i])
				}
			}
		})
	}
}

func TestMemoryHistory_DeleteSession(t *testing.T) {
	store := NewMemoryHistory()
	ctx := context.Background()

	if err := store.Append(ctx, newEntry("session-1", 1, gamestate.EntryKindScore)); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}
	if err := store.Append(ctx, newEntry("session-2", 1, gamestate.EntryKindScore)); err != nil {
		t.Fatalf("Append() failed: %v", err)
	}

	if err := store.DeleteSession(ctx, "session-1"); err != nil {
		t.Fatalf("DeleteSession() failed: %v", err)
	}

	entries, _ := store.List(ctx, "session-1", gamestate.HistoryFilter{})
	if len(entries) != 0 {
		t.Errorf("List() after delete returned %d entries, want 0", len(entries))
	}

	others, _ := store.List(ctx, "session-2", gamestate.HistoryFilter{})
	if len(others) != 1 {
		t.Errorf("other session has %d entries, want 1", len(others))
	}
}

func TestMemoryHistory_DeleteSession_NotFound(t *testing.T) {
	store := NewMemoryHistory()

	err := store.DeleteSession(context.Background(), "non-existent")
	if !gamestate.IsNotFound(err) {
		t.Errorf("DeleteSession() error = %v, want NOT_FOUND", err)
	}
}

func TestMemoryHistory_CancelledContext(t *testing.T) {
	store := NewMemoryHistory()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := store.Append(ctx, newEntry("session-1", 1, gamestate.EntryKindScore)); err == nil {
		t.Error("Append() with cancelled context should have failed")
	}
	if _, err := store.List(ctx, "session-1", gamestate.HistoryFilter{}); err == nil {
		t.Error("List() with cancelled context should have failed")
	}
}
