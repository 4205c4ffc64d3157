package store

import (
	"fmt"

	"github.com/sicko7947/gamestate"
)

// DynamoDB schema constants for single-table design
const (
	// Table attributes
	AttrPK         = "PK"
	AttrSK         = "SK"
	AttrEntityType = "entity_type"
	AttrTTL        = "ttl"

	// Entity types
	EntityTypeHistoryEntry = "HistoryEntry"
)

// History keys: PK=SESSION#{sessionID}, SK=ENTRY#{kind}#{seq}
func sessionPK(sessionID string) string {
	return fmt.Sprintf("SESSION#%s", sessionID)
}

// Sequence numbers are zero padded so SK order matches numeric order
func historyEntrySK(kind gamestate.EntryKind, seq uint64) string {
	return fmt.Sprintf("%s%s#%020d", entryPrefix(), kind, seq)
}

// Prefix for range queries
func entryPrefix() string {
	return "ENTRY#"
}

func entryKindPrefix(kind gamestate.EntryKind) string {
	if kind == "" {
		return entryPrefix()
	}
	return fmt.Sprintf("%s%s#", entryPrefix(), kind)
}
