package gamestate

import "time"

// ScoreState is the value held by a ScoreStore
type ScoreState struct {
	Score int `json:"score"`
}

// Corner names the screen corner whose modal is open.
// NoCorner means no modal is open.
type Corner string

const (
	NoCorner          Corner = ""
	CornerTopLeft     Corner = "top-left"
	CornerTopRight    Corner = "top-right"
	CornerBottomLeft  Corner = "bottom-left"
	CornerBottomRight Corner = "bottom-right"
)

// AllCorners lists the recognised corners in reading order
var AllCorners = []Corner{
	CornerTopLeft,
	CornerTopRight,
	CornerBottomLeft,
	CornerBottomRight,
}

// IsOpen returns true if a modal is open
func (c Corner) IsOpen() bool {
	return c != NoCorner
}

// Known returns true if c is NoCorner or one of AllCorners
func (c Corner) Known() bool {
	if c == NoCorner {
		return true
	}
	for _, known := range AllCorners {
		if c == known {
			return true
		}
	}
	return false
}

// String returns the string representation
func (c Corner) String() string {
	if c == NoCorner {
		return "none"
	}
	return string(c)
}

// EntryKind identifies which store a history entry was recorded from
type EntryKind string

const (
	EntryKindScore EntryKind = "score"
	EntryKindModal EntryKind = "modal"
)

// String returns the string representation
func (k EntryKind) String() string {
	return string(k)
}

// HistoryEntry is one recorded store mutation within a session
type HistoryEntry struct {
	// Identity
	SessionID string    `json:"sessionId" dynamodbav:"session_id"`
	Seq       uint64    `json:"seq" dynamodbav:"seq"` // Monotonic per session
	Kind      EntryKind `json:"kind" dynamodbav:"kind"`

	// Snapshot after the mutation
	Score  int    `json:"score" dynamodbav:"score"`
	Corner Corner `json:"corner,omitempty" dynamodbav:"corner,omitempty"`

	RecordedAt time.Time `json:"recordedAt" dynamodbav:"recorded_at"`

	// DynamoDB TTL
	TTL int64 `json:"-" dynamodbav:"ttl,omitempty"`
}
