package gamestate

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestDistance bounds how far an unknown value may be from a corner
// before no suggestion is made.
const maxSuggestDistance = 4

// SuggestCorner returns the known corner closest to s by edit distance.
// The second result is false when nothing is close enough.
func SuggestCorner(s string) (Corner, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	if needle == "" {
		return NoCorner, false
	}

	best := NoCorner
	bestDist := maxSuggestDistance + 1
	for _, c := range AllCorners {
		dist := levenshtein.ComputeDistance(needle, string(c))
		if dist < bestDist {
			best, bestDist = c, dist
		}
	}

	if best == NoCorner {
		return NoCorner, false
	}
	return best, true
}
