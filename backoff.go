package gamestate

import (
	"fmt"
	"strings"
	"time"
)

// BackoffStrategy defines how the delay grows between history append retries
type BackoffStrategy string

const (
	BackoffExponential BackoffStrategy = "EXPONENTIAL"
	BackoffLinear      BackoffStrategy = "LINEAR"
	BackoffNone        BackoffStrategy = "NONE"
)

// ParseBackoffStrategy accepts a strategy name in any case
func ParseBackoffStrategy(s string) (BackoffStrategy, error) {
	switch strategy := BackoffStrategy(strings.ToUpper(strings.TrimSpace(s))); strategy {
	case BackoffExponential, BackoffLinear, BackoffNone:
		return strategy, nil
	default:
		return "", NewStoreError(ErrCodeInvalidConfig, fmt.Sprintf("unknown backoff strategy %q", s))
	}
}

// CalculateBackoff returns the delay before a retry attempt.
//   - EXPONENTIAL: base * 2^(attempt-1)
//   - LINEAR: base * attempt
//   - NONE: no delay
//
// Attempt 0 is the first try and never waits. Unknown strategies fall back
// to linear.
func CalculateBackoff(base time.Duration, attempt int, strategy BackoffStrategy) time.Duration {
	if attempt <= 0 {
		return 0
	}

	switch strategy {
	case BackoffExponential:
		return base * time.Duration(1<<(attempt-1))
	case BackoffNone:
		return 0
	default:
		return base * time.Duration(attempt)
	}
}
