package gamestate

import (
	"testing"
	"time"
)

func TestCalculateBackoff_FirstAttempt(t *testing.T) {
	for _, strategy := range []BackoffStrategy{BackoffExponential, BackoffLinear, BackoffNone} {
		t.Run(string(strategy), func(t *testing.T) {
			if delay := CalculateBackoff(100*time.Millisecond, 0, strategy); delay != 0 {
				t.Errorf("CalculateBackoff(100ms, 0, %s) = %v, want 0", strategy, delay)
			}
		})
	}
}

func TestCalculateBackoff(t *testing.T) {
	tests := []struct {
		name     string
		base     time.Duration
		attempt  int
		strategy BackoffStrategy
		want     time.Duration
	}{
		{"exponential 1", 50 * time.Millisecond, 1, BackoffExponential, 50 * time.Millisecond},
		{"exponential 2", 50 * time.Millisecond, 2, BackoffExponential, 100 * time.Millisecond},
		{"exponential 4", 50 * time.Millisecond, 4, BackoffExponential, 400 * time.Millisecond},
		{"linear 1", 50 * time.Millisecond, 1, BackoffLinear, 50 * time.Millisecond},
		{"linear 3", 50 * time.Millisecond, 3, BackoffLinear, 150 * time.Millisecond},
		{"none", 50 * time.Millisecond, 3, BackoffNone, 0},
		{"unknown is linear", 50 * time.Millisecond, 2, "JITTER", 100 * time.Millisecond},
		{"zero base", 0, 5, BackoffExponential, 0},
		{"negative attempt", 50 * time.Millisecond, -1, BackoffLinear, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateBackoff(tt.base, tt.attempt, tt.strategy)
			if got != tt.want {
				t.Errorf("CalculateBackoff(%v, %d, %s) = %v, want %v",
					tt.base, tt.attempt, tt.strategy, got, tt.want)
			}
		})
	}
}

func TestParseBackoffStrategy(t *testing.T) {
	got, err := ParseBackoffStrategy(" exponential ")
	if err != nil {
		t.Fatalf("ParseBackoffStrategy() error = %v", err)
	}
	if got != BackoffExponential {
		t.Errorf("ParseBackoffStrategy() = %s, want %s", got, BackoffExponential)
	}

	if _, err := ParseBackoffStrategy("random"); !IsInvalidConfig(err) {
		t.Errorf("ParseBackoffStrategy(random) error = %v, want invalid config", err)
	}
}
