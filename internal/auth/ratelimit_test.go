package auth

import (
	"testing"
	"time"
)

func TestRateLimiter(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(3, 15*time.Minute)
	rl.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if !rl.Allow("k") {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if rl.Allow("k") {
		t.Error("fourth request should be limited")
	}

	// one token returns every window/limit
	now = now.Add(5 * time.Minute)
	if !rl.Allow("k") {
		t.Error("request after refill should be allowed")
	}

	now = now.Add(time.Hour)
	if removed := rl.Sweep(); removed != 1 {
		t.Errorf("Sweep removed %d, want 1", removed)
	}
}

func TestRateLimiterDisabled(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !rl.Allow("k") {
			t.Fatal("disabled limiter should always allow")
		}
	}
}
