package ratelimit

import (
	"testing"
	"time"
)

func TestAllowWithinLimit(t *testing.T) {
	rl := NewLimiter(Config{RequestsPerMinute: 3, CleanupInterval: time.Minute})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("1.2.3.4") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.Allow("1.2.3.4") {
		t.Fatalf("request over limit should be rejected")
	}
	if rl.TotalHits() != 1 {
		t.Fatalf("expected 1 hit, got %d", rl.TotalHits())
	}
}

func TestClientsAreIndependent(t *testing.T) {
	rl := NewLimiter(Config{RequestsPerMinute: 1, CleanupInterval: time.Minute})
	defer rl.Stop()

	if !rl.Allow("a") {
		t.Fatalf("first request from a should pass")
	}
	if !rl.Allow("b") {
		t.Fatalf("first request from b should pass")
	}
	if rl.Allow("a") {
		t.Fatalf("second request from a should be rejected")
	}
	if rl.ActiveClients() != 2 {
		t.Fatalf("expected 2 tracked clients, got %d", rl.ActiveClients())
	}
}
