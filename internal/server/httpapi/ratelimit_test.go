package httpapi

import (
	"testing"
	"time"
)

func TestMemoryRateLimiter_AllowsWithinLimit(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()

	for i := 0; i < 3; i++ {
		if d := rl.Allow("k", 3, time.Minute); !d.allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if d := rl.Allow("k", 3, time.Minute); d.allowed {
		t.Fatalf("attempt over the limit should be denied")
	}
}

func TestMemoryRateLimiter_KeysAreIndependent(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()

	_ = rl.Allow("a", 1, time.Minute)
	if d := rl.Allow("b", 1, time.Minute); !d.allowed {
		t.Fatalf("another key should have its own window")
	}
}

func TestMemoryRateLimiter_WindowResets(t *testing.T) {
	now := time.Now()
	rl := &memoryRateLimiter{
		windows: map[string]*memoryWindow{},
		now:     func() time.Time { return now },
	}

	_ = rl.Allow("k", 1, time.Minute)
	if d := rl.Allow("k", 1, time.Minute); d.allowed {
		t.Fatalf("second attempt in window should be denied")
	}

	now = now.Add(2 * time.Minute)
	if d := rl.Allow("k", 1, time.Minute); !d.allowed {
		t.Fatalf("attempt in a fresh window should be allowed")
	}
}

func TestMemoryRateLimiter_ZeroLimitDisables(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()

	for i := 0; i < 100; i++ {
		if d := rl.Allow("k", 0, time.Minute); !d.allowed {
			t.Fatalf("limit<=0 must disable limiting")
		}
	}
}
