package core

import (
	"testing"
	"time"
)

func TestCooldownReadyConsumesSlot(t *testing.T) {
	tr := NewCooldownTracker()

	ok, _ := tr.Ready("ping|chat", time.Minute)
	if !ok {
		t.Fatalf("first use should be ready")
	}

	ok, remaining := tr.Ready("ping|chat", time.Minute)
	if ok {
		t.Fatalf("second use within the window should be blocked")
	}
	if remaining <= 0 || remaining > time.Minute {
		t.Fatalf("remaining out of range: %v", remaining)
	}
}

func TestCooldownZeroDurationAlwaysReady(t *testing.T) {
	tr := NewCooldownTracker()
	for i := 0; i < 3; i++ {
		if ok, _ := tr.Ready("ping|chat", 0); !ok {
			t.Fatalf("zero cooldown must never block")
		}
	}
}

func TestCooldownKeysIndependent(t *testing.T) {
	tr := NewCooldownTracker()
	tr.Ready("ping|a", time.Minute)

	if ok, _ := tr.Ready("ping|b", time.Minute); !ok {
		t.Fatalf("different chat must have its own cooldown")
	}
}

func TestCooldownSweepDropsStaleEntries(t *testing.T) {
	tr := NewCooldownTracker()
	tr.Ready("old", time.Minute)
	tr.last["old"] = time.Now().Add(-time.Hour)
	tr.Ready("fresh", time.Minute)

	tr.Sweep(10 * time.Minute)

	if _, kept := tr.last["old"]; kept {
		t.Fatalf("stale entry should have been swept")
	}
	if _, kept := tr.last["fresh"]; !kept {
		t.Fatalf("fresh entry should survive the sweep")
	}
}
