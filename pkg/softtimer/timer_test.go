package softtimer

import (
	"testing"
	"time"
)

func TestHasElapsed(t *testing.T) {
	tests := []struct {
		name     string
		last     time.Duration
		interval time.Duration
		now      time.Duration
		want     bool
	}{
		{"Before", 0, 500 * time.Millisecond, 499 * time.Millisecond, false},
		{"Exact", 0, 500 * time.Millisecond, 500 * time.Millisecond, true},
		{"After", 100 * time.Millisecond, 500 * time.Millisecond, time.Second, true},
		{"ZeroInterval", time.Second, 0, time.Second, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasElapsed(tt.last, tt.interval, tt.now); got != tt.want {
				t.Errorf("HasElapsed(%v, %v, %v) = %v, want %v", tt.last, tt.interval, tt.now, got, tt.want)
			}
		})
	}
}

func TestGateFiresOncePerInterval(t *testing.T) {
	g := NewGate(500 * time.Millisecond)

	if g.Due(100 * time.Millisecond) {
		t.Error("Due(100ms) = true before first interval")
	}
	if !g.Due(500 * time.Millisecond) {
		t.Error("Due(500ms) = false, want true")
	}
	if g.Due(700 * time.Millisecond) {
		t.Error("Due(700ms) = true, want false (only 200ms since last)")
	}
	if !g.Due(1000 * time.Millisecond) {
		t.Error("Due(1000ms) = false, want true")
	}
	if g.Last() != 1000*time.Millisecond {
		t.Errorf("Last() = %v, want 1s", g.Last())
	}
}

func TestGateReset(t *testing.T) {
	g := NewGate(time.Second)
	g.Reset(5 * time.Second)

	if g.Due(5500 * time.Millisecond) {
		t.Error("Due() fired before interval after Reset")
	}
	if !g.Due(6 * time.Second) {
		t.Error("Due() did not fire one interval after Reset")
	}
}

func TestManualClock(t *testing.T) {
	c := NewManual(time.Second)
	if c.Now() != time.Second {
		t.Errorf("Now() = %v, want 1s", c.Now())
	}
	if got := c.Advance(500 * time.Millisecond); got != 1500*time.Millisecond {
		t.Errorf("Advance() = %v, want 1.5s", got)
	}
	c.Set(0)
	if c.Now() != 0 {
		t.Errorf("Now() after Set(0) = %v", c.Now())
	}
}

func TestSystemClockMonotonic(t *testing.T) {
	c := NewSystemClock()
	a := c.Now()
	b := c.Now()
	if b < a {
		t.Errorf("SystemClock went backwards: %v then %v", a, b)
	}
}
