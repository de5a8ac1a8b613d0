package softtimer

import (
	"sync"
	"time"
)

// Clock reports monotonic time elapsed since boot.
type Clock interface {
	Now() time.Duration
}

// HasElapsed reports whether at least interval has passed between last and now.
func HasElapsed(last, interval, now time.Duration) bool {
	return now-last >= interval
}

// SystemClock measures time since it was created using the runtime's
// monotonic clock.
type SystemClock struct {
	start time.Time
}

// NewSystemClock returns a clock whose zero is the moment of the call.
func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

// Now returns the time elapsed since the clock was created.
func (c *SystemClock) Now() time.Duration {
	return time.Since(c.start)
}

// Manual is a Clock that only moves when told to.
type Manual struct {
	mu  sync.Mutex
	now time.Duration
}

// NewManual returns a manual clock positioned at start.
func NewManual(start time.Duration) *Manual {
	return &Manual{now: start}
}

// Now returns the current manual time.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to t.
func (m *Manual) Set(t time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

// Advance moves the clock forward by d and returns the new time.
func (m *Manual) Advance(d time.Duration) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += d
	return m.now
}

// Gate fires at most once per Interval. The reference starts at zero, so
// the first firing happens once Interval has passed since boot.
type Gate struct {
	Interval time.Duration
	last     time.Duration
}

// NewGate returns a gate with the given interval.
func NewGate(interval time.Duration) *Gate {
	return &Gate{Interval: interval}
}

// Due reports whether the interval has elapsed and, if so, records now as
// the new reference.
func (g *Gate) Due(now time.Duration) bool {
	if !HasElapsed(g.last, g.Interval, now) {
		return false
	}
	g.last = now
	return true
}

// Reset sets the reference to now without firing.
func (g *Gate) Reset(now time.Duration) {
	g.last = now
}

// Last returns the time of the most recent firing or reset.
func (g *Gate) Last() time.Duration {
	return g.last
}

// Sleeper blocks for a duration. The association retry and the restart
// delay are the only places allowed to block the control loop.
type Sleeper func(time.Duration)

// Sleep is the default Sleeper.
var Sleep Sleeper = time.Sleep
