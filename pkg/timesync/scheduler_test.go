package timesync

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	primary = 600 * time.Second
	tick    = 500 * time.Millisecond
)

// scriptedClient returns results in order, then repeats the last one.
type scriptedClient struct {
	results []bool
	calls   int
}

func (c *scriptedClient) Update() bool {
	i := c.calls
	c.calls++
	if i >= len(c.results) {
		return c.results[len(c.results)-1]
	}
	return c.results[i]
}

// run starts the scheduler at 0 and ticks every 500ms until end, returning
// the times at which attempts happened.
func run(t *testing.T, client Client, end time.Duration) []time.Duration {
	t.Helper()

	s := NewScheduler(client, Config{PrimaryInterval: primary})
	var at []time.Duration
	s.OnAttempt(func(a Attempt) { at = append(at, a.At) })

	s.Start(0)
	for now := tick; now <= end; now += tick {
		s.MaybeSync(now)
	}
	return at
}

func TestHealthySyncOnlyOnPrimaryCadence(t *testing.T) {
	client := &scriptedClient{results: []bool{true}}

	at := run(t, client, 1300*time.Second)

	assert.Equal(t, []time.Duration{0, 600 * time.Second, 1200 * time.Second}, at)
}

func TestFailureRetriedEvery30Seconds(t *testing.T) {
	client := &scriptedClient{results: []bool{false}}

	at := run(t, client, 150*time.Second)

	assert.Equal(t, []time.Duration{
		0, 30 * time.Second, 60 * time.Second, 90 * time.Second, 120 * time.Second, 150 * time.Second,
	}, at)
}

func TestRetrySuccessDoesNotResetPrimary(t *testing.T) {
	// Fails at 0, 30s and 60s, succeeds at 90s.
	client := &scriptedClient{results: []bool{false, false, false, true}}

	at := run(t, client, 700*time.Second)

	require.Len(t, at, 5)
	assert.Equal(t, []time.Duration{
		0, 30 * time.Second, 60 * time.Second, 90 * time.Second, 600 * time.Second,
	}, at)
}

func TestFailedPrimaryFallsBackToRetryReference(t *testing.T) {
	// Healthy until the first primary attempt fails; the retry reference is
	// still anchored at boot, so the retry fires on the next tick and then
	// every 30s.
	client := &scriptedClient{results: []bool{true, false, false, true}}

	at := run(t, client, 700*time.Second)

	assert.Equal(t, []time.Duration{
		0, 600 * time.Second, 600*time.Second + tick, 630*time.Second + tick,
	}, at)
}

func TestMaybeSyncReturnsCachedResult(t *testing.T) {
	client := &scriptedClient{results: []bool{false, true}}
	s := NewScheduler(client, Config{PrimaryInterval: primary})

	assert.False(t, s.Start(0))
	assert.False(t, s.MaybeSync(10*time.Second))
	assert.Equal(t, 1, client.calls)

	assert.True(t, s.MaybeSync(30*time.Second))
	assert.True(t, s.MaybeSync(31*time.Second))
	assert.Equal(t, 2, client.calls)
}

func TestForceSync(t *testing.T) {
	client := &scriptedClient{results: []bool{true, false, true}}
	s := NewScheduler(client, Config{PrimaryInterval: primary})
	var triggers []Trigger
	s.OnAttempt(func(a Attempt) { triggers = append(triggers, a.Trigger) })

	s.Start(0)
	assert.False(t, s.ForceSync(100*time.Second))

	// Retry counts from the forced attempt.
	assert.False(t, s.MaybeSync(129*time.Second))
	assert.True(t, s.MaybeSync(130*time.Second))

	assert.Equal(t, []Trigger{TriggerStart, TriggerForced, TriggerRetry}, triggers)

	// Primary still fires on the original schedule.
	s.MaybeSync(599 * time.Second)
	assert.Equal(t, 3, client.calls)
	s.MaybeSync(600 * time.Second)
	assert.Equal(t, 4, client.calls)
}

func TestStatusRecordsAttempts(t *testing.T) {
	client := &scriptedClient{results: []bool{false, true}}
	s := NewScheduler(client, Config{PrimaryInterval: primary})

	s.Start(0)
	st := s.Status()
	assert.False(t, st.LastResult)
	assert.False(t, st.HasSucceeded)
	assert.Equal(t, 1, st.Attempts)
	assert.Equal(t, 1, st.Failures)

	s.MaybeSync(30 * time.Second)
	st = s.Status()
	assert.True(t, st.LastResult)
	assert.True(t, st.HasSucceeded)
	assert.Equal(t, 30*time.Second, st.LastAttempt)
	assert.Equal(t, 30*time.Second, st.LastSuccess)
	assert.Equal(t, 2, st.Attempts)
	assert.Equal(t, 1, st.Failures)
}

func TestDefaultPrimaryInterval(t *testing.T) {
	s := NewScheduler(&scriptedClient{results: []bool{true}}, Config{})
	assert.Equal(t, DefaultPrimaryInterval, s.PrimaryInterval())
	assert.Equal(t, 600000*time.Millisecond, s.PrimaryInterval())
}

func TestTriggerString(t *testing.T) {
	assert.Equal(t, "RETRY", TriggerRetry.String())
	assert.Equal(t, "UNKNOWN", Trigger(42).String())
}
