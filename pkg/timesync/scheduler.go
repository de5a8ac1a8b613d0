package timesync

import (
	"log/slog"
	"sync"
	"time"

	"github.com/netclock/netclock-go/pkg/softtimer"
)

// Cadence defaults.
const (
	// DefaultPrimaryInterval is the healthy resync period.
	DefaultPrimaryInterval = 10 * time.Minute

	// RetryInterval is the fixed period between retries after a failure.
	RetryInterval = 30 * time.Second
)

// Client performs one network time correction.
type Client interface {
	// Update attempts a round trip and reports success.
	Update() bool
}

// Trigger names which rule caused an attempt.
type Trigger uint8

const (
	TriggerStart Trigger = iota
	TriggerPrimary
	TriggerRetry
	TriggerForced
)

// String returns the trigger name.
func (t Trigger) String() string {
	switch t {
	case TriggerStart:
		return "START"
	case TriggerPrimary:
		return "PRIMARY"
	case TriggerRetry:
		return "RETRY"
	case TriggerForced:
		return "FORCED"
	default:
		return "UNKNOWN"
	}
}

// Status is the scheduler's record of sync health.
type Status struct {
	LastAttempt  time.Duration
	LastSuccess  time.Duration
	LastResult   bool
	HasSucceeded bool
	Attempts     int
	Failures     int
}

// Attempt describes one completed sync attempt.
type Attempt struct {
	At      time.Duration
	Trigger Trigger
	Success bool
}

// Config configures a Scheduler.
type Config struct {
	// PrimaryInterval is the healthy resync period. Zero means the default.
	PrimaryInterval time.Duration

	// Logger is optional; nil disables logging.
	Logger *slog.Logger
}

// Scheduler applies the dual-cadence policy around a Client.
type Scheduler struct {
	mu sync.Mutex

	client  Client
	primary time.Duration
	retry   time.Duration

	primaryRef time.Duration
	retryRef   time.Duration
	status     Status

	logger    *slog.Logger
	onAttempt func(Attempt)
}

// NewScheduler creates a scheduler around client.
func NewScheduler(client Client, cfg Config) *Scheduler {
	primary := cfg.PrimaryInterval
	if primary <= 0 {
		primary = DefaultPrimaryInterval
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		client:  client,
		primary: primary,
		retry:   RetryInterval,
		logger:  logger,
	}
}

// OnAttempt registers a callback invoked after every attempt.
func (s *Scheduler) OnAttempt(fn func(Attempt)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAttempt = fn
}

// PrimaryInterval returns the configured primary cadence.
func (s *Scheduler) PrimaryInterval() time.Duration {
	return s.primary
}

// Start performs the boot-time attempt and anchors both cadences at now.
func (s *Scheduler) Start(now time.Duration) bool {
	s.mu.Lock()
	s.primaryRef = now
	s.retryRef = now
	ok, fn := s.attempt(now, TriggerStart)
	s.mu.Unlock()

	notify(fn, Attempt{At: now, Trigger: TriggerStart, Success: ok})
	return ok
}

// MaybeSync returns the current sync health, attempting a correction only
// when one of the cadences is due.
func (s *Scheduler) MaybeSync(now time.Duration) bool {
	s.mu.Lock()

	var trigger Trigger
	switch {
	case softtimer.HasElapsed(s.primaryRef, s.primary, now):
		s.primaryRef = now
		trigger = TriggerPrimary
	case !s.status.LastResult && softtimer.HasElapsed(s.retryRef, s.retry, now):
		s.retryRef = now
		trigger = TriggerRetry
	default:
		ok := s.status.LastResult
		s.mu.Unlock()
		return ok
	}

	ok, fn := s.attempt(now, trigger)
	s.mu.Unlock()

	notify(fn, Attempt{At: now, Trigger: trigger, Success: ok})
	return ok
}

// ForceSync attempts a correction immediately. A failure is retried on the
// retry cadence counted from now; the primary schedule is unchanged.
func (s *Scheduler) ForceSync(now time.Duration) bool {
	s.mu.Lock()
	s.retryRef = now
	ok, fn := s.attempt(now, TriggerForced)
	s.mu.Unlock()

	notify(fn, Attempt{At: now, Trigger: TriggerForced, Success: ok})
	return ok
}

// Status returns a copy of the sync record.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// attempt runs the client and records the result. Called with mu held.
func (s *Scheduler) attempt(now time.Duration, trigger Trigger) (bool, func(Attempt)) {
	ok := s.client.Update()

	s.status.LastAttempt = now
	s.status.LastResult = ok
	s.status.Attempts++
	if ok {
		s.status.LastSuccess = now
		s.status.HasSucceeded = true
	} else {
		s.status.Failures++
	}

	if ok {
		s.logger.Debug("time sync succeeded", "trigger", trigger.String(), "at", now)
	} else {
		s.logger.Warn("time sync failed", "trigger", trigger.String(), "at", now)
	}
	return ok, s.onAttempt
}

func notify(fn func(Attempt), a Attempt) {
	if fn != nil {
		fn(a)
	}
}
