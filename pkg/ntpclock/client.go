package ntpclock

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/beevik/ntp"

	"github.com/netclock/netclock-go/pkg/softtimer"
	"github.com/netclock/netclock-go/pkg/timezone"
)

// DefaultTimeout bounds a single query.
const DefaultTimeout = 5 * time.Second

// ErrNoServer is returned when Update runs without a configured server.
var ErrNoServer = errors.New("no time server configured")

// RuleKind selects which of the two zone rules SetRule replaces.
type RuleKind uint8

const (
	RuleSTD RuleKind = iota
	RuleDST
)

// Queryer measures the offset between the local wall clock and a server.
type Queryer interface {
	Query(server string) (time.Duration, error)
}

// SNTPQueryer queries servers over SNTP.
type SNTPQueryer struct {
	Timeout time.Duration
}

// Query returns the clock offset reported by server.
func (q SNTPQueryer) Query(server string) (time.Duration, error) {
	timeout := q.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	resp, err := ntp.QueryWithOptions(server, ntp.QueryOptions{Timeout: timeout})
	if err != nil {
		return 0, fmt.Errorf("query %s: %w", server, err)
	}
	if err := resp.Validate(); err != nil {
		return 0, fmt.Errorf("invalid response from %s: %w", server, err)
	}
	return resp.ClockOffset, nil
}

// Config configures a Client.
type Config struct {
	Server  string
	Queryer Queryer
	Clock   softtimer.Clock

	// Wall returns the host's wall time; the measured offset is applied to it.
	Wall func() time.Time

	// Logger is optional; nil disables logging.
	Logger *slog.Logger
}

// Client is a free-running clock corrected by Update.
type Client struct {
	mu sync.Mutex

	server  string
	queryer Queryer
	clock   softtimer.Clock
	wall    func() time.Time
	logger  *slog.Logger

	started  bool
	base     time.Time
	baseMono time.Duration
	synced   bool

	dst timezone.Transition
	std timezone.Transition
}

// New creates a client. The zone defaults to UTC.
func New(cfg Config) *Client {
	c := &Client{
		server:  cfg.Server,
		queryer: cfg.Queryer,
		clock:   cfg.Clock,
		wall:    cfg.Wall,
		logger:  cfg.Logger,
		base:    time.Unix(0, 0).UTC(),
	}
	if c.queryer == nil {
		c.queryer = SNTPQueryer{}
	}
	if c.clock == nil {
		c.clock = softtimer.NewSystemClock()
	}
	if c.wall == nil {
		c.wall = time.Now
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	utc := timezone.Transition{Abbrev: "UTC"}
	c.dst, c.std = utc, utc
	c.baseMono = c.clock.Now()
	return c
}

// Begin enables updates.
func (c *Client) Begin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = true
}

// Stop disables updates. The local clock keeps running.
func (c *Client) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.started = false
}

// SetServer changes the time server used by subsequent updates.
func (c *Client) SetServer(server string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.server = server
}

// Server returns the configured time server.
func (c *Client) Server() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.server
}

// SetRule replaces the daylight-saving or standard rule.
func (c *Client) SetRule(kind RuleKind, abbrev string, week timezone.Week, weekday time.Weekday, month time.Month, hour, offsetMinutes int) {
	t := timezone.Transition{
		Abbrev:        abbrev,
		Week:          week,
		Weekday:       weekday,
		Month:         month,
		Hour:          hour,
		OffsetMinutes: offsetMinutes,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if kind == RuleDST {
		c.dst = t
	} else {
		c.std = t
	}
}

// ApplyZone sets both rules from a table entry.
func (c *Client) ApplyZone(r timezone.Rule) {
	d, s := r.DST, r.STD
	c.SetRule(RuleDST, d.Abbrev, d.Week, d.Weekday, d.Month, d.Hour, d.OffsetMinutes)
	c.SetRule(RuleSTD, s.Abbrev, s.Week, s.Weekday, s.Month, s.Hour, s.OffsetMinutes)
}

// Update queries the server once and re-anchors the clock on success.
// It reports false when the client has not begun, no server is set or the
// query fails.
func (c *Client) Update() bool {
	c.mu.Lock()
	started, server := c.started, c.server
	c.mu.Unlock()

	if !started {
		return false
	}
	if server == "" {
		c.logger.Warn("time update skipped", "error", ErrNoServer)
		return false
	}

	offset, err := c.queryer.Query(server)
	if err != nil {
		c.logger.Warn("time update failed", "server", server, "error", err)
		return false
	}

	mono := c.clock.Now()
	corrected := c.wall().Add(offset).UTC()

	c.mu.Lock()
	c.base = corrected
	c.baseMono = mono
	c.synced = true
	c.mu.Unlock()

	c.logger.Debug("time updated", "server", server, "offset", offset)
	return true
}

// Synced reports whether any update has succeeded.
func (c *Client) Synced() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.synced
}

// UTC returns the current corrected UTC time.
func (c *Client) UTC() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.utcLocked()
}

func (c *Client) utcLocked() time.Time {
	return c.base.Add(c.clock.Now() - c.baseMono)
}

// Now returns the current local time in a fixed zone named after the rule
// in force.
func (c *Client) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	utc := c.utcLocked()
	t := c.activeRule(utc)
	return utc.In(time.FixedZone(t.Abbrev, t.OffsetMinutes*60))
}

// Abbrev returns the abbreviation of the rule currently in force.
func (c *Client) Abbrev() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeRule(c.utcLocked()).Abbrev
}

// Hours returns the local hour, 0-23.
func (c *Client) Hours() int { return c.Now().Hour() }

// Minutes returns the local minute, 0-59.
func (c *Client) Minutes() int { return c.Now().Minute() }

// Seconds returns the local second, 0-59.
func (c *Client) Seconds() int { return c.Now().Second() }

// activeRule returns the transition whose offset applies at utc.
func (c *Client) activeRule(utc time.Time) timezone.Transition {
	if c.dst.OffsetMinutes == c.std.OffsetMinutes {
		return c.std
	}
	if InDST(utc, c.dst, c.std) {
		return c.dst
	}
	return c.std
}

// InDST reports whether daylight-saving time is in force at utc. The DST
// start is expressed in standard local time and the end in daylight local
// time; southern hemisphere zones have the end before the start.
func InDST(utc time.Time, dst, std timezone.Transition) bool {
	year := utc.Year()
	start := transitionUTC(year, dst, std.OffsetMinutes)
	end := transitionUTC(year, std, dst.OffsetMinutes)

	if start.Before(end) {
		return !utc.Before(start) && utc.Before(end)
	}
	return !(!utc.Before(end) && utc.Before(start))
}

// transitionUTC returns the instant of t in year, given the offset in force
// before it.
func transitionUTC(year int, t timezone.Transition, offsetBefore int) time.Time {
	day := nthWeekday(year, t.Month, t.Week, t.Weekday)
	local := time.Date(year, t.Month, day, t.Hour, 0, 0, 0, time.UTC)
	return local.Add(-time.Duration(offsetBefore) * time.Minute)
}

// nthWeekday returns the day of month of the selected weekday occurrence.
func nthWeekday(year int, month time.Month, week timezone.Week, weekday time.Weekday) int {
	if week == timezone.Last {
		last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
		back := (int(last.Weekday()) - int(weekday) + 7) % 7
		return last.Day() - back
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	fwd := (int(weekday) - int(first.Weekday()) + 7) % 7
	return 1 + fwd + 7*(int(week)-1)
}
