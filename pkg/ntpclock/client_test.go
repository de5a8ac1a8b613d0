package ntpclock

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/netclock/netclock-go/pkg/softtimer"
	"github.com/netclock/netclock-go/pkg/timezone"
)

type fakeQueryer struct {
	offset  time.Duration
	err     error
	servers []string
}

func (q *fakeQueryer) Query(server string) (time.Duration, error) {
	q.servers = append(q.servers, server)
	return q.offset, q.err
}

var july = time.Date(2024, time.July, 1, 12, 0, 0, 0, time.UTC)

func newTestClient(q Queryer, mono *softtimer.Manual) *Client {
	return New(Config{
		Server:  "time.example.org",
		Queryer: q,
		Clock:   mono,
		Wall:    func() time.Time { return july },
	})
}

func TestNthWeekday(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		week    timezone.Week
		weekday time.Weekday
		want    int
	}{
		{"SecondSundayMarch2024", 2024, time.March, timezone.Second, time.Sunday, 10},
		{"FirstSundayNovember2024", 2024, time.November, timezone.First, time.Sunday, 3},
		{"LastSundayMarch2024", 2024, time.March, timezone.Last, time.Sunday, 31},
		{"LastSundayOctober2024", 2024, time.October, timezone.Last, time.Sunday, 27},
		{"LastSundayDecember2023", 2023, time.December, timezone.Last, time.Sunday, 31},
		{"FourthFridayFebruary2025", 2025, time.February, timezone.Fourth, time.Friday, 28},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, nthWeekday(tt.year, tt.month, tt.week, tt.weekday))
		})
	}
}

func TestInDSTUSEastern(t *testing.T) {
	r := timezone.Lookup(0)

	tests := []struct {
		name string
		utc  time.Time
		want bool
	}{
		{"Winter", time.Date(2024, time.January, 15, 12, 0, 0, 0, time.UTC), false},
		{"JustBeforeSpringForward", time.Date(2024, time.March, 10, 6, 59, 0, 0, time.UTC), false},
		{"SpringForward", time.Date(2024, time.March, 10, 7, 0, 0, 0, time.UTC), true},
		{"Summer", july, true},
		{"JustBeforeFallBack", time.Date(2024, time.November, 3, 5, 59, 0, 0, time.UTC), true},
		{"FallBack", time.Date(2024, time.November, 3, 6, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InDST(tt.utc, r.DST, r.STD))
		})
	}
}

func TestInDSTSouthernHemisphere(t *testing.T) {
	var r timezone.Rule
	for _, z := range timezone.All() {
		if z.Name == "Australia Eastern" {
			r = z
		}
	}

	assert.True(t, InDST(time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), r.DST, r.STD))
	assert.False(t, InDST(time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC), r.DST, r.STD))
	// DST ends 2024-04-07 03:00 AEDT = 2024-04-06 16:00 UTC.
	assert.True(t, InDST(time.Date(2024, time.April, 6, 15, 59, 0, 0, time.UTC), r.DST, r.STD))
	assert.False(t, InDST(time.Date(2024, time.April, 6, 16, 0, 0, 0, time.UTC), r.DST, r.STD))
	// DST starts 2024-10-06 02:00 AEST = 2024-10-05 16:00 UTC.
	assert.False(t, InDST(time.Date(2024, time.October, 5, 15, 59, 0, 0, time.UTC), r.DST, r.STD))
	assert.True(t, InDST(time.Date(2024, time.October, 5, 16, 0, 0, 0, time.UTC), r.DST, r.STD))
}

func TestUpdateRequiresBegin(t *testing.T) {
	q := &fakeQueryer{}
	c := newTestClient(q, softtimer.NewManual(0))

	assert.False(t, c.Update())
	assert.Empty(t, q.servers)

	c.Begin()
	assert.True(t, c.Update())
	assert.Equal(t, []string{"time.example.org"}, q.servers)

	c.Stop()
	assert.False(t, c.Update())
}

func TestUpdateAnchorsLocalClock(t *testing.T) {
	mono := softtimer.NewManual(10 * time.Second)
	c := newTestClient(&fakeQueryer{offset: 30 * time.Second}, mono)
	c.ApplyZone(timezone.Lookup(0))
	c.Begin()

	assert.False(t, c.Synced())
	assert.True(t, c.Update())
	assert.True(t, c.Synced())

	assert.Equal(t, 8, c.Hours())
	assert.Equal(t, 0, c.Minutes())
	assert.Equal(t, 30, c.Seconds())
	assert.Equal(t, "EDT", c.Abbrev())

	mono.Advance(65 * time.Minute)
	assert.Equal(t, 9, c.Hours())
	assert.Equal(t, 5, c.Minutes())
}

func TestClockFreeRunsAfterFailure(t *testing.T) {
	mono := softtimer.NewManual(0)
	q := &fakeQueryer{}
	c := newTestClient(q, mono)
	c.Begin()
	assert.True(t, c.Update())

	q.err = errors.New("timeout")
	mono.Advance(2 * time.Hour)
	assert.False(t, c.Update())

	// Still derived from the last good anchor.
	assert.Equal(t, 14, c.Hours())
	assert.Equal(t, 0, c.Minutes())
}

func TestUnsyncedClockStartsAtEpoch(t *testing.T) {
	mono := softtimer.NewManual(0)
	c := newTestClient(&fakeQueryer{}, mono)

	mono.Advance(90 * time.Minute)
	assert.Equal(t, 1, c.Hours())
	assert.Equal(t, 30, c.Minutes())
	assert.Equal(t, "UTC", c.Abbrev())
}

func TestUpdateWithoutServer(t *testing.T) {
	q := &fakeQueryer{}
	c := newTestClient(q, softtimer.NewManual(0))
	c.SetServer("")
	c.Begin()

	assert.False(t, c.Update())
	assert.Empty(t, q.servers)
}

func TestSetRuleIndividually(t *testing.T) {
	c := newTestClient(&fakeQueryer{}, softtimer.NewManual(0))
	c.SetRule(RuleDST, "CEST", timezone.Last, time.Sunday, time.March, 2, 120)
	c.SetRule(RuleSTD, "CET", timezone.Last, time.Sunday, time.October, 3, 60)
	c.Begin()
	c.Update()

	assert.Equal(t, 14, c.Hours())
	assert.Equal(t, "CEST", c.Abbrev())
	assert.Equal(t, "CEST", c.Now().Format("MST"))
}

func TestFixedZoneIgnoresTransitions(t *testing.T) {
	c := newTestClient(&fakeQueryer{}, softtimer.NewManual(0))
	c.ApplyZone(timezone.Lookup(3)) // US Arizona
	c.Begin()
	c.Update()

	assert.Equal(t, 5, c.Hours())
	assert.Equal(t, "MST", c.Abbrev())
}
