package interactive

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netclock/netclock-go/pkg/clock"
	"github.com/netclock/netclock-go/pkg/portal"
	"github.com/netclock/netclock-go/pkg/settings"
	"github.com/netclock/netclock-go/pkg/timezone"
)

type fakeClock struct {
	mode     clock.Mode
	cfg      settings.DeviceConfig
	syncOK   bool
	syncErr  error
	setErr   error
	resets   int
	restarts []string
}

func (f *fakeClock) Mode() clock.Mode { return f.mode }
func (f *fakeClock) URL() string      { return "http://192.168.1.50/" }
func (f *fakeClock) APSSID() string   { return "NetClock-ABCD" }

func (f *fakeClock) Status() portal.Status {
	return portal.Status{
		Mode:       f.mode.String(),
		ShortID:    "ABCD",
		Version:    "dev",
		Link:       "STATION_CONNECTED",
		SSID:       f.cfg.SSID,
		URL:        f.URL(),
		Time:       "9:05:00 PM",
		Abbrev:     "EDT",
		Zone:       timezone.Lookup(f.cfg.TimezoneIndex).Name,
		Server:     f.cfg.SyncServer,
		Synced:     true,
		Attempts:   3,
		Failures:   1,
		Uptime:     90 * time.Second,
		Brightness: f.cfg.Brightness,
	}
}

func (f *fakeClock) Config() settings.DeviceConfig { return f.cfg }

func (f *fakeClock) ForceSync() (bool, error) { return f.syncOK, f.syncErr }

func (f *fakeClock) OnSettingsUpdated(tz int, server string, brightness int) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.cfg.TimezoneIndex = tz
	f.cfg.SyncServer = server
	f.cfg.Brightness = brightness
	return nil
}

func (f *fakeClock) Reset() error {
	f.resets++
	return nil
}

func (f *fakeClock) RequestRestart(reason string) {
	f.restarts = append(f.restarts, reason)
}

type dropper struct{ drops int }

func (d *dropper) DropLink() { d.drops++ }

func newConsole(clk *fakeClock, cfg Config) (*Console, *bytes.Buffer) {
	var out bytes.Buffer
	source := func() Clock {
		if clk == nil {
			return nil
		}
		return clk
	}
	return NewWithWriter(source, cfg, &out), &out
}

func stationClock() *fakeClock {
	cfg := settings.Defaults()
	cfg.SSID = "Home"
	return &fakeClock{mode: clock.ModeStation, cfg: cfg, syncOK: true}
}

func TestExecuteQuit(t *testing.T) {
	c, out := newConsole(stationClock(), Config{})

	assert.False(t, c.Execute("   "))
	assert.True(t, c.Execute("quit"))
	assert.True(t, c.Execute("Q"))
	assert.Contains(t, out.String(), "Exiting...")
}

func TestExecuteUnknownCommand(t *testing.T) {
	c, out := newConsole(stationClock(), Config{})

	assert.False(t, c.Execute("frobnicate"))
	assert.Contains(t, out.String(), "Unknown command: frobnicate")
}

func TestExecuteWhileRestarting(t *testing.T) {
	c, out := newConsole(nil, Config{})

	c.Execute("status")
	assert.Contains(t, out.String(), "restarting")

	out.Reset()
	c.Execute("zones")
	assert.Contains(t, out.String(), timezone.Lookup(0).Name)
}

func TestStatus(t *testing.T) {
	c, out := newConsole(stationClock(), Config{})

	c.Execute("status")
	s := out.String()
	assert.Contains(t, s, "Mode:       STATION")
	assert.Contains(t, s, `Link:       STATION_CONNECTED "Home"`)
	assert.Contains(t, s, "Time:       9:05:00 PM EDT")
	assert.Contains(t, s, "Sync:       true (3 attempts, 1 failed)")
	assert.Contains(t, s, "Uptime:     1m30s")
}

func TestSync(t *testing.T) {
	clk := stationClock()
	c, out := newConsole(clk, Config{})

	c.Execute("sync")
	assert.Contains(t, out.String(), "Sync succeeded")

	out.Reset()
	clk.syncOK = false
	c.Execute("sync")
	assert.Contains(t, out.String(), "Sync failed")

	out.Reset()
	clk.syncErr = clock.ErrNotStation
	c.Execute("sync")
	assert.Contains(t, out.String(), "Error:")
}

func TestSetKeepsOmittedValues(t *testing.T) {
	clk := stationClock()
	clk.cfg.Brightness = 3
	c, out := newConsole(clk, Config{})

	c.Execute("set 4")
	assert.Equal(t, 4, clk.cfg.TimezoneIndex)
	assert.Equal(t, settings.DefaultSyncServer, clk.cfg.SyncServer)
	assert.Equal(t, 3, clk.cfg.Brightness)
	assert.Contains(t, out.String(), "Settings applied: zone "+timezone.Lookup(4).Name)

	c.Execute("set 2 - 6")
	assert.Equal(t, 2, clk.cfg.TimezoneIndex)
	assert.Equal(t, settings.DefaultSyncServer, clk.cfg.SyncServer)
	assert.Equal(t, 6, clk.cfg.Brightness)

	c.Execute("set 1 time.example.org")
	assert.Equal(t, "time.example.org", clk.cfg.SyncServer)
}

func TestSetRejectsBadInput(t *testing.T) {
	clk := stationClock()
	c, out := newConsole(clk, Config{})

	c.Execute("set")
	assert.Contains(t, out.String(), "Usage: set")

	out.Reset()
	c.Execute("set east")
	assert.Contains(t, out.String(), "Invalid zone")

	out.Reset()
	c.Execute("set 1 - bright")
	assert.Contains(t, out.String(), "Invalid brightness")

	out.Reset()
	clk.setErr = errors.New("disk full")
	c.Execute("set 1")
	assert.Contains(t, out.String(), "Error: disk full")
}

func TestQRByMode(t *testing.T) {
	clk := stationClock()
	c, out := newConsole(clk, Config{APPassphrase: "letmein1"})

	c.Execute("qr")
	assert.Contains(t, out.String(), "http://192.168.1.50/")

	out.Reset()
	clk.mode = clock.ModeAP
	c.Execute("qr")
	assert.Contains(t, out.String(), "WIFI:T:WPA;S:NetClock-ABCD;P:letmein1;;")

	out.Reset()
	clk.mode = clock.ModeBooting
	c.Execute("qr")
	assert.Contains(t, out.String(), "No QR code")
}

func TestDrop(t *testing.T) {
	c, out := newConsole(stationClock(), Config{})
	c.Execute("drop")
	assert.Contains(t, out.String(), "simulated radio")

	d := &dropper{}
	c, out = newConsole(stationClock(), Config{Radio: d})
	c.Execute("drop")
	assert.Equal(t, 1, d.drops)
	assert.Contains(t, out.String(), "Link dropped")
}

func TestResetAndRestart(t *testing.T) {
	clk := stationClock()
	c, _ := newConsole(clk, Config{})

	c.Execute("reset")
	c.Execute("restart")
	assert.Equal(t, 1, clk.resets)
	require.Len(t, clk.restarts, 1)
	assert.Equal(t, "console", clk.restarts[0])
}
