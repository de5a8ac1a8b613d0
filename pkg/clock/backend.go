package clock

import (
	"net"
	"time"

	"github.com/netclock/netclock-go/pkg/eventlog"
	"github.com/netclock/netclock-go/pkg/ota"
	"github.com/netclock/netclock-go/pkg/portal"
	"github.com/netclock/netclock-go/pkg/settings"
	"github.com/netclock/netclock-go/pkg/timezone"
	"github.com/netclock/netclock-go/pkg/wifi"
)

var (
	_ portal.APBackend      = (*Controller)(nil)
	_ portal.StationBackend = (*Controller)(nil)
)

// StatusTimeLayout formats the time on the status page.
const StatusTimeLayout = "3:04:05 PM"

// Networks lists nearby networks for the portal.
func (c *Controller) Networks() ([]wifi.Network, error) {
	return c.wifi.Scan()
}

// StageCredentials remembers the network selected in the portal.
func (c *Controller) StageCredentials(ssid, passphrase string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending.SSID = ssid
	c.pending.Passphrase = passphrase
}

// Pending returns the staged configuration.
func (c *Controller) Pending() settings.DeviceConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// OnConfigurationSaved clamps cfg, persists it and requests a restart.
func (c *Controller) OnConfigurationSaved(cfg settings.DeviceConfig) error {
	cfg = settings.Normalize(cfg, timezone.Len())

	c.mu.Lock()
	if err := settings.Save(c.store, cfg); err != nil {
		c.mu.Unlock()
		c.journal.Error("settings", err)
		return err
	}
	c.cfg = cfg
	c.pending = cfg
	c.mu.Unlock()

	c.journal.Config(eventlog.ConfigEvent{
		Action:        "save",
		SSID:          cfg.SSID,
		TimezoneIndex: cfg.TimezoneIndex,
		SyncServer:    cfg.SyncServer,
		Brightness:    cfg.Brightness,
	})
	c.logger.Info("configuration saved", "config", cfg.String())
	c.RequestRestart("configuration saved")
	return nil
}

// Config returns the active configuration.
func (c *Controller) Config() settings.DeviceConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// OnSettingsUpdated persists the clock settings and applies them without a
// restart: the zone rule and server are replaced, a sync is forced and the
// display is re-initialized at the new brightness. Out-of-range values are
// clamped.
func (c *Controller) OnSettingsUpdated(timezoneIndex int, syncServer string, brightness int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != ModeStation {
		return ErrNotStation
	}

	cfg := c.cfg
	cfg.TimezoneIndex = timezoneIndex
	cfg.SyncServer = syncServer
	cfg.Brightness = brightness
	cfg = settings.Normalize(cfg, timezone.Len())

	if err := settings.SaveClock(c.store, cfg.TimezoneIndex, cfg.SyncServer, cfg.Brightness); err != nil {
		c.journal.Error("settings", err)
		return err
	}
	c.cfg = cfg

	c.time.ApplyZone(timezone.Lookup(cfg.TimezoneIndex))
	c.time.SetServer(cfg.SyncServer)
	c.sched.ForceSync(c.clock.Now())
	c.initDisplay(cfg.Brightness)

	if err := c.advertiser.Update(c.serviceInfo()); err != nil {
		c.logger.Debug("mdns update failed", "error", err)
	}

	c.journal.Config(eventlog.ConfigEvent{
		Action:        "settings",
		TimezoneIndex: cfg.TimezoneIndex,
		SyncServer:    cfg.SyncServer,
		Brightness:    cfg.Brightness,
	})
	c.logger.Info("settings applied", "config", cfg.String())
	c.emit(Event{Type: EventSettingsApplied})
	return nil
}

// ForceSync runs a sync attempt now. It reports the result.
func (c *Controller) ForceSync() (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.mode != ModeStation {
		return false, ErrNotStation
	}
	return c.sched.ForceSync(c.clock.Now()), nil
}

// Reset clears the stored configuration, keeping the device ID, and
// requests a restart into AP mode.
func (c *Controller) Reset() error {
	c.mu.Lock()
	err := settings.Reset(c.store)
	c.mu.Unlock()
	if err != nil {
		c.journal.Error("settings", err)
		return err
	}

	c.journal.Config(eventlog.ConfigEvent{Action: "reset"})
	c.RequestRestart("configuration reset")
	return nil
}

// Status reports the state shown on the status page.
func (c *Controller) Status() portal.Status {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	sync := c.sched.Status()
	var ip net.IP
	if c.mode == ModeStation || c.mode == ModeAP {
		ip = c.wifi.LocalIP()
	}

	st := portal.Status{
		DeviceID:   c.deviceID,
		ShortID:    settings.ShortID(c.deviceID),
		Version:    c.config.Version,
		Mode:       c.mode.String(),
		Link:       c.wifi.State().String(),
		SSID:       c.cfg.SSID,
		URL:        c.url,
		Zone:       timezone.Lookup(c.cfg.TimezoneIndex).Name,
		Server:     c.time.Server(),
		Synced:     sync.LastResult,
		Attempts:   sync.Attempts,
		Failures:   sync.Failures,
		Uptime:     now - c.bootedAt,
		Brightness: c.cfg.Brightness,
	}
	if ip != nil {
		st.IP = ip.String()
	}
	if sync.HasSucceeded {
		st.LastSuccess = sync.LastSuccess
	}
	if c.mode == ModeStation {
		t := c.time.Now()
		st.Time = t.Format(StatusTimeLayout)
		st.Abbrev = c.time.Abbrev()
	}
	return st
}

// Uptime returns the time since Boot.
func (c *Controller) Uptime() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clock.Now() - c.bootedAt
}

// The update callbacks run from Tick via Updater.Handle, outside mu.

func (c *Controller) onUpdateStart(target ota.Target) {
	c.logger.Info("update start", "target", target.String())
	c.journal.Update(eventlog.UpdateEvent{Stage: "start", Target: target.String()})
	c.emit(Event{Type: EventUpdate})
}

func (c *Controller) onUpdateProgress(percent int) {
	c.logger.Debug("update progress", "percent", percent)
	c.emit(Event{Type: EventUpdate, Percent: percent})
}

func (c *Controller) onUpdateEnd(target ota.Target, path string) {
	c.logger.Info("update staged", "target", target.String(), "path", path)
	c.journal.Update(eventlog.UpdateEvent{Stage: "end", Target: target.String(), Percent: 100})
	c.emit(Event{Type: EventUpdate, Percent: 100})
	c.RequestRestart("firmware update")
}

func (c *Controller) onUpdateError(err *ota.Error) {
	c.logger.Error("update failed", "kind", err.Kind.String(), "error", err)
	c.journal.Update(eventlog.UpdateEvent{Stage: "error", Error: err.Error()})
	c.emit(Event{Type: EventUpdate, Error: err})
}
