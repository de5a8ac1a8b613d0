package clock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/netclock/netclock-go/pkg/discovery"
	"github.com/netclock/netclock-go/pkg/display"
	"github.com/netclock/netclock-go/pkg/eventlog"
	"github.com/netclock/netclock-go/pkg/ntpclock"
	"github.com/netclock/netclock-go/pkg/ota"
	"github.com/netclock/netclock-go/pkg/persistence"
	"github.com/netclock/netclock-go/pkg/portal"
	"github.com/netclock/netclock-go/pkg/settings"
	"github.com/netclock/netclock-go/pkg/softtimer"
	"github.com/netclock/netclock-go/pkg/timesync"
	"github.com/netclock/netclock-go/pkg/timezone"
	"github.com/netclock/netclock-go/pkg/wifi"
)

// Texts shown on the display.
const (
	TextSplash   = "HI"
	TextAP       = "AP"
	TextLinkLost = "conn"
)

// Controller owns the mode decision and the per-tick work of one boot.
type Controller struct {
	config Config
	logger *slog.Logger

	store      persistence.Namespace
	wifi       *wifi.Manager
	time       TimeSource
	sched      *timesync.Scheduler
	driver     display.Driver
	renderer   *display.Renderer
	clock      softtimer.Clock
	gate       *softtimer.Gate
	sleep      softtimer.Sleeper
	advertiser discovery.Advertiser
	newCaptive func(net.IP) Responder
	updater    Updater
	journal    *eventlog.Recorder

	restart chan string

	// mu guards the display driver, the store writer, the scheduler and
	// everything below.
	mu        sync.Mutex
	mode      Mode
	cfg       settings.DeviceConfig
	pending   settings.DeviceConfig
	deviceID  string
	apSSID    string
	url       string
	bootedAt  time.Duration
	handler   http.Handler
	captive   Responder
	restartBy string

	hmu      sync.Mutex
	handlers []EventHandler
}

// New creates a controller. Nothing touches the hardware until Boot.
func New(config Config, deps Deps) (*Controller, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	switch {
	case deps.Store == nil:
		return nil, fmt.Errorf("%w: store", ErrMissingDep)
	case deps.Radio == nil:
		return nil, fmt.Errorf("%w: radio", ErrMissingDep)
	case deps.Display == nil:
		return nil, fmt.Errorf("%w: display", ErrMissingDep)
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	clk := deps.Clock
	if clk == nil {
		clk = softtimer.NewSystemClock()
	}
	sleep := deps.Sleep
	if sleep == nil {
		sleep = softtimer.Sleep
	}
	src := deps.Time
	if src == nil {
		src = ntpclock.New(ntpclock.Config{Clock: clk, Logger: logger.With("component", "ntp")})
	}
	adv := deps.Advertiser
	if adv == nil {
		adv = discovery.NoopAdvertiser{}
	}

	wcfg := config.WiFi
	if wcfg.Sleep == nil {
		wcfg.Sleep = sleep
	}
	if wcfg.Logger == nil {
		wcfg.Logger = logger.With("component", "wifi")
	}

	c := &Controller{
		config:     config,
		logger:     logger,
		store:      deps.Store,
		wifi:       wifi.NewManager(deps.Radio, wcfg),
		time:       src,
		driver:     deps.Display,
		renderer:   display.NewRenderer(logger.With("component", "display")),
		clock:      clk,
		gate:       softtimer.NewGate(config.RenderInterval),
		sleep:      sleep,
		advertiser: adv,
		newCaptive: deps.CaptiveDNS,
		updater:    deps.Updater,
		journal:    eventlog.NewRecorder(deps.Journal, uuid.New().String(), ""),
		restart:    make(chan string, 1),
		mode:       ModeBooting,
	}
	c.sched = timesync.NewScheduler(src, timesync.Config{
		PrimaryInterval: config.PrimaryInterval,
		Logger:          logger.With("component", "timesync"),
	})
	c.sched.OnAttempt(c.onSyncAttempt)
	c.wifi.OnStateChange(c.onLinkState)
	if c.updater != nil {
		c.updater.SetHandlers(ota.Handlers{
			OnStart:    c.onUpdateStart,
			OnProgress: c.onUpdateProgress,
			OnEnd:      c.onUpdateEnd,
			OnError:    c.onUpdateError,
		})
	}
	return c, nil
}

// OnEvent registers an event handler.
func (c *Controller) OnEvent(handler EventHandler) {
	c.hmu.Lock()
	defer c.hmu.Unlock()
	c.handlers = append(c.handlers, handler)
}

func (c *Controller) emit(e Event) {
	e.Uptime = c.clock.Now()
	c.hmu.Lock()
	handlers := append([]EventHandler(nil), c.handlers...)
	c.hmu.Unlock()
	for _, h := range handlers {
		h(e)
	}
}

// Mode returns the current mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// BootID identifies this boot in the journal.
func (c *Controller) BootID() string {
	return c.journal.BootID()
}

// URL returns the address of the served pages, or "" before Boot.
func (c *Controller) URL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.url
}

// APSSID returns the configuration network name in AP mode.
func (c *Controller) APSSID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apSSID
}

// Boot loads the configuration and enters station or AP mode. It blocks
// for the association retry budget when credentials are stored.
func (c *Controller) Boot(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode != ModeBooting {
		return ErrAlreadyBooted
	}
	c.bootedAt = c.clock.Now()

	c.cfg = settings.Load(c.store, timezone.Len())
	id, err := settings.EnsureDeviceID(c.store)
	if err != nil {
		// Keep running under a temporary identity; the next boot retries.
		c.logger.Warn("device id not stored", "error", err)
		c.journal.Error("settings", err)
		id = uuid.New().String()
	}
	c.deviceID = id
	c.journal.SetDeviceID(id)
	c.logger.Info("booting", "device", settings.ShortID(id), "config", c.cfg.String())

	c.initDisplay(c.cfg.Brightness)
	c.showText(TextSplash)

	if !c.cfg.HasCredentials() {
		return c.enterAP(ctx, "no credentials")
	}

	if err := c.wifi.Connect(c.cfg.SSID, c.cfg.Passphrase, c.blinkAttempt); err != nil {
		c.logger.Warn("station mode unavailable", "ssid", c.cfg.SSID, "error", err)
		c.journal.Error("wifi", err)
		return c.enterAP(ctx, "association failed")
	}
	return c.enterStation(ctx)
}

// blinkAttempt lights the dot at position 2 on odd attempts.
func (c *Controller) blinkAttempt(attempt int) {
	pattern := display.SegmentOff
	if attempt%2 == 1 {
		pattern = display.SegmentDot
	}
	if err := c.driver.SetSegments(pattern, display.PosMinuteTens); err != nil {
		c.logger.Debug("display write failed", "error", err)
	}
}

func (c *Controller) enterStation(ctx context.Context) error {
	c.time.ApplyZone(timezone.Lookup(c.cfg.TimezoneIndex))
	c.time.SetServer(c.cfg.SyncServer)
	c.time.Begin()
	c.sched.Start(c.clock.Now())

	ip := c.wifi.LocalIP()
	c.url = c.pageURL(ip)

	if err := c.advertiser.Advertise(ctx, c.serviceInfo()); err != nil {
		c.logger.Warn("mdns registration failed", "error", err)
		c.journal.Error("discovery", err)
	}
	if c.updater != nil {
		if err := c.updater.Start(); err != nil {
			c.logger.Warn("update listener unavailable", "error", err)
			c.journal.Error("ota", err)
		}
	}

	c.handler = portal.NewStationHandler(c, portal.StationConfig{Logger: c.logger.With("component", "http")})
	c.setMode(ModeStation, "associated")
	c.logger.Info("station mode", "ssid", c.cfg.SSID, "ip", ip, "url", c.url)
	return nil
}

func (c *Controller) enterAP(ctx context.Context, reason string) error {
	ssid := c.config.APPrefix + settings.ShortID(c.deviceID)
	ip, err := c.wifi.StartAP(ssid, c.config.APPassphrase)
	if err != nil {
		c.journal.Error("wifi", err)
		return err
	}
	c.apSSID = ssid
	c.url = c.pageURL(ip)
	c.pending = c.cfg

	if c.newCaptive != nil {
		r := c.newCaptive(ip)
		if err := r.Start(); err != nil {
			c.logger.Warn("captive dns unavailable", "error", err)
			c.journal.Error("captive", err)
		} else {
			c.captive = r
		}
	}

	c.handler = portal.NewAPHandler(c, portal.APConfig{
		Root:       c.url,
		DeviceName: ssid,
		Logger:     c.logger.With("component", "http"),
	})
	c.showText(TextAP)
	c.setMode(ModeAP, reason)
	c.logger.Info("configuration portal", "ssid", ssid, "url", c.url, "reason", reason)
	return nil
}

func (c *Controller) pageURL(ip net.IP) string {
	if ip == nil {
		return ""
	}
	return discovery.StatusURL(ip, c.config.HTTPPort)
}

func (c *Controller) serviceInfo() *discovery.ServiceInfo {
	return &discovery.ServiceInfo{
		ShortID:       settings.ShortID(c.deviceID),
		DeviceID:      c.deviceID,
		TimezoneIndex: c.cfg.TimezoneIndex,
		Version:       c.config.Version,
		Port:          c.config.HTTPPort,
	}
}

// setMode is called with mu held.
func (c *Controller) setMode(to Mode, reason string) {
	from := c.mode
	c.mode = to
	c.journal.State(eventlog.StateEntityMode, from.String(), to.String(), reason)

	ssid := c.cfg.SSID
	if to == ModeAP {
		ssid = c.apSSID
	}
	c.emit(Event{Type: EventModeChanged, Mode: to, URL: c.url, SSID: ssid, Reason: reason})
}

// Tick runs one poll iteration: it services the update channel and, once
// per render window in station mode, checks the link, runs the sync
// scheduler and renders the time. It returns ErrRestart after link loss.
func (c *Controller) Tick() error {
	if c.updater != nil {
		c.updater.Handle()
	}

	c.mu.Lock()
	if c.mode != ModeStation {
		c.mu.Unlock()
		return nil
	}
	now := c.clock.Now()
	if !c.gate.Due(now) {
		c.mu.Unlock()
		return nil
	}
	if !c.wifi.CheckLink() {
		c.mu.Unlock()
		return c.OnLinkLost()
	}

	ok := c.sched.MaybeSync(now)
	t := c.time.Now()
	frame := c.renderer.Next(t.Hour(), t.Minute(), ok)
	if err := c.renderer.Apply(c.driver, frame); err != nil {
		c.logger.Debug("display write failed", "error", err)
	}
	c.mu.Unlock()
	return nil
}

// OnLinkLost shows the link-lost text, waits RestartDelay and returns
// ErrRestart.
func (c *Controller) OnLinkLost() error {
	c.mu.Lock()
	c.showText(TextLinkLost)
	c.mu.Unlock()

	c.logger.Warn("link lost, restarting", "delay", c.config.RestartDelay)
	c.sleep(c.config.RestartDelay)
	c.noteRestart("link lost")
	return ErrRestart
}

// RequestRestart asks Run to return ErrRestart. Only the first reason is
// kept.
func (c *Controller) RequestRestart(reason string) {
	select {
	case c.restart <- reason:
		c.noteRestart(reason)
	default:
	}
}

func (c *Controller) noteRestart(reason string) {
	c.mu.Lock()
	if c.restartBy == "" {
		c.restartBy = reason
	}
	c.mu.Unlock()
	c.logger.Info("restart requested", "reason", reason)
	c.emit(Event{Type: EventRestartRequested, Reason: reason})
}

// RestartReason returns the reason of the first restart request, or "".
func (c *Controller) RestartReason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.restartBy
}

// Run boots and polls until the context is done or a restart is due. It
// returns ErrRestart or the context error, and always tears down the
// listeners, the registration and the radio.
func (c *Controller) Run(ctx context.Context) error {
	defer c.Shutdown()

	if err := c.Boot(ctx); err != nil {
		return fmt.Errorf("boot: %w", err)
	}

	ticker := time.NewTicker(c.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.restart:
			return ErrRestart
		case <-ticker.C:
			if err := c.Tick(); err != nil {
				return err
			}
		}
	}
}

// Shutdown releases everything Boot acquired. It is safe to call more than
// once.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.mode == ModeStopped {
		return
	}
	var errs []error
	if c.captive != nil {
		errs = append(errs, c.captive.Stop())
		c.captive = nil
	}
	if c.mode == ModeStation {
		errs = append(errs, c.advertiser.Stop())
		if c.updater != nil {
			errs = append(errs, c.updater.Stop())
		}
		c.time.Stop()
	}
	errs = append(errs, c.wifi.Shutdown())
	if err := errors.Join(errs...); err != nil {
		c.logger.Warn("shutdown incomplete", "error", err)
	}
	c.handler = nil
	c.setMode(ModeStopped, "shutdown")
}

// Handler serves the pages of the current mode. Before Boot completes and
// after Shutdown it answers 503.
func (c *Controller) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c.mu.Lock()
		h := c.handler
		c.mu.Unlock()
		if h == nil {
			http.Error(w, "starting", http.StatusServiceUnavailable)
			return
		}
		h.ServeHTTP(w, r)
	})
}

// initDisplay and showText are called with mu held. Display errors are
// logged and otherwise ignored.
func (c *Controller) initDisplay(brightness int) {
	if err := c.driver.Init(true, brightness); err != nil {
		c.logger.Warn("display init failed", "error", err)
	}
}

func (c *Controller) showText(text string) {
	if err := c.driver.ShowText(text); err != nil {
		c.logger.Debug("display write failed", "text", text, "error", err)
	}
}

func (c *Controller) onLinkState(from, to wifi.State) {
	c.journal.State(eventlog.StateEntityLink, from.String(), to.String(), "")
	c.emit(Event{Type: EventLinkChanged, Link: to})
}

// onSyncAttempt runs inside the scheduler with mu held.
func (c *Controller) onSyncAttempt(a timesync.Attempt) {
	c.journal.Sync(a.Trigger.String(), c.time.Server(), a.Success, a.At)
	c.emit(Event{Type: EventSyncAttempt, Sync: a})
}
