package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/netclock/netclock-go/cmd/netclock/interactive"
	"github.com/netclock/netclock-go/pkg/captive"
	"github.com/netclock/netclock-go/pkg/clock"
	"github.com/netclock/netclock-go/pkg/discovery"
	"github.com/netclock/netclock-go/pkg/display"
	"github.com/netclock/netclock-go/pkg/display/term"
	"github.com/netclock/netclock-go/pkg/display/tm1640"
	"github.com/netclock/netclock-go/pkg/eventlog"
	"github.com/netclock/netclock-go/pkg/ota"
	"github.com/netclock/netclock-go/pkg/persistence"
	"github.com/netclock/netclock-go/pkg/settings"
	"github.com/netclock/netclock-go/pkg/wifi"
)

type runFlags struct {
	logLevel        string
	journal         string
	radio           string
	iface           string
	simNetworks     []string
	display         string
	clockPin        string
	dataPin         string
	powerPin        string
	httpPort        int
	captiveAddr     string
	updateAddr      string
	updatePassword  string
	apPassphrase    string
	primaryInterval time.Duration
	noMDNS          bool
	interactive     bool
}

var rf runFlags

func newRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the clock",
		RunE:  runE,
	}
	f := cmd.Flags()
	f.StringVar(&rf.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	f.StringVar(&rf.journal, "journal", "", "Event journal path (default <data-dir>/journal.cbor)")
	f.StringVar(&rf.radio, "radio", "", "Radio backend (sim, nmcli)")
	f.StringVar(&rf.iface, "interface", "", "Wireless interface for nmcli and mDNS")
	f.StringSliceVar(&rf.simNetworks, "sim-network", nil, "Simulated network as ssid[:passphrase] (repeatable)")
	f.StringVar(&rf.display, "display", "", "Display driver (term, tm1640)")
	f.StringVar(&rf.clockPin, "clock-pin", "", "TM1640 clock pin")
	f.StringVar(&rf.dataPin, "data-pin", "", "TM1640 data pin")
	f.StringVar(&rf.powerPin, "power-pin", "", "TM1640 power-reset pin")
	f.IntVar(&rf.httpPort, "http-port", 0, "HTTP port of the portal and status pages")
	f.StringVar(&rf.captiveAddr, "captive-addr", "", "Listen address of the captive DNS responder")
	f.StringVar(&rf.updateAddr, "update-addr", "", "Listen address of the firmware update channel")
	f.StringVar(&rf.updatePassword, "update-password", "", "Password of the firmware update channel")
	f.StringVar(&rf.apPassphrase, "ap-passphrase", "", "Passphrase of the setup access point (empty for open)")
	f.DurationVar(&rf.primaryInterval, "primary-interval", 0, "Interval between successful syncs")
	f.BoolVar(&rf.noMDNS, "no-mdns", false, "Do not advertise the status page over mDNS")
	f.BoolVarP(&rf.interactive, "interactive", "i", false, "Start the interactive console")
	return cmd
}

// apply overrides opts with the flags that were set.
func (r runFlags) apply(cmd *cobra.Command, opts *Options) error {
	f := cmd.Flags()
	set := func(name string, fn func()) {
		if f.Changed(name) {
			fn()
		}
	}
	set("log-level", func() { opts.LogLevel = r.logLevel })
	set("journal", func() { opts.Journal = r.journal })
	set("radio", func() { opts.Radio = r.radio })
	set("interface", func() { opts.Interface = r.iface })
	set("display", func() { opts.Display = r.display })
	set("clock-pin", func() { opts.ClockPin = r.clockPin })
	set("data-pin", func() { opts.DataPin = r.dataPin })
	set("power-pin", func() { opts.PowerPin = r.powerPin })
	set("http-port", func() { opts.HTTPPort = r.httpPort })
	set("captive-addr", func() { opts.CaptiveAddr = r.captiveAddr })
	set("update-addr", func() { opts.UpdateAddr = r.updateAddr })
	set("update-password", func() { opts.UpdatePassword = r.updatePassword })
	set("ap-passphrase", func() { opts.APPassphrase = r.apPassphrase })
	set("primary-interval", func() { opts.PrimaryInterval = r.primaryInterval })
	set("no-mdns", func() { opts.NoMDNS = r.noMDNS })
	set("interactive", func() { opts.Interactive = r.interactive })

	for _, s := range r.simNetworks {
		n, err := ParseSimNetwork(s)
		if err != nil {
			return err
		}
		opts.SimNetworks = append(opts.SimNetworks, n)
	}
	return nil
}

// ParseSimNetwork parses "ssid[:passphrase]".
func ParseSimNetwork(s string) (SimNetwork, error) {
	ssid, pass, _ := strings.Cut(s, ":")
	if ssid == "" {
		return SimNetwork{}, fmt.Errorf("invalid network %q: empty ssid", s)
	}
	return SimNetwork{SSID: ssid, Passphrase: pass, Signal: -50}, nil
}

func runE(cmd *cobra.Command, _ []string) error {
	opts, err := loadOptions()
	if err != nil {
		return err
	}
	if err := rf.apply(cmd, &opts); err != nil {
		return err
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return run(ctx, opts, cmd.OutOrStdout())
}

// setupLogging returns a text logger at the given level.
func setupLogging(level string, out io.Writer) (*slog.Logger, error) {
	var l slog.Level
	if level != "" {
		if err := l.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q", level)
		}
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: l})), nil
}

// current holds the controller of the running boot.
type current struct {
	ctrl atomic.Pointer[clock.Controller]
}

func (c *current) get() interactive.Clock {
	if ctrl := c.ctrl.Load(); ctrl != nil {
		return ctrl
	}
	return nil
}

// ServeHTTP hands requests to the controller of the running boot.
func (c *current) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctrl := c.ctrl.Load()
	if ctrl == nil {
		http.Error(w, "restarting", http.StatusServiceUnavailable)
		return
	}
	ctrl.Handler().ServeHTTP(w, r)
}

// run boots the clock and boots it again after every restart until ctx is
// done.
func run(ctx context.Context, opts Options, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var console *interactive.Console
	var cur current
	var radio wifi.Radio
	var sim *wifi.SimRadio

	if opts.Radio == "sim" {
		sim = wifi.NewSimRadio()
		for _, n := range opts.SimNetworks {
			sim.AddNetwork(n.SSID, n.Passphrase, n.Signal)
		}
		radio = sim
	} else {
		radio = wifi.NewNMCLIRadio(opts.Interface, wifi.ExecRunner)
	}

	if opts.Interactive {
		cfg := interactive.Config{APPassphrase: opts.APPassphrase}
		if sim != nil {
			cfg.Radio = sim
		}
		var err error
		console, err = interactive.New(cur.get, cfg)
		if err != nil {
			return err
		}
		out = console.Stdout()
	}

	logger, err := setupLogging(opts.LogLevel, out)
	if err != nil {
		return err
	}

	store, err := persistence.OpenFileStore(opts.DataDir, settings.Namespace)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}

	driver, err := openDisplay(opts, out, logger)
	if err != nil {
		return err
	}

	journalPath := opts.Journal
	if journalPath == "" {
		journalPath = filepath.Join(opts.DataDir, "journal.cbor")
	}
	fileLog, err := eventlog.NewFileLogger(journalPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer fileLog.Close()
	journal := eventlog.NewMultiLogger(fileLog, eventlog.NewSlogAdapter(logger.With("component", "journal")))

	updCfg := ota.DefaultConfig()
	updCfg.Addr = opts.UpdateAddr
	updCfg.Password = opts.UpdatePassword
	updCfg.PasswordHash = []byte(opts.UpdatePasswordHash)
	updCfg.StageDir = filepath.Join(opts.DataDir, "staged")
	updCfg.Logger = logger.With("component", "ota")
	updater, err := ota.New(updCfg)
	if err != nil {
		return err
	}

	var advertiser discovery.Advertiser = discovery.NoopAdvertiser{}
	if !opts.NoMDNS {
		advCfg := discovery.DefaultAdvertiserConfig()
		advCfg.Interface = opts.Interface
		advCfg.Logger = logger.With("component", "mdns")
		advertiser = discovery.NewMDNSAdvertiser(advCfg)
	}

	captiveLogger := logger.With("component", "captive")
	newCaptive := func(ip net.IP) clock.Responder {
		return captive.New(opts.CaptiveAddr, ip, captiveLogger)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.HTTPPort),
		Handler:           &cur,
		ReadHeaderTimeout: 10 * time.Second,
	}
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", err)
			cancel()
		}
	}()
	defer srv.Close()

	if console != nil {
		go console.Run(ctx, cancel)
	}

	cfg := opts.ControllerConfig()
	cfg.Logger = logger
	deps := clock.Deps{
		Store:      store,
		Radio:      radio,
		Display:    driver,
		Advertiser: advertiser,
		CaptiveDNS: newCaptive,
		Updater:    updater,
		Journal:    journal,
	}

	for boot := 1; ; boot++ {
		ctrl, err := clock.New(cfg, deps)
		if err != nil {
			return err
		}
		ctrl.OnEvent(eventPrinter(out, opts.APPassphrase))
		cur.ctrl.Store(ctrl)

		logger.Info("booting", "boot", boot, "version", version)
		err = ctrl.Run(ctx)
		cur.ctrl.Store(nil)

		switch {
		case errors.Is(err, clock.ErrRestart):
			logger.Info("restarting", "reason", ctrl.RestartReason())
		case ctx.Err() != nil:
			logger.Info("stopped")
			return nil
		default:
			return err
		}
	}
}

func openDisplay(opts Options, out io.Writer, logger *slog.Logger) (display.Driver, error) {
	if opts.Display == "tm1640" {
		d, err := tm1640.Open(tm1640.Config{
			Clock:  opts.ClockPin,
			Data:   opts.DataPin,
			Power:  opts.PowerPin,
			Logger: logger.With("component", "tm1640"),
		})
		if err != nil {
			return nil, fmt.Errorf("open display: %w", err)
		}
		return d, nil
	}
	return term.New(out), nil
}

// eventPrinter shows the join code when the portal opens and the status
// page address when the clock joins a network.
func eventPrinter(out io.Writer, passphrase string) clock.EventHandler {
	return func(e clock.Event) {
		switch e.Type {
		case clock.EventModeChanged:
			switch e.Mode {
			case clock.ModeAP:
				printAPJoin(out, e, passphrase)
			case clock.ModeStation:
				fmt.Fprintf(out, "Status page: %s\n", e.URL)
			}
		case clock.EventUpdate:
			if e.Error != nil {
				fmt.Fprintf(out, "Update failed: %v\n", e.Error)
			} else if e.Percent > 0 && e.Percent%25 == 0 {
				fmt.Fprintf(out, "Update: %d%%\n", e.Percent)
			}
		}
	}
}

func printAPJoin(out io.Writer, e clock.Event, passphrase string) {
	fmt.Fprintf(out, "Setup network: %s, then open %s\n", e.SSID, e.URL)
	payload := discovery.WiFiJoinPayload(e.SSID, passphrase)
	if text, err := discovery.QRText(payload); err == nil {
		fmt.Fprint(out, text)
	}
}
