package clock

import (
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/netclock/netclock-go/pkg/discovery"
	"github.com/netclock/netclock-go/pkg/display"
	"github.com/netclock/netclock-go/pkg/eventlog"
	"github.com/netclock/netclock-go/pkg/ntpclock"
	"github.com/netclock/netclock-go/pkg/ota"
	"github.com/netclock/netclock-go/pkg/persistence"
	"github.com/netclock/netclock-go/pkg/softtimer"
	"github.com/netclock/netclock-go/pkg/timesync"
	"github.com/netclock/netclock-go/pkg/timezone"
	"github.com/netclock/netclock-go/pkg/wifi"
)

// Controller defaults.
const (
	DefaultRenderInterval = 500 * time.Millisecond
	DefaultPollInterval   = 10 * time.Millisecond
	DefaultRestartDelay   = 2 * time.Second
	DefaultAPPrefix       = "NetClock-"
	DefaultHTTPPort       = 80
)

// Config configures a Controller.
type Config struct {
	// RenderInterval is the render window. Link check, sync and render run
	// at most once per window.
	RenderInterval time.Duration

	// PollInterval is the period of the Run loop.
	PollInterval time.Duration

	// RestartDelay is the pause between showing "conn" and restarting.
	RestartDelay time.Duration

	// PrimaryInterval is the healthy resync period. Zero uses the
	// scheduler default.
	PrimaryInterval time.Duration

	// APPrefix is prepended to the short device ID to name the
	// configuration network.
	APPrefix string

	// APPassphrase protects the configuration network. Empty means open.
	APPassphrase string

	// HTTPPort is where the pages are served; it appears in the status URL
	// and the mDNS registration.
	HTTPPort int

	// Version is reported on the status page and over mDNS.
	Version string

	// WiFi is the association policy.
	WiFi wifi.Config

	// Logger is the optional logger. If nil, logging is disabled.
	Logger *slog.Logger
}

// DefaultConfig returns the controller defaults.
func DefaultConfig() Config {
	return Config{
		RenderInterval:  DefaultRenderInterval,
		PollInterval:    DefaultPollInterval,
		RestartDelay:    DefaultRestartDelay,
		PrimaryInterval: timesync.DefaultPrimaryInterval,
		APPrefix:        DefaultAPPrefix,
		HTTPPort:        DefaultHTTPPort,
		Version:         "dev",
		WiFi:            wifi.DefaultConfig(),
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.RenderInterval <= 0 {
		return fmt.Errorf("%w: render interval must be positive", ErrInvalidConfig)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", ErrInvalidConfig)
	}
	if c.RestartDelay < 0 {
		return fmt.Errorf("%w: negative restart delay", ErrInvalidConfig)
	}
	if c.PrimaryInterval != 0 && c.PrimaryInterval < timesync.RetryInterval {
		return fmt.Errorf("%w: primary interval below retry interval %s", ErrInvalidConfig, timesync.RetryInterval)
	}
	if c.APPrefix == "" {
		return fmt.Errorf("%w: empty access point prefix", ErrInvalidConfig)
	}
	if n := len(c.APPassphrase); n > 0 && (n < 8 || n > 63) {
		return fmt.Errorf("%w: access point passphrase must be 8-63 characters", ErrInvalidConfig)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("%w: http port %d", ErrInvalidConfig, c.HTTPPort)
	}
	if err := c.WiFi.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// TimeSource is the corrected local clock. *ntpclock.Client implements it.
type TimeSource interface {
	timesync.Client

	Begin()
	Stop()
	SetServer(server string)
	Server() string
	ApplyZone(r timezone.Rule)
	Now() time.Time
	Abbrev() string
}

// Responder answers DNS on the configuration network.
type Responder interface {
	Start() error
	Stop() error
}

// Updater is the firmware update channel. *ota.Listener implements it.
type Updater interface {
	SetHandlers(h ota.Handlers)
	Start() error
	Stop() error

	// Handle delivers queued lifecycle events without blocking.
	Handle() int
}

// Deps are the collaborators of a Controller. Store, Radio and Display are
// required.
type Deps struct {
	Store   persistence.Namespace
	Radio   wifi.Radio
	Display display.Driver

	// Time defaults to an SNTP client on Clock.
	Time TimeSource

	// Clock defaults to the system monotonic clock.
	Clock softtimer.Clock

	// Sleep performs the blocking waits. Defaults to softtimer.Sleep.
	Sleep softtimer.Sleeper

	// Advertiser registers the status page. Defaults to no advertising.
	Advertiser discovery.Advertiser

	// CaptiveDNS builds the responder for the configuration network
	// answering with ip. Nil disables captive DNS.
	CaptiveDNS func(ip net.IP) Responder

	// Updater is optional.
	Updater Updater

	// Journal receives device events. Nil discards.
	Journal eventlog.Logger
}

var (
	_ TimeSource = (*ntpclock.Client)(nil)
	_ Updater    = (*ota.Listener)(nil)
)
