// Package interactive provides the interactive console of netclock.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/netclock/netclock-go/pkg/clock"
	"github.com/netclock/netclock-go/pkg/discovery"
	"github.com/netclock/netclock-go/pkg/portal"
	"github.com/netclock/netclock-go/pkg/settings"
	"github.com/netclock/netclock-go/pkg/timezone"
)

// Clock is the part of the controller the console drives.
type Clock interface {
	Mode() clock.Mode
	URL() string
	APSSID() string
	Status() portal.Status
	Config() settings.DeviceConfig
	ForceSync() (bool, error)
	OnSettingsUpdated(timezoneIndex int, syncServer string, brightness int) error
	Reset() error
	RequestRestart(reason string)
}

var _ Clock = (*clock.Controller)(nil)

// Source returns the running controller, or nil between boots.
type Source func() Clock

// LinkDropper is implemented by simulated radios.
type LinkDropper interface {
	DropLink()
}

// Config configures a Console.
type Config struct {
	// APPassphrase is encoded in the join QR code.
	APPassphrase string

	// Radio enables the drop command when set.
	Radio LinkDropper
}

// Console handles interactive mode.
type Console struct {
	source Source
	config Config
	out    io.Writer
	rl     *readline.Instance
}

// New creates a console reading from the terminal.
func New(source Source, cfg Config) (*Console, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "clock> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	c := NewWithWriter(source, cfg, rl.Stdout())
	c.rl = rl
	return c, nil
}

// NewWithWriter creates a console without a terminal. Commands are passed
// to Execute.
func NewWithWriter(source Source, cfg Config, out io.Writer) *Console {
	return &Console{source: source, config: cfg, out: out}
}

// Stdout returns a writer that does not interfere with the prompt.
func (c *Console) Stdout() io.Writer {
	return c.out
}

// Run reads commands until quit, EOF or ctx is done. cancel is called when
// the user quits.
func (c *Console) Run(ctx context.Context, cancel context.CancelFunc) {
	defer c.rl.Close()

	c.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := c.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			fmt.Fprintln(c.out, "Exiting...")
			cancel()
			return
		}

		if c.Execute(line) {
			cancel()
			return
		}
	}
}

// Execute runs one command line. It reports whether the user asked to quit.
func (c *Console) Execute(line string) bool {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return false
	}
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		c.printHelp()
	case "zones", "z":
		c.cmdZones()
	case "quit", "exit", "q":
		fmt.Fprintln(c.out, "Exiting...")
		return true
	default:
		clk := c.source()
		if clk == nil {
			fmt.Fprintln(c.out, "Clock is restarting, try again")
			return false
		}
		c.dispatch(clk, cmd, args)
	}
	return false
}

func (c *Console) dispatch(clk Clock, cmd string, args []string) {
	switch cmd {
	case "status", "s":
		c.cmdStatus(clk)
	case "sync":
		c.cmdSync(clk)
	case "set":
		c.cmdSet(clk, args)
	case "qr":
		c.cmdQR(clk)
	case "drop":
		c.cmdDrop()
	case "reset":
		c.cmdReset(clk)
	case "restart":
		clk.RequestRestart("console")
		fmt.Fprintln(c.out, "Restart requested")
	default:
		fmt.Fprintf(c.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `
Clock Commands:
  status                          - Show clock status
  sync                            - Synchronize now
  set <zone> [server] [brightness] - Change clock settings
  zones                           - List time zones
  qr                              - Show the join or status QR code
  drop                            - Drop the simulated link
  reset                           - Clear the configuration and restart
  restart                         - Restart the clock

  help                            - Show this help
  quit                            - Exit`)
}

func (c *Console) cmdStatus(clk Clock) {
	st := clk.Status()
	fmt.Fprintf(c.out, "Mode:       %s\n", st.Mode)
	fmt.Fprintf(c.out, "Device:     %s (%s)\n", st.ShortID, st.Version)
	fmt.Fprintf(c.out, "Link:       %s", st.Link)
	if st.SSID != "" {
		fmt.Fprintf(c.out, " %q", st.SSID)
	}
	fmt.Fprintln(c.out)
	if st.URL != "" {
		fmt.Fprintf(c.out, "URL:        %s\n", st.URL)
	}
	if st.Time != "" {
		fmt.Fprintf(c.out, "Time:       %s %s\n", st.Time, st.Abbrev)
	}
	fmt.Fprintf(c.out, "Zone:       %s\n", st.Zone)
	fmt.Fprintf(c.out, "Server:     %s\n", st.Server)
	fmt.Fprintf(c.out, "Brightness: %d\n", st.Brightness)
	fmt.Fprintf(c.out, "Sync:       %t (%d attempts, %d failed)\n", st.Synced, st.Attempts, st.Failures)
	fmt.Fprintf(c.out, "Uptime:     %s\n", st.Uptime)
}

func (c *Console) cmdSync(clk Clock) {
	ok, err := clk.ForceSync()
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	if ok {
		fmt.Fprintln(c.out, "Sync succeeded")
	} else {
		fmt.Fprintln(c.out, "Sync failed")
	}
}

// cmdSet changes the zone and optionally the server and brightness. Omitted
// values keep their current setting; "-" keeps the server.
func (c *Console) cmdSet(clk Clock, args []string) {
	if len(args) == 0 || len(args) > 3 {
		fmt.Fprintln(c.out, "Usage: set <zone> [server] [brightness]")
		return
	}
	cfg := clk.Config()

	zone, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(c.out, "Invalid zone: %s\n", args[0])
		return
	}
	server := cfg.SyncServer
	if len(args) > 1 && args[1] != "-" {
		server = args[1]
	}
	brightness := cfg.Brightness
	if len(args) > 2 {
		brightness, err = strconv.Atoi(args[2])
		if err != nil {
			fmt.Fprintf(c.out, "Invalid brightness: %s\n", args[2])
			return
		}
	}

	if err := clk.OnSettingsUpdated(zone, server, brightness); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	applied := clk.Config()
	fmt.Fprintf(c.out, "Settings applied: zone %s, server %s, brightness %d\n",
		timezone.Lookup(applied.TimezoneIndex).Name, applied.SyncServer, applied.Brightness)
}

func (c *Console) cmdZones() {
	for i, r := range timezone.All() {
		fmt.Fprintf(c.out, "  %2d  %s\n", i, r.Name)
	}
}

// cmdQR prints the network join code in AP mode and the status page URL in
// station mode.
func (c *Console) cmdQR(clk Clock) {
	var content string
	switch clk.Mode() {
	case clock.ModeAP:
		content = discovery.WiFiJoinPayload(clk.APSSID(), c.config.APPassphrase)
	case clock.ModeStation:
		content = clk.URL()
	}
	if content == "" {
		fmt.Fprintln(c.out, "No QR code in this mode")
		return
	}
	text, err := discovery.QRText(content)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprint(c.out, text)
	fmt.Fprintln(c.out, content)
}

func (c *Console) cmdDrop() {
	if c.config.Radio == nil {
		fmt.Fprintln(c.out, "drop needs the simulated radio")
		return
	}
	c.config.Radio.DropLink()
	fmt.Fprintln(c.out, "Link dropped")
}

func (c *Console) cmdReset(clk Clock) {
	if err := clk.Reset(); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "Configuration cleared, restarting")
}
