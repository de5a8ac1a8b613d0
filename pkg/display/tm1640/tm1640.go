// Package tm1640 drives a TM1640 LED controller over two bit-banged GPIO
// lines.
package tm1640

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/netclock/netclock-go/pkg/display"
	"github.com/netclock/netclock-go/pkg/softtimer"
)

// Controller commands.
const (
	cmdFixedAddress = 0x44
	cmdAddress      = 0xC0
	cmdDisplayOff   = 0x80
	cmdDisplayOn    = 0x88
)

// Positions is the number of grid addresses on the chip.
const Positions = 16

// PowerPulse is how long the power-reset pin is held low at init.
const PowerPulse = 300 * time.Millisecond

var letterFont = map[rune]byte{
	'a': 0x77, 'b': 0x7C, 'c': 0x58, 'd': 0x5E, 'e': 0x79, 'f': 0x71,
	'g': 0x3D, 'h': 0x74, 'i': 0x10, 'j': 0x1E, 'l': 0x38, 'n': 0x54,
	'o': 0x5C, 'p': 0x73, 'r': 0x50, 's': 0x6D, 't': 0x78, 'u': 0x1C,
	'y': 0x6E, '-': 0x40, '_': 0x08, ' ': 0x00,
	'H': 0x76, 'I': 0x06, 'C': 0x39, 'E': 0x79, 'F': 0x71, 'L': 0x38,
	'O': 0x3F, 'P': 0x73, 'S': 0x6D, 'U': 0x3E, 'A': 0x77,
}

// ErrPinNotFound is returned by Open when a pin name does not resolve.
var ErrPinNotFound = errors.New("gpio pin not found")

// Line is one output line; gpio.PinOut satisfies it.
type Line interface {
	Out(l gpio.Level) error
}

// Config holds the pin assignment.
type Config struct {
	// Clock and Data are gpioreg pin names, e.g. "GPIO17".
	Clock string
	Data  string

	// Power is an optional power-reset pin name.
	Power string

	Logger *slog.Logger
}

// Device is a TM1640 display.
type Device struct {
	mu     sync.Mutex
	clk    Line
	din    Line
	power  Line
	shadow [Positions]byte

	// powered is set once the power line has been pulsed.
	powered bool
	sleep   softtimer.Sleeper
	logger  *slog.Logger
}

var _ display.Driver = (*Device)(nil)

// Open initializes the host GPIO drivers and resolves the configured pins.
func Open(cfg Config) (*Device, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init host: %w", err)
	}
	clk := gpioreg.ByName(cfg.Clock)
	if clk == nil {
		return nil, fmt.Errorf("%w: %q", ErrPinNotFound, cfg.Clock)
	}
	din := gpioreg.ByName(cfg.Data)
	if din == nil {
		return nil, fmt.Errorf("%w: %q", ErrPinNotFound, cfg.Data)
	}
	d := New(clk, din, cfg.Logger)
	if cfg.Power != "" {
		p := gpioreg.ByName(cfg.Power)
		if p == nil {
			return nil, fmt.Errorf("%w: %q", ErrPinNotFound, cfg.Power)
		}
		d.power = p
	}
	return d, nil
}

// New creates a device on already-resolved lines.
func New(clk, din Line, logger *slog.Logger) *Device {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Device{
		clk:    clk,
		din:    din,
		sleep:  softtimer.Sleep,
		logger: logger,
	}
}

// WithPower sets the power-reset line.
func (d *Device) WithPower(p Line) *Device {
	d.power = p
	return d
}

// Init sets the display control. The first call also pulses the power pin if
// one is wired; later calls only change brightness and on/off so the digits
// stay lit.
func (d *Device) Init(on bool, brightness int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.power != nil && !d.powered {
		if err := d.power.Out(gpio.Low); err != nil {
			return fmt.Errorf("power pin: %w", err)
		}
		d.sleep(PowerPulse)
		if err := d.power.Out(gpio.High); err != nil {
			return fmt.Errorf("power pin: %w", err)
		}
		d.powered = true
	}

	if brightness < display.MinBrightness {
		brightness = display.MinBrightness
	}
	if brightness > display.MaxBrightness {
		brightness = display.MaxBrightness
	}
	ctrl := byte(cmdDisplayOff)
	if on {
		ctrl = cmdDisplayOn | byte(brightness)
	}
	d.logger.Debug("tm1640 init", "on", on, "brightness", brightness)
	return d.command(ctrl)
}

// Clear blanks every position.
func (d *Device) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	for pos := range d.shadow {
		errs = append(errs, d.write(pos, 0))
	}
	return errors.Join(errs...)
}

// SetDigit shows value at position.
func (d *Device) SetDigit(value, position int, withSeparator bool) error {
	if value < 0 || value > 9 {
		return fmt.Errorf("digit %d out of range", value)
	}
	b := display.DigitFont[value]
	if withSeparator {
		b |= display.SegmentDot
	}
	return d.SetSegments(b, position)
}

// SetSegments writes a raw pattern to position.
func (d *Device) SetSegments(pattern uint8, position int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.write(position, pattern)
}

// ShowText clears the display and writes text from position 0. Characters
// without a glyph are shown blank.
func (d *Device) ShowText(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	var errs []error
	runes := []rune(text)
	for pos := range d.shadow {
		var b byte
		if pos < len(runes) {
			b = glyph(runes[pos])
		}
		errs = append(errs, d.write(pos, b))
	}
	return errors.Join(errs...)
}

// Segments returns what was last written to position.
func (d *Device) Segments(position int) uint8 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if position < 0 || position >= Positions {
		return 0
	}
	return d.shadow[position]
}

func glyph(r rune) byte {
	if r >= '0' && r <= '9' {
		return display.DigitFont[r-'0']
	}
	if b, ok := letterFont[r]; ok {
		return b
	}
	if b, ok := letterFont[unicode.ToLower(r)]; ok {
		return b
	}
	return 0
}

func (d *Device) write(position int, b byte) error {
	if position < 0 || position >= Positions {
		return fmt.Errorf("%w: %d", display.ErrPosition, position)
	}
	if err := d.command(cmdFixedAddress); err != nil {
		return err
	}
	if err := d.frame(cmdAddress|byte(position), b); err != nil {
		return err
	}
	d.shadow[position] = b
	return nil
}

func (d *Device) command(c byte) error {
	return d.frame(c)
}

// frame sends bytes between one start and stop condition.
func (d *Device) frame(bs ...byte) error {
	var errs []error
	out := func(l Line, v gpio.Level) {
		if err := l.Out(v); err != nil {
			errs = append(errs, err)
		}
	}

	// start: data falls while clock is high
	out(d.din, gpio.High)
	out(d.clk, gpio.High)
	out(d.din, gpio.Low)
	out(d.clk, gpio.Low)

	for _, b := range bs {
		for i := 0; i < 8; i++ {
			out(d.clk, gpio.Low)
			out(d.din, gpio.Level(b&(1<<i) != 0))
			out(d.clk, gpio.High)
		}
	}

	// stop: data rises while clock is high
	out(d.clk, gpio.Low)
	out(d.din, gpio.Low)
	out(d.clk, gpio.High)
	out(d.din, gpio.High)

	if len(errs) > 0 {
		return fmt.Errorf("tm1640 write: %w", errs[0])
	}
	return nil
}
