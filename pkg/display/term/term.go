// Package term renders the clock display as seven-segment art on a terminal.
package term

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/netclock/netclock-go/pkg/display"
)

const positions = 6

var (
	colorLit   = lipgloss.Color("#FF3300")
	colorDim   = lipgloss.Color("#552200")
	colorAlert = lipgloss.Color("#FFAA00")

	stylePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	styleLabel = lipgloss.NewStyle().Bold(true)
)

// Display is a display.Driver that draws into an io.Writer on Flush.
type Display struct {
	mu         sync.Mutex
	out        io.Writer
	segs       [positions]uint8
	text       string
	on         bool
	brightness int
}

var (
	_ display.Driver  = (*Display)(nil)
	_ display.Flusher = (*Display)(nil)
)

// New creates a terminal display writing to out.
func New(out io.Writer) *Display {
	return &Display{out: out, on: true, brightness: display.MaxBrightness}
}

func (d *Display) Init(on bool, brightness int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.on = on
	d.brightness = brightness
	return nil
}

func (d *Display) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.segs = [positions]uint8{}
	d.text = ""
	return nil
}

func (d *Display) SetDigit(value, position int, withSeparator bool) error {
	if value < 0 || value > 9 {
		return fmt.Errorf("digit %d out of range", value)
	}
	p := display.DigitFont[value]
	if withSeparator {
		p |= display.SegmentDot
	}
	return d.SetSegments(p, position)
}

func (d *Display) SetSegments(pattern uint8, position int) error {
	if position < 0 || position >= positions {
		return fmt.Errorf("%w: %d", display.ErrPosition, position)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = ""
	d.segs[position] = pattern
	return nil
}

// ShowText replaces the digits with a status word until the next digit write.
func (d *Display) ShowText(text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.text = text
	_, err := fmt.Fprintln(d.out, d.render())
	return err
}

// Flush draws the current state.
func (d *Display) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := fmt.Fprintln(d.out, d.render())
	return err
}

// View returns the current state as a string without writing it.
func (d *Display) View() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.render()
}

func (d *Display) render() string {
	if !d.on {
		return stylePanel.Render("    ")
	}
	fg := colorLit
	if d.brightness < 3 {
		fg = colorDim
	}
	digit := lipgloss.NewStyle().Foreground(fg)

	if d.text != "" {
		return stylePanel.Render(digit.Render(d.text))
	}

	colon := []string{" ", " ", " "}
	if d.segs[display.PosHourOnes]&display.SegmentDot != 0 {
		colon = []string{" ", ".", "."}
	}

	cols := []string{
		digit.Render(Glyph(d.segs[display.PosHourTens])),
		digit.Render(Glyph(d.segs[display.PosHourOnes])),
		digit.Render(strings.Join(colon, "\n")),
		digit.Render(Glyph(d.segs[display.PosMinuteTens])),
		digit.Render(Glyph(d.segs[display.PosMinuteOnes])),
		" " + d.indicators(),
	}
	return stylePanel.Render(lipgloss.JoinHorizontal(lipgloss.Top, cols...))
}

func (d *Display) indicators() string {
	label := func(name string, p uint8) string {
		switch {
		case p&display.SegmentAlert != 0:
			return styleLabel.Foreground(colorAlert).Render(name + "!")
		case p&display.SegmentIndicator != 0:
			return styleLabel.Foreground(colorLit).Render(name + " ")
		default:
			return lipgloss.NewStyle().Foreground(colorDim).Render("   ")
		}
	}
	return strings.Join([]string{
		label("AM", d.segs[display.PosIndicatorA]),
		label("PM", d.segs[display.PosIndicatorB]),
		"",
	}, "\n")
}

// Glyph draws one segment pattern as three rows of three characters.
func Glyph(p uint8) string {
	seg := func(bit int, on string) string {
		if p&(1<<bit) != 0 {
			return on
		}
		return " "
	}
	rows := []string{
		" " + seg(0, "_") + " ",
		seg(5, "|") + seg(6, "_") + seg(1, "|"),
		seg(4, "|") + seg(3, "_") + seg(2, "|"),
	}
	return strings.Join(rows, "\n")
}
