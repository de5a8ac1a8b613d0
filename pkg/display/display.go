package display

import (
	"errors"
	"fmt"
)

// Display positions.
const (
	PosHourTens   = 0
	PosHourOnes   = 1
	PosMinuteTens = 2
	PosMinuteOnes = 3
	PosIndicatorA = 4
	PosIndicatorB = 5
)

// Indicator segment patterns.
const (
	SegmentOff       uint8 = 0x00
	SegmentIndicator uint8 = 0x02
	SegmentAlert     uint8 = 0x04
	SegmentDot       uint8 = 0x80
)

// DigitFont maps 0-9 to segment patterns, bit 0 = segment a through bit 6 = g.
var DigitFont = [10]uint8{0x3F, 0x06, 0x5B, 0x4F, 0x66, 0x6D, 0x7D, 0x07, 0x7F, 0x6F}

// Blank marks a digit position that is cleared instead of showing a value.
const Blank = -1

// Brightness range accepted by drivers.
const (
	MinBrightness = 0
	MaxBrightness = 7
)

// ErrPosition is returned by drivers for a position they do not have.
var ErrPosition = errors.New("display position out of range")

// Driver is the segment display hardware.
type Driver interface {
	// Init switches the display on or off at brightness 0-7.
	Init(on bool, brightness int) error

	// Clear blanks every position.
	Clear() error

	// SetDigit shows value 0-9 at position, optionally with the separator segment.
	SetDigit(value, position int, withSeparator bool) error

	// SetSegments writes a raw segment pattern to position.
	SetSegments(pattern uint8, position int) error

	// ShowText shows a short status word such as "HI" or "conn".
	ShowText(text string) error
}

// Flusher is implemented by drivers that buffer commands until a frame is
// complete.
type Flusher interface {
	Flush() error
}

// Frame is everything shown for one render tick.
type Frame struct {
	// Digits are HH:MM; Digits[0] is Blank when the hour is below 10.
	Digits [4]int

	// Colon shows the separator between hours and minutes.
	Colon bool

	// Indicators are the patterns for positions 4 and 5.
	Indicators [2]uint8

	// PM and SyncOK are the inputs the indicators encode.
	PM     bool
	SyncOK bool
}

// String renders the frame as text, e.g. " 9:05 AM".
func (f Frame) String() string {
	tens := " "
	if f.Digits[0] != Blank {
		tens = fmt.Sprint(f.Digits[0])
	}
	sep := " "
	if f.Colon {
		sep = ":"
	}
	half := "AM"
	if f.PM {
		half = "PM"
	}
	health := ""
	if !f.SyncOK {
		health = " !"
	}
	return fmt.Sprintf("%s%d%s%d%d %s%s", tens, f.Digits[1], sep, f.Digits[2], f.Digits[3], half, health)
}

// To12Hour maps a 0-23 hour to 1-12 and reports whether it is PM.
func To12Hour(hour24 int) (hour12 int, pm bool) {
	hour12 = hour24 % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return hour12, hour24 >= 12
}

// Indicators returns the patterns for positions 4 and 5.
func Indicators(pm, syncOK bool) [2]uint8 {
	lit := SegmentIndicator
	if !syncOK {
		lit |= SegmentAlert
	}
	if pm {
		return [2]uint8{SegmentOff, lit}
	}
	return [2]uint8{lit, SegmentOff}
}

// Render derives the frame for hour24 (0-23) and minute (0-59).
func Render(hour24, minute int, syncOK, colon bool) Frame {
	hour12, pm := To12Hour(hour24)

	f := Frame{
		Colon:      colon,
		Indicators: Indicators(pm, syncOK),
		PM:         pm,
		SyncOK:     syncOK,
	}
	if hour12 < 10 {
		f.Digits[0] = Blank
		f.Digits[1] = hour12
	} else {
		f.Digits[0] = 1
		f.Digits[1] = hour12 - 10
	}
	f.Digits[2] = minute / 10
	f.Digits[3] = minute % 10
	return f
}
