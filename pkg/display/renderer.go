package display

import (
	"errors"
	"log/slog"
)

// Renderer owns the blink phase and issues frames to a driver.
type Renderer struct {
	phase  bool
	last   Frame
	logger *slog.Logger
}

// NewRenderer creates a renderer. The first frame has the colon off.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Renderer{logger: logger}
}

// Next renders the frame for this tick and toggles the blink phase.
func (r *Renderer) Next(hour24, minute int, syncOK bool) Frame {
	f := Render(hour24, minute, syncOK, r.phase)
	r.phase = !r.phase
	r.last = f
	return f
}

// Phase returns the colon state the next frame will use.
func (r *Renderer) Phase() bool {
	return r.phase
}

// Last returns the most recent frame.
func (r *Renderer) Last() Frame {
	return r.last
}

// Apply writes f to d. Positions 1 and 2 are written with the separator on
// and then re-issued with the colon state, which blinks the colon without
// disturbing the digits. Every command is attempted; the errors are joined.
func (r *Renderer) Apply(d Driver, f Frame) error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	add(d.SetSegments(f.Indicators[0], PosIndicatorA))
	add(d.SetSegments(f.Indicators[1], PosIndicatorB))

	if f.Digits[0] == Blank {
		add(d.SetSegments(SegmentOff, PosHourTens))
	} else {
		add(d.SetDigit(f.Digits[0], PosHourTens, false))
	}
	add(d.SetDigit(f.Digits[1], PosHourOnes, true))
	add(d.SetDigit(f.Digits[2], PosMinuteTens, true))
	add(d.SetDigit(f.Digits[3], PosMinuteOnes, false))

	add(d.SetDigit(f.Digits[1], PosHourOnes, f.Colon))
	add(d.SetDigit(f.Digits[2], PosMinuteTens, f.Colon))

	if fl, ok := d.(Flusher); ok {
		add(fl.Flush())
	}

	err := errors.Join(errs...)
	if err != nil {
		r.logger.Warn("display write failed", "frame", f.String(), "error", err)
	}
	return err
}
