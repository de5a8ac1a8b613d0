package tm1640

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"

	"github.com/netclock/netclock-go/pkg/display"
)

// bus decodes the two-wire traffic into frames of bytes.
type bus struct {
	clk, din bool
	inFrame  bool
	bits     []bool
	frames   [][]byte
}

func newBus() *bus {
	return &bus{clk: true, din: true}
}

func (b *bus) setClk(v bool) {
	if v && !b.clk && b.inFrame {
		b.bits = append(b.bits, b.din)
	}
	b.clk = v
}

func (b *bus) setDin(v bool) {
	if b.clk && b.din && !v {
		b.inFrame = true
		b.bits = nil
	}
	if b.clk && !b.din && v && b.inFrame {
		b.inFrame = false
		n := len(b.bits) / 8
		frame := make([]byte, n)
		for i := 0; i < n; i++ {
			for j := 0; j < 8; j++ {
				if b.bits[i*8+j] {
					frame[i] |= 1 << j
				}
			}
		}
		b.frames = append(b.frames, frame)
	}
	b.din = v
}

type line struct {
	set func(bool)
	err error
}

func (l *line) Out(v gpio.Level) error {
	if l.err != nil {
		return l.err
	}
	l.set(bool(v))
	return nil
}

func newTestDevice() (*Device, *bus) {
	b := newBus()
	d := New(&line{set: b.setClk}, &line{set: b.setDin}, nil)
	d.sleep = func(time.Duration) {}
	return d, b
}

func TestSetDigitWritesFixedAddress(t *testing.T) {
	d, b := newTestDevice()

	require.NoError(t, d.SetDigit(7, 2, false))

	assert.Equal(t, [][]byte{{0x44}, {0xC2, 0x07}}, b.frames)
	assert.Equal(t, uint8(0x07), d.Segments(2))
}

func TestSetDigitSeparator(t *testing.T) {
	d, b := newTestDevice()

	require.NoError(t, d.SetDigit(0, 1, true))

	assert.Equal(t, []byte{0xC1, 0x3F | 0x80}, b.frames[1])
}

func TestSetDigitRejectsOutOfRange(t *testing.T) {
	d, _ := newTestDevice()

	assert.Error(t, d.SetDigit(10, 0, false))
	assert.ErrorIs(t, d.SetSegments(0x02, Positions), display.ErrPosition)
}

func TestInitDisplayControl(t *testing.T) {
	tests := []struct {
		name       string
		on         bool
		brightness int
		want       byte
	}{
		{"Full", true, 7, 0x8F},
		{"Dim", true, 0, 0x88},
		{"Clamped", true, 12, 0x8F},
		{"Off", false, 7, 0x80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, b := newTestDevice()
			require.NoError(t, d.Init(tt.on, tt.brightness))
			assert.Equal(t, [][]byte{{tt.want}}, b.frames)
		})
	}
}

func TestInitPulsesPowerPin(t *testing.T) {
	d, _ := newTestDevice()
	var levels []bool
	d.WithPower(&line{set: func(v bool) { levels = append(levels, v) }})
	var slept time.Duration
	d.sleep = func(dur time.Duration) { slept += dur }

	require.NoError(t, d.Init(true, 7))

	assert.Equal(t, []bool{false, true}, levels)
	assert.Equal(t, PowerPulse, slept)
}

func TestReinitKeepsPowerAndDigits(t *testing.T) {
	d, b := newTestDevice()
	var levels []bool
	d.WithPower(&line{set: func(v bool) { levels = append(levels, v) }})
	var sleeps []time.Duration
	d.sleep = func(dur time.Duration) { sleeps = append(sleeps, dur) }

	require.NoError(t, d.Init(true, 7))
	require.NoError(t, d.SetDigit(4, 3, false))
	b.frames = nil

	require.NoError(t, d.Init(true, 2))

	assert.Equal(t, []bool{false, true}, levels)
	assert.Equal(t, []time.Duration{PowerPulse}, sleeps)
	assert.Equal(t, [][]byte{{0x8A}}, b.frames)
	assert.Equal(t, display.DigitFont[4], d.Segments(3))
}

func TestShowText(t *testing.T) {
	d, _ := newTestDevice()
	require.NoError(t, d.SetDigit(8, 5, false))

	require.NoError(t, d.ShowText("HI"))

	assert.Equal(t, uint8(0x76), d.Segments(0))
	assert.Equal(t, uint8(0x06), d.Segments(1))
	assert.Equal(t, uint8(0), d.Segments(5))

	require.NoError(t, d.ShowText("conn"))
	assert.Equal(t, uint8(0x58), d.Segments(0))
	assert.Equal(t, uint8(0x5C), d.Segments(1))
	assert.Equal(t, uint8(0x54), d.Segments(2))
	assert.Equal(t, uint8(0x54), d.Segments(3))
}

func TestClear(t *testing.T) {
	d, _ := newTestDevice()
	require.NoError(t, d.SetDigit(1, 0, true))

	require.NoError(t, d.Clear())

	for pos := 0; pos < Positions; pos++ {
		assert.Equal(t, uint8(0), d.Segments(pos))
	}
}

func TestLineErrorPropagates(t *testing.T) {
	boom := errors.New("gpio busy")
	d := New(&line{err: boom}, &line{set: func(bool) {}}, nil)

	assert.ErrorIs(t, d.SetSegments(0x02, 4), boom)
	assert.Equal(t, uint8(0), d.Segments(4))
}

func TestRendererOnDevice(t *testing.T) {
	d, _ := newTestDevice()
	r := display.NewRenderer(nil)

	require.NoError(t, r.Apply(d, r.Next(21, 47, true)))

	assert.Equal(t, uint8(0x00), d.Segments(display.PosHourTens))
	assert.Equal(t, uint8(0x6F), d.Segments(display.PosHourOnes))
	assert.Equal(t, uint8(0x66), d.Segments(display.PosMinuteTens))
	assert.Equal(t, uint8(0x07), d.Segments(display.PosMinuteOnes))
	assert.Equal(t, uint8(0x00), d.Segments(display.PosIndicatorA))
	assert.Equal(t, uint8(0x02), d.Segments(display.PosIndicatorB))
}
