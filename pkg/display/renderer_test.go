package display

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/netclock/netclock-go/pkg/display/mocks"
)

func TestRendererBlinkTogglesEveryTick(t *testing.T) {
	r := NewRenderer(nil)

	var phases []bool
	for i := 0; i < 6; i++ {
		phases = append(phases, r.Next(10, 30, i%2 == 0).Colon)
	}

	assert.Equal(t, []bool{false, true, false, true, false, true}, phases)
}

func TestRendererBlinkIndependentOfSync(t *testing.T) {
	ok := NewRenderer(nil)
	failing := NewRenderer(nil)

	for i := 0; i < 5; i++ {
		assert.Equal(t, ok.Next(7, 0, true).Colon, failing.Next(7, 0, false).Colon)
	}
}

func TestApplyIssuesFrameCommands(t *testing.T) {
	d := mocks.NewMockDriver(t)
	r := NewRenderer(nil)
	f := Render(21, 47, true, true) // 9:47 PM

	inOrder := []*mock.Call{
		d.EXPECT().SetSegments(uint8(0), PosIndicatorA).Return(nil).Once(),
		d.EXPECT().SetSegments(uint8(2), PosIndicatorB).Return(nil).Once(),
		d.EXPECT().SetSegments(uint8(0), PosHourTens).Return(nil).Once(),
		d.EXPECT().SetDigit(9, PosHourOnes, true).Return(nil).Once(),
		d.EXPECT().SetDigit(4, PosMinuteTens, true).Return(nil).Once(),
		d.EXPECT().SetDigit(7, PosMinuteOnes, false).Return(nil).Once(),
		d.EXPECT().SetDigit(9, PosHourOnes, true).Return(nil).Once(),
		d.EXPECT().SetDigit(4, PosMinuteTens, true).Return(nil).Once(),
	}
	mock.InOrder(inOrder...)

	assert.NoError(t, r.Apply(d, f))
}

func TestApplyHourTensAndColonOff(t *testing.T) {
	d := mocks.NewMockDriver(t)
	r := NewRenderer(nil)
	f := Render(10, 5, false, false) // 10:05 AM, sync failed

	d.EXPECT().SetSegments(uint8(6), PosIndicatorA).Return(nil).Once()
	d.EXPECT().SetSegments(uint8(0), PosIndicatorB).Return(nil).Once()
	d.EXPECT().SetDigit(1, PosHourTens, false).Return(nil).Once()
	d.EXPECT().SetDigit(0, PosHourOnes, true).Return(nil).Once()
	d.EXPECT().SetDigit(0, PosMinuteTens, true).Return(nil).Once()
	d.EXPECT().SetDigit(5, PosMinuteOnes, false).Return(nil).Once()
	d.EXPECT().SetDigit(0, PosHourOnes, false).Return(nil).Once()
	d.EXPECT().SetDigit(0, PosMinuteTens, false).Return(nil).Once()

	assert.NoError(t, r.Apply(d, f))
}

func TestApplyJoinsDriverErrors(t *testing.T) {
	d := mocks.NewMockDriver(t)
	r := NewRenderer(nil)
	busErr := errors.New("bus error")

	d.EXPECT().SetSegments(mock.Anything, mock.Anything).Return(busErr)
	d.EXPECT().SetDigit(mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := r.Apply(d, Render(3, 0, true, false))
	assert.ErrorIs(t, err, busErr)
}

type flushingDriver struct {
	*mocks.MockDriver
	flushed int
}

func (f *flushingDriver) Flush() error {
	f.flushed++
	return nil
}

func TestApplyFlushesBufferedDrivers(t *testing.T) {
	m := mocks.NewMockDriver(t)
	m.EXPECT().SetSegments(mock.Anything, mock.Anything).Return(nil)
	m.EXPECT().SetDigit(mock.Anything, mock.Anything, mock.Anything).Return(nil)
	d := &flushingDriver{MockDriver: m}

	r := NewRenderer(nil)
	assert.NoError(t, r.Apply(d, r.Next(12, 0, true)))
	assert.Equal(t, 1, d.flushed)
	assert.Equal(t, "12 00 PM", r.Last().String())
}
