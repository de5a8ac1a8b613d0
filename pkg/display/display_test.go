package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTo12HourAllHours(t *testing.T) {
	for h := 0; h < 24; h++ {
		got, pm := To12Hour(h)
		want := h % 12
		if want == 0 {
			want = 12
		}
		assert.Equal(t, want, got, "hour24=%d", h)
		assert.Equal(t, h >= 12, pm, "hour24=%d", h)
	}
}

func TestTo12HourBoundaries(t *testing.T) {
	tests := []struct {
		hour24 int
		want   int
		pm     bool
	}{
		{0, 12, false},
		{11, 11, false},
		{12, 12, true},
		{13, 1, true},
		{23, 11, true},
	}

	for _, tt := range tests {
		got, pm := To12Hour(tt.hour24)
		assert.Equal(t, tt.want, got, "hour24=%d", tt.hour24)
		assert.Equal(t, tt.pm, pm, "hour24=%d", tt.hour24)
	}
}

func TestRenderMinuteDigits(t *testing.T) {
	for m := 0; m < 60; m++ {
		f := Render(10, m, true, false)
		assert.Equal(t, m/10, f.Digits[2], "minute=%d", m)
		assert.Equal(t, m%10, f.Digits[3], "minute=%d", m)
	}

	f := Render(10, 5, true, false)
	assert.Equal(t, [2]int{0, 5}, [2]int{f.Digits[2], f.Digits[3]})
	f = Render(10, 59, true, false)
	assert.Equal(t, [2]int{5, 9}, [2]int{f.Digits[2], f.Digits[3]})
}

func TestRenderHourTensBlankBelowTen(t *testing.T) {
	for h := 0; h < 24; h++ {
		hour12, _ := To12Hour(h)
		f := Render(h, 0, true, false)
		if hour12 < 10 {
			assert.Equal(t, Blank, f.Digits[0], "hour24=%d", h)
			assert.Equal(t, hour12, f.Digits[1], "hour24=%d", h)
		} else {
			assert.Equal(t, 1, f.Digits[0], "hour24=%d", h)
			assert.Equal(t, hour12-10, f.Digits[1], "hour24=%d", h)
		}
	}
}

func TestIndicatorTable(t *testing.T) {
	tests := []struct {
		name   string
		pm     bool
		syncOK bool
		want   [2]uint8
	}{
		{"AMSynced", false, true, [2]uint8{2, 0}},
		{"PMSynced", true, true, [2]uint8{0, 2}},
		{"AMFailed", false, false, [2]uint8{6, 0}},
		{"PMFailed", true, false, [2]uint8{0, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Indicators(tt.pm, tt.syncOK))

			hour := 9
			if tt.pm {
				hour = 21
			}
			assert.Equal(t, tt.want, Render(hour, 0, tt.syncOK, false).Indicators)
		})
	}
}

func TestFrameString(t *testing.T) {
	assert.Equal(t, " 9:05 AM", Render(9, 5, true, true).String())
	assert.Equal(t, "12 00 PM !", Render(12, 0, false, false).String())
	assert.Equal(t, "12:00 AM", Render(0, 0, true, true).String())
}
