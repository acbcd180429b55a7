package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClock(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"9am", 9 * 60, true},
		{"9:30am", 9*60 + 30, true},
		{"12am", 0, true},
		{"12pm", 12 * 60, true},
		{"3pm", 15 * 60, true},
		{"5:30 PM", 17*60 + 30, true},
		{"7:30 a.m.", 7*60 + 30, true},
		{"17:30", 17*60 + 30, true},
		{"08:00", 8 * 60, true},
		{"9", 9 * 60, true},
		{"0:00", 0, true},
		{"", 0, false},
		{"25:00", 0, false},
		{"13pm", 0, false},
		{"9:75am", 0, false},
		{"varies", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := Clock(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestClockRange(t *testing.T) {
	tests := []struct {
		in         string
		start, end int
		ok         bool
	}{
		{"9am-3pm", 9 * 60, 15 * 60, true},
		{"7:30am-6pm", 7*60 + 30, 18 * 60, true},
		{"7:30am – 6pm", 7*60 + 30, 18 * 60, true},
		{"08:00 to 17:30", 8 * 60, 17*60 + 30, true},
		{"9am", 0, 0, false},
		{"3pm-9am", 0, 0, false}, // reversed
		{"call for hours", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			start, end, ok := ClockRange(tt.in)
			require.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.start, start)
				assert.Equal(t, tt.end, end)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "09:05", FormatClock(9*60+5))
	assert.Equal(t, "17:30", FormatClock(17*60+30))
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "", FormatClock(-1))
	assert.Equal(t, "", FormatClock(MinutesPerDay))
}
