package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthDay(t *testing.T) {
	tests := []struct {
		text string
		want string // "" means no parse
	}{
		{"March 15", "2026-03-15"},
		{"Mar 15", "2026-03-15"},
		{"march 15th", "2026-03-15"},
		{"Registration opens March 1!", "2026-03-01"},
		{"opens 3/15", "2026-03-15"},
		{"3/15/2026", "2026-03-15"},
		{"Feb. 2, priority for returning families", "2026-02-02"},
		{"spring 2026", ""},
		{"TBD", ""},
		{"", ""},
		{"March", ""},          // month without a day
		{"March 45", ""},       // day out of range
		{"13/15", ""},          // month out of range
		{"May 2026 maybe", ""}, // 2026 is a year, not a day
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := MonthDay(tt.text, 2026)
			if tt.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.want, got.Format(time.DateOnly))
		})
	}
}
