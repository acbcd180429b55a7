package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
)

func TestCompute_Summer2026(t *testing.T) {
	// School ends Friday Jun 5, resumes Wednesday Aug 19.
	s, err := Compute("2026-06-05", "2026-08-19")
	require.NoError(t, err)

	require.Len(t, s.Weeks, 11)

	assert.Equal(t, 1, s.Weeks[0].Number)
	assert.Equal(t, domain.Date("2026-06-08"), s.Weeks[0].Start)
	assert.Equal(t, domain.Date("2026-06-12"), s.Weeks[0].End)

	// Final slot truncated to Monday-Tuesday because school starts Wednesday.
	last := s.Weeks[10]
	assert.Equal(t, 11, last.Number)
	assert.Equal(t, domain.Date("2026-08-17"), last.Start)
	assert.Equal(t, domain.Date("2026-08-18"), last.End)
}

func TestCompute_WeeksAreMondayStartingAndAtMostFiveDays(t *testing.T) {
	s, err := Compute("2026-06-05", "2026-08-19")
	require.NoError(t, err)

	prev := 0
	for _, w := range s.Weeks {
		assert.Equal(t, prev+1, w.Number, "week numbers are strictly ordered")
		prev = w.Number

		start, ok := w.Start.Time()
		require.True(t, ok)
		assert.Equal(t, time.Monday, start.Weekday())

		end, ok := w.End.Time()
		require.True(t, ok)
		days := int(end.Sub(start).Hours()/24) + 1
		assert.LessOrEqual(t, days, 5)
		assert.GreaterOrEqual(t, days, 1)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	a, err := Compute("2026-06-05", "2026-08-19")
	require.NoError(t, err)
	b, err := Compute("2026-06-05", "2026-08-19")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCompute_PreAndPostGaps(t *testing.T) {
	// School ends Wednesday: Thu + Fri are a pre-season gap.
	s, err := Compute("2026-06-03", "2026-08-19")
	require.NoError(t, err)

	require.NotNil(t, s.PreGap)
	assert.Equal(t, domain.Date("2026-06-04"), s.PreGap.Start)
	assert.Equal(t, domain.Date("2026-06-07"), s.PreGap.End)
	assert.Equal(t, 2, s.PreGap.Weekdays)

	// Last slot runs through Tue Aug 18; no weekday remains before Aug 19.
	assert.Nil(t, s.PostGap)
}

func TestCompute_SchoolStartsMonday(t *testing.T) {
	// School starts Monday Aug 17: the Aug 17 week never begins and the
	// prior full week is the final slot.
	s, err := Compute("2026-06-05", "2026-08-17")
	require.NoError(t, err)

	last := s.Weeks[len(s.Weeks)-1]
	assert.Equal(t, domain.Date("2026-08-10"), last.Start)
	assert.Equal(t, domain.Date("2026-08-14"), last.End)
}

func TestCompute_InvalidInputs(t *testing.T) {
	tests := []struct {
		name       string
		end, start domain.Date
	}{
		{"end after start", "2026-08-19", "2026-06-05"},
		{"equal dates", "2026-06-05", "2026-06-05"},
		{"malformed end", "June 5", "2026-08-19"},
		{"malformed start", "2026-06-05", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.end, tt.start)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidDateRange))
		})
	}
}

func TestWeekFor(t *testing.T) {
	s, err := Compute("2026-06-05", "2026-08-19")
	require.NoError(t, err)

	w, ok := s.WeekFor("2026-06-10")
	require.True(t, ok)
	assert.Equal(t, 1, w.Number)

	// Weekend days fall between slots.
	_, ok = s.WeekFor("2026-06-13")
	assert.False(t, ok)

	_, ok = s.WeekFor("2026-09-01")
	assert.False(t, ok)
}
