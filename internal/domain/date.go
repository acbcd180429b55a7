package domain

import "time"

// DateLayout is the ISO calendar date layout used everywhere in the core.
const DateLayout = "2006-01-02"

// Date is an ISO calendar date (YYYY-MM-DD). The zero value means "no date".
// Lexical comparison of two valid Dates matches chronological order.
type Date string

// ParseDate validates and canonicalizes an ISO date string.
func ParseDate(s string) (Date, bool) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", false
	}
	return Date(t.Format(DateLayout)), true
}

// DateOf converts a time.Time to a Date, dropping the time of day.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

// Time parses the date at midnight UTC. ok is false for empty or malformed dates.
func (d Date) Time() (time.Time, bool) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == ""
}

// Valid reports whether the date parses as an ISO calendar date.
func (d Date) Valid() bool {
	_, ok := d.Time()
	return ok
}

// Before reports whether d is chronologically before other.
// Both dates must be valid; ISO dates compare correctly as strings.
func (d Date) Before(other Date) bool {
	return d < other
}

// After reports whether d is chronologically after other.
func (d Date) After(other Date) bool {
	return d > other
}

// AddDays returns the date shifted by n calendar days.
func (d Date) AddDays(n int) Date {
	t, ok := d.Time()
	if !ok {
		return d
	}
	return DateOf(t.AddDate(0, 0, n))
}

// Weekday returns the weekday of the date. Only meaningful for valid dates.
func (d Date) Weekday() time.Weekday {
	t, _ := d.Time()
	return t.Weekday()
}

// RangesOverlap reports whether [aStart, aEnd] and [bStart, bEnd] share at
// least one day. Bounds are inclusive. Any unset or malformed date makes the
// answer false so that broken rows never conflict with anything.
func RangesOverlap(aStart, aEnd, bStart, bEnd Date) bool {
	if !aStart.Valid() || !aEnd.Valid() || !bStart.Valid() || !bEnd.Valid() {
		return false
	}
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}
