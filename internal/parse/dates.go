// Package parse contains total parsers for the free-text date and time
// formats found in camp directories ("March 15", "9am-3pm"). Every parser
// returns an ok flag instead of an error; unparseable input is a normal
// outcome, not a failure.
package parse

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

var months = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// MonthDay extracts the first month-day pair from free text, placed in the
// given year. Accepts "March 15", "Mar 15th", "registration opens March 1!",
// and numeric "3/15". Texts with no day number ("spring 2026") do not parse.
func MonthDay(text string, year int) (time.Time, bool) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '/'
	})

	for i, f := range fields {
		if m, d, ok := slashMonthDay(f); ok {
			return time.Date(year, m, d, 0, 0, 0, 0, time.UTC), true
		}

		month, ok := months[strings.ToLower(f)]
		if !ok || i+1 >= len(fields) {
			continue
		}
		if day, ok := dayNumber(fields[i+1]); ok {
			return time.Date(year, month, day, 0, 0, 0, 0, time.UTC), true
		}
	}

	return time.Time{}, false
}

// slashMonthDay parses numeric "M/D" or "M/D/YYYY" (year ignored).
func slashMonthDay(s string) (time.Month, int, bool) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[0])
	if err != nil || m < 1 || m > 12 {
		return 0, 0, false
	}
	d, err := strconv.Atoi(parts[1])
	if err != nil || d < 1 || d > 31 {
		return 0, 0, false
	}
	return time.Month(m), d, true
}

// dayNumber parses a day-of-month token, tolerating ordinal suffixes ("15th").
func dayNumber(s string) (int, bool) {
	s = strings.TrimRightFunc(s, unicode.IsLetter)
	d, err := strconv.Atoi(s)
	if err != nil || d < 1 || d > 31 {
		return 0, false
	}
	return d, true
}
