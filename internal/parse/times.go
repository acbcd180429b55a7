package parse

import (
	"strconv"
	"strings"
)

// MinutesPerDay bounds a clock value in minutes since midnight.
const MinutesPerDay = 24 * 60

// Clock parses a time-of-day in the formats camps publish: "9am", "9:30pm",
// "7:30 AM", "17:30", or a bare 24-hour "9". Returns minutes since midnight.
func Clock(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}

	meridiem := ""
	for _, suffix := range []string{"am", "a.m.", "pm", "p.m."} {
		if strings.HasSuffix(s, suffix) {
			meridiem = string(suffix[0])
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}

	hourStr, minStr, hasMinutes := strings.Cut(s, ":")
	hour, err := strconv.Atoi(strings.TrimSpace(hourStr))
	if err != nil {
		return 0, false
	}

	minute := 0
	if hasMinutes {
		minute, err = strconv.Atoi(strings.TrimSpace(minStr))
		if err != nil || minute < 0 || minute > 59 {
			return 0, false
		}
	}

	switch meridiem {
	case "a":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
	case "p":
		if hour < 1 || hour > 12 {
			return 0, false
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour < 0 || hour > 23 {
			return 0, false
		}
	}

	return hour*60 + minute, true
}

// ClockRange parses a time span like "9am-3pm", "7:30am – 6pm", or
// "08:00 to 17:30". Both endpoints must parse and be in order.
func ClockRange(s string) (start, end int, ok bool) {
	var parts []string
	for _, sep := range []string{"–", "—", " to ", "-"} {
		if strings.Contains(s, sep) {
			parts = strings.SplitN(s, sep, 2)
			break
		}
	}
	if len(parts) != 2 {
		return 0, 0, false
	}

	start, ok = Clock(parts[0])
	if !ok {
		return 0, 0, false
	}
	end, ok = Clock(parts[1])
	if !ok || end <= start {
		return 0, 0, false
	}
	return start, end, true
}

// FormatClock renders minutes since midnight as 24-hour "HH:MM".
func FormatClock(minutes int) string {
	if minutes < 0 || minutes >= MinutesPerDay {
		return ""
	}
	h, m := minutes/60, minutes%60
	return pad(h) + ":" + pad(m)
}

func pad(n int) string {
	if n < 10 {
		return "0" + strconv.Itoa(n)
	}
	return strconv.Itoa(n)
}
