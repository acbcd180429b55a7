// Package season canonicalizes the summer into Monday-starting week slots.
//
// The season begins on the first Monday strictly after the school end date
// and ends on the last weekday strictly before the school start date. The
// computation is pure and deterministic; identical inputs always produce
// identical seasons.
package season

import (
	"fmt"
	"time"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
)

// Gap is a run of leftover days outside the week slots: between school end
// and the first Monday, or between the last slot and school start. Gaps are
// reported for display but are not season weeks.
type Gap struct {
	Start    domain.Date `json:"start"`
	End      domain.Date `json:"end"`
	Weekdays int         `json:"weekdays"`
}

// Season is the canonical list of week slots between two school years.
type Season struct {
	SchoolEnd   domain.Date   `json:"school_end"`
	SchoolStart domain.Date   `json:"school_start"`
	Weeks       []domain.Week `json:"weeks"`
	PreGap      *Gap          `json:"pre_gap,omitempty"`
	PostGap     *Gap          `json:"post_gap,omitempty"`
}

// Compute builds the season for the given school dates.
// Returns an INVALID_DATE_RANGE error when either date does not parse or the
// end of school is not strictly before the start of school.
func Compute(schoolEnd, schoolStart domain.Date) (*Season, error) {
	end, ok := schoolEnd.Time()
	if !ok {
		return nil, errors.InvalidDateRange(fmt.Sprintf("school end %q is not a valid ISO date", schoolEnd))
	}
	start, ok := schoolStart.Time()
	if !ok {
		return nil, errors.InvalidDateRange(fmt.Sprintf("school start %q is not a valid ISO date", schoolStart))
	}
	if !end.Before(start) {
		return nil, errors.InvalidDateRange(fmt.Sprintf("school end %s must be before school start %s", schoolEnd, schoolStart))
	}

	firstMonday := end.AddDate(0, 0, 1)
	for firstMonday.Weekday() != time.Monday {
		firstMonday = firstMonday.AddDate(0, 0, 1)
	}

	// Last weekday strictly before school start.
	boundary := start.AddDate(0, 0, -1)
	for boundary.Weekday() == time.Saturday || boundary.Weekday() == time.Sunday {
		boundary = boundary.AddDate(0, 0, -1)
	}

	s := &Season{SchoolEnd: schoolEnd, SchoolStart: schoolStart}

	for cur, num := firstMonday, 1; !cur.After(boundary); cur, num = cur.AddDate(0, 0, 7), num+1 {
		slotEnd := cur.AddDate(0, 0, 4) // Friday
		if slotEnd.After(boundary) {
			slotEnd = boundary
		}
		w := domain.Week{
			Number: num,
			Start:  domain.DateOf(cur),
			End:    domain.DateOf(slotEnd),
		}
		w.Label = label(w)
		s.Weeks = append(s.Weeks, w)
	}

	if g := gapBetween(end.AddDate(0, 0, 1), firstMonday.AddDate(0, 0, -1)); g != nil {
		s.PreGap = g
	}
	if n := len(s.Weeks); n > 0 {
		lastEnd, _ := s.Weeks[n-1].End.Time()
		if g := gapBetween(lastEnd.AddDate(0, 0, 1), start.AddDate(0, 0, -1)); g != nil {
			s.PostGap = g
		}
	}

	return s, nil
}

// WeekFor returns the week slot containing the given date.
func (s *Season) WeekFor(d domain.Date) (domain.Week, bool) {
	for _, w := range s.Weeks {
		if w.Contains(d) {
			return w, true
		}
	}
	return domain.Week{}, false
}

// Total returns the number of week slots in the season.
func (s *Season) Total() int {
	return len(s.Weeks)
}

func gapBetween(first, last time.Time) *Gap {
	if first.After(last) {
		return nil
	}
	weekdays := 0
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			weekdays++
		}
	}
	return &Gap{
		Start:    domain.DateOf(first),
		End:      domain.DateOf(last),
		Weekdays: weekdays,
	}
}

func label(w domain.Week) string {
	start, _ := w.Start.Time()
	end, _ := w.End.Time()
	return fmt.Sprintf("Week %d · %s – %s", w.Number, start.Format("Jan 2"), end.Format("Jan 2"))
}
