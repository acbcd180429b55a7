package domain

// Week is a Monday-starting week slot of the summer season, identified by a
// season-relative week number (1..N). First and last slots may be truncated
// when the season boundaries fall mid-week; all others span Monday-Friday.
// Weeks are derived from school dates and never persisted.
type Week struct {
	Number int    `json:"number"`
	Start  Date   `json:"start"` // always a Monday
	End    Date   `json:"end"`   // Friday, or earlier for a truncated final slot
	Label  string `json:"label"` // human label, e.g. "Week 3 · Jun 22 – Jun 26"
}

// Contains reports whether the date falls within the week slot (inclusive).
func (w Week) Contains(d Date) bool {
	if !d.Valid() {
		return false
	}
	return !d.Before(w.Start) && !d.After(w.End)
}
