package domain

import "time"

// Profile holds an account's planning configuration: the school dates that
// bound the summer season, the work window camps must cover, and the budget.
// One profile per account, keyed by owner.
type Profile struct {
	UpdatedAt   time.Time `json:"updated_at"`
	OwnerID     string    `json:"owner_id"`
	SchoolEnd   Date      `json:"school_end"`
	SchoolStart Date      `json:"school_start"`
	WorkStart   string    `json:"work_start"` // free text, e.g. "8:00" or "8am"
	WorkEnd     string    `json:"work_end"`   // free text, e.g. "17:30" or "5:30pm"
	Budget      int       `json:"budget"`     // integer dollars for the season; 0 means unset
}
