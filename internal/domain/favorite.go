package domain

import "time"

// Favorite marks a camp an account wants to keep an eye on.
type Favorite struct {
	CreatedAt time.Time `json:"created_at"`
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	CampID    string    `json:"camp_id"`
	Sample    bool      `json:"sample,omitempty"`
}
