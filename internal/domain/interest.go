package domain

import (
	"fmt"
	"time"
)

// CampInterest is a non-binding declaration that a child may attend a camp in
// a given week. Rows are unique by (owner, child, camp, week) and upserted;
// no explicit delete is expected.
type CampInterest struct {
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	ID                string    `json:"id"`
	OwnerID           string    `json:"owner_id"`
	ChildID           string    `json:"child_id"`
	CampID            string    `json:"camp_id"`
	WeekNumber        int       `json:"week_number"`
	LookingForFriends bool      `json:"looking_for_friends"`
	Sample            bool      `json:"sample,omitempty"`
}

// Key returns the natural uniqueness key for upserts.
func (ci *CampInterest) Key() string {
	return InterestKey(ci.OwnerID, ci.ChildID, ci.CampID, ci.WeekNumber)
}

// InterestKey builds the (owner, child, camp, week) uniqueness key.
func InterestKey(ownerID, childID, campID string, week int) string {
	return fmt.Sprintf("%s|%s|%s|%d", ownerID, childID, campID, week)
}
