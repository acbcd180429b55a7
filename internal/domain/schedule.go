package domain

import "time"

// ItemStatus is the user-driven lifecycle state of a scheduled item.
// The core does not constrain transitions; a cancelled item is simply
// excluded from coverage and cost.
type ItemStatus string

// Scheduled item statuses.
const (
	StatusPlanned    ItemStatus = "planned"
	StatusRegistered ItemStatus = "registered"
	StatusConfirmed  ItemStatus = "confirmed"
	StatusWaitlisted ItemStatus = "waitlisted"
	StatusCancelled  ItemStatus = "cancelled"
)

// ValidItemStatus reports whether s is one of the known statuses.
func ValidItemStatus(s ItemStatus) bool {
	switch s {
	case StatusPlanned, StatusRegistered, StatusConfirmed, StatusWaitlisted, StatusCancelled:
		return true
	}
	return false
}

// BlockType marks a scheduled item as a non-camp block. Empty means the item
// references a camp.
type BlockType string

// Non-camp block types.
const (
	BlockVacation   BlockType = "vacation"
	BlockFamilyTime BlockType = "family-time"
	BlockTravel     BlockType = "travel"
	BlockOther      BlockType = "other"
)

// ValidBlockType reports whether b is one of the known block types.
func ValidBlockType(b BlockType) bool {
	switch b {
	case BlockVacation, BlockFamilyTime, BlockTravel, BlockOther:
		return true
	}
	return false
}

// ScheduledItem assigns a child to either a camp or a non-camp block for a
// date range. Exactly one of CampID and BlockType is set.
type ScheduledItem struct {
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	ID        string     `json:"id"`
	OwnerID   string     `json:"owner_id"`
	ChildID   string     `json:"child_id"`
	CampID    string     `json:"camp_id,omitempty"`
	BlockType BlockType  `json:"block_type,omitempty"`
	StartDate Date       `json:"start_date"`
	EndDate   Date       `json:"end_date"`
	Price     int        `json:"price"` // integer dollars; 0 when unknown
	Status    ItemStatus `json:"status"`
	Sample    bool       `json:"sample,omitempty"`
}

// IsBlock reports whether the item is a non-camp block.
func (i *ScheduledItem) IsBlock() bool {
	return i.BlockType != ""
}

// Active reports whether the item counts toward coverage and conflicts.
func (i *ScheduledItem) Active() bool {
	return i.Status != StatusCancelled
}

// HasDates reports whether both bounds are valid calendar dates.
// Items without dates are skipped by derivations, never a crash.
func (i *ScheduledItem) HasDates() bool {
	return i.StartDate.Valid() && i.EndDate.Valid()
}

// Overlaps reports whether the two items share at least one day.
// Only meaningful for items of the same child.
func (i *ScheduledItem) Overlaps(other *ScheduledItem) bool {
	return RangesOverlap(i.StartDate, i.EndDate, other.StartDate, other.EndDate)
}

// IntersectsWeek reports whether the item's range touches the given week slot.
func (i *ScheduledItem) IntersectsWeek(w Week) bool {
	return RangesOverlap(i.StartDate, i.EndDate, w.Start, w.End)
}
