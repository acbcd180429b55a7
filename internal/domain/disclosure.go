package domain

// PlaceholderFriendName replaces the display name of squad members who chose
// not to reveal their identity.
const PlaceholderFriendName = "A friend"

// SquadInterestRow is one peer interest as returned from a squad query.
// Identity fields are pointers so that suppressed values serialize as null
// rather than as empty strings a client might mistake for data.
type SquadInterestRow struct {
	OwnerID           *string `json:"owner_id"`
	MemberName        string  `json:"member_name"`
	ChildID           *string `json:"child_id"`
	ChildName         *string `json:"child_name,omitempty"`
	CampID            string  `json:"camp_id"`
	CampName          string  `json:"camp_name,omitempty"`
	WeekNumber        int     `json:"week_number"`
	LookingForFriends bool    `json:"looking_for_friends"`
}

// Disclose applies the owning member's privacy flags to a row. Rows from
// members with RevealIdentity=false lose the owner id, the child attribution,
// and the display name. This runs at the store boundary; clients are never
// trusted to filter.
func Disclose(member *SquadMember, row SquadInterestRow) SquadInterestRow {
	if member != nil && member.RevealIdentity {
		row.MemberName = member.DisplayName
		return row
	}
	row.OwnerID = nil
	row.MemberName = PlaceholderFriendName
	row.ChildID = nil
	row.ChildName = nil
	return row
}
