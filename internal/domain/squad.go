package domain

import (
	"slices"
	"time"
)

// SquadMember is one account's membership in a squad, including its privacy
// flags. RevealIdentity controls whether peers see who this member is;
// ShareSchedule controls whether the member's interests are visible at all.
type SquadMember struct {
	JoinedAt       time.Time `json:"joined_at"`
	UserID         string    `json:"user_id"`
	DisplayName    string    `json:"display_name"`
	RevealIdentity bool      `json:"reveal_identity"`
	ShareSchedule  bool      `json:"share_schedule"`
}

// Squad is a small group of accounts who may, subject to per-member
// disclosure flags, see each other's camp interests.
type Squad struct {
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	ID         string        `json:"id"`
	OwnerID    string        `json:"owner_id"`
	Name       string        `json:"name"`
	InviteCode string        `json:"invite_code"`
	Members    []SquadMember `json:"members"`
}

// Member returns the membership record for the given account, or nil.
func (s *Squad) Member(userID string) *SquadMember {
	for i := range s.Members {
		if s.Members[i].UserID == userID {
			return &s.Members[i]
		}
	}
	return nil
}

// HasMember reports whether the account belongs to the squad.
func (s *Squad) HasMember(userID string) bool {
	return s.Member(userID) != nil
}

// AddMember appends a membership if the account is not already a member.
func (s *Squad) AddMember(m SquadMember) bool {
	if s.HasMember(m.UserID) {
		return false
	}
	s.Members = append(s.Members, m)
	return true
}

// RemoveMember deletes the membership for the given account.
func (s *Squad) RemoveMember(userID string) bool {
	before := len(s.Members)
	s.Members = slices.DeleteFunc(s.Members, func(m SquadMember) bool {
		return m.UserID == userID
	})
	return len(s.Members) != before
}
