package derive

import "github.com/summerplanapp/summerplan-server/internal/domain"

// FriendKey identifies a (camp, week) cell in the friend interest map.
type FriendKey struct {
	CampID string `json:"camp_id"`
	Week   int    `json:"week"`
}

// FriendInterestCounts aggregates peer interest across the caller's squads.
// Only interests from members with ShareSchedule=true count; the caller's own
// rows are excluded, and an interest row counts once even when its owner
// shares several squads with the caller. Identity is not part of the output;
// disclosure of who is interested is handled by the squad interest feed.
func FriendInterestCounts(squads []domain.Squad, peerInterests []domain.CampInterest, callerID string) map[FriendKey]int {
	sharing := make(map[string]bool)
	for i := range squads {
		sq := &squads[i]
		if !sq.HasMember(callerID) {
			continue
		}
		for _, m := range sq.Members {
			if m.UserID != callerID && m.ShareSchedule {
				sharing[m.UserID] = true
			}
		}
	}

	counts := make(map[FriendKey]int)
	seen := make(map[string]bool)
	for i := range peerInterests {
		in := &peerInterests[i]
		if !sharing[in.OwnerID] || seen[in.ID] {
			continue
		}
		seen[in.ID] = true
		counts[FriendKey{CampID: in.CampID, Week: in.WeekNumber}]++
	}
	return counts
}
