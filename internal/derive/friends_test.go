package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/summerplanapp/summerplan-server/internal/domain"
)

func friendSquad() domain.Squad {
	return domain.Squad{
		ID:      "sqd-1",
		OwnerID: "me",
		Members: []domain.SquadMember{
			{UserID: "me", DisplayName: "Me", ShareSchedule: true},
			{UserID: "p1", DisplayName: "Jordan", ShareSchedule: true, RevealIdentity: true},
			{UserID: "p2", DisplayName: "Sam", ShareSchedule: true},
			{UserID: "p3", DisplayName: "Riley", ShareSchedule: false},
		},
	}
}

func TestFriendInterestCounts(t *testing.T) {
	interests := []domain.CampInterest{
		{ID: "i1", OwnerID: "p1", CampID: "cmp-1", WeekNumber: 3},
		{ID: "i2", OwnerID: "p2", CampID: "cmp-1", WeekNumber: 3},
		{ID: "i3", OwnerID: "p2", CampID: "cmp-2", WeekNumber: 5},
		{ID: "i4", OwnerID: "p3", CampID: "cmp-1", WeekNumber: 3}, // not sharing
		{ID: "i5", OwnerID: "me", CampID: "cmp-1", WeekNumber: 3}, // caller excluded
	}

	counts := FriendInterestCounts([]domain.Squad{friendSquad()}, interests, "me")

	assert.Equal(t, 2, counts[FriendKey{CampID: "cmp-1", Week: 3}])
	assert.Equal(t, 1, counts[FriendKey{CampID: "cmp-2", Week: 5}])
	assert.Len(t, counts, 2)
}

func TestFriendInterestCounts_SharedSquadsCountOnce(t *testing.T) {
	second := friendSquad()
	second.ID = "sqd-2"

	interests := []domain.CampInterest{
		{ID: "i1", OwnerID: "p1", CampID: "cmp-1", WeekNumber: 2},
	}

	counts := FriendInterestCounts([]domain.Squad{friendSquad(), second}, interests, "me")
	assert.Equal(t, 1, counts[FriendKey{CampID: "cmp-1", Week: 2}])
}

func TestFriendInterestCounts_CallerNotInSquad(t *testing.T) {
	interests := []domain.CampInterest{
		{ID: "i1", OwnerID: "p1", CampID: "cmp-1", WeekNumber: 2},
	}

	counts := FriendInterestCounts([]domain.Squad{friendSquad()}, interests, "stranger")
	assert.Empty(t, counts)
}
