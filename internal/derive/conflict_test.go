package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summerplanapp/summerplan-server/internal/domain"
)

func conflictSnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Children: []domain.Child{{ID: "c1"}},
		Items: []domain.ScheduledItem{
			{ID: "A", ChildID: "c1", CampID: "cmp-1", StartDate: "2026-06-08", EndDate: "2026-06-12", Status: domain.StatusPlanned},
			{ID: "B", ChildID: "c1", CampID: "cmp-2", StartDate: "2026-06-10", EndDate: "2026-06-16", Status: domain.StatusPlanned},
			{ID: "C", ChildID: "c1", CampID: "cmp-3", StartDate: "2026-07-06", EndDate: "2026-07-10", Status: domain.StatusPlanned},
		},
	}
}

func TestChildConflicts_OverlapIsSymmetric(t *testing.T) {
	conflicts := ChildConflicts(conflictSnapshot(), "c1", "")

	require.Contains(t, conflicts, "A")
	require.Contains(t, conflicts, "B")
	assert.Equal(t, []string{"B"}, conflicts["A"])
	assert.Equal(t, []string{"A"}, conflicts["B"])
	assert.NotContains(t, conflicts, "C")
}

func TestChildConflicts_NoSelfConflict(t *testing.T) {
	conflicts := ChildConflicts(conflictSnapshot(), "c1", "")
	for id, partners := range conflicts {
		assert.NotContains(t, partners, id)
	}
}

func TestChildConflicts_ExcludeID(t *testing.T) {
	conflicts := ChildConflicts(conflictSnapshot(), "c1", "B")
	assert.Empty(t, conflicts)
}

func TestChildConflicts_BlocksConflictWithCamps(t *testing.T) {
	snap := conflictSnapshot()
	snap.Items = append(snap.Items, domain.ScheduledItem{
		ID: "V", ChildID: "c1", BlockType: domain.BlockVacation,
		StartDate: "2026-07-08", EndDate: "2026-07-15", Status: domain.StatusPlanned,
	})

	conflicts := ChildConflicts(snap, "c1", "")
	assert.Contains(t, conflicts["C"], "V")
	assert.Contains(t, conflicts["V"], "C")
}

func TestChildConflicts_CancelledAndUndatedSkipped(t *testing.T) {
	snap := conflictSnapshot()
	snap.Items[1].Status = domain.StatusCancelled
	snap.Items = append(snap.Items, domain.ScheduledItem{
		ID: "broken", ChildID: "c1", Status: domain.StatusPlanned,
	})

	conflicts := ChildConflicts(snap, "c1", "")
	assert.Empty(t, conflicts)
}

func TestChildConflicts_DifferentChildrenNeverConflict(t *testing.T) {
	snap := conflictSnapshot()
	snap.Items[1].ChildID = "c2"

	conflicts := ChildConflicts(snap, "c1", "")
	assert.Empty(t, conflicts)
}

func TestConflictsWith_Candidate(t *testing.T) {
	snap := conflictSnapshot()
	candidate := &domain.ScheduledItem{
		ID: "new", ChildID: "c1", CampID: "cmp-9",
		StartDate: "2026-06-12", EndDate: "2026-06-12", Status: domain.StatusPlanned,
	}

	ids := ConflictsWith(snap, candidate, "")
	assert.Equal(t, []string{"A", "B"}, ids)

	// Excluding A simulates editing A into the candidate's range.
	ids = ConflictsWith(snap, candidate, "A")
	assert.Equal(t, []string{"B"}, ids)
}

func TestConflictsWith_AdjacentDatesTouchInclusive(t *testing.T) {
	snap := conflictSnapshot()
	candidate := &domain.ScheduledItem{
		ID: "new", ChildID: "c1", CampID: "cmp-9",
		StartDate: "2026-06-16", EndDate: "2026-06-19", Status: domain.StatusPlanned,
	}

	// B ends 2026-06-16; inclusive bounds overlap on that day.
	assert.Equal(t, []string{"B"}, ConflictsWith(snap, candidate, ""))
}
