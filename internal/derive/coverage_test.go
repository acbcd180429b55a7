package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/season"
)

// snapshot2026 builds a snapshot over the 11-week 2026 season.
func snapshot2026(t *testing.T) *domain.Snapshot {
	t.Helper()
	s, err := season.Compute("2026-06-05", "2026-08-19")
	require.NoError(t, err)
	require.Len(t, s.Weeks, 11)

	return &domain.Snapshot{
		Weeks:    s.Weeks,
		Children: []domain.Child{{ID: "c1", OwnerID: "acc-1", Name: "Maya", Age: 8}},
		Camps:    map[string]*domain.Camp{},
	}
}

// weekItem makes a planned camp item spanning the given season week.
func weekItem(id string, w domain.Week) domain.ScheduledItem {
	return domain.ScheduledItem{
		ID:        id,
		OwnerID:   "acc-1",
		ChildID:   "c1",
		CampID:    "cmp-1",
		StartDate: w.Start,
		EndDate:   w.End,
		Status:    domain.StatusPlanned,
		Price:     100,
	}
}

func TestChildCoverage_WeekPartition(t *testing.T) {
	snap := snapshot2026(t)
	snap.Items = []domain.ScheduledItem{
		weekItem("i1", snap.Weeks[0]),
		weekItem("i2", snap.Weeks[1]),
		weekItem("i5", snap.Weeks[4]),
	}

	cov := ChildCoverage(snap, "c1")

	assert.Equal(t, []int{1, 2, 5}, cov.CoveredWeeks)
	assert.Equal(t, []int{3, 4, 6, 7, 8, 9, 10, 11}, cov.GapWeeks)
	assert.Equal(t, 27, cov.Percent)
}

func TestChildCoverage_CancelledItemsDoNotCover(t *testing.T) {
	snap := snapshot2026(t)
	it := weekItem("i1", snap.Weeks[0])
	it.Status = domain.StatusCancelled
	snap.Items = []domain.ScheduledItem{it}

	cov := ChildCoverage(snap, "c1")
	assert.Empty(t, cov.CoveredWeeks)
	assert.Len(t, cov.GapWeeks, 11)
	assert.Equal(t, 0, cov.Percent)
}

func TestChildCoverage_MultiWeekItemCountsEachWeek(t *testing.T) {
	snap := snapshot2026(t)
	snap.Items = []domain.ScheduledItem{{
		ID:        "span",
		ChildID:   "c1",
		BlockType: domain.BlockVacation,
		StartDate: snap.Weeks[2].Start,
		EndDate:   snap.Weeks[4].End,
		Status:    domain.StatusPlanned,
	}}

	cov := ChildCoverage(snap, "c1")
	assert.Equal(t, []int{3, 4, 5}, cov.CoveredWeeks)
}

func TestChildCoverage_ZeroLengthItemCountsItsWeekOnly(t *testing.T) {
	snap := snapshot2026(t)
	day := snap.Weeks[3].Start
	snap.Items = []domain.ScheduledItem{{
		ID:        "one-day",
		ChildID:   "c1",
		CampID:    "cmp-1",
		StartDate: day,
		EndDate:   day,
		Status:    domain.StatusPlanned,
	}}

	cov := ChildCoverage(snap, "c1")
	assert.Equal(t, []int{4}, cov.CoveredWeeks)
}

func TestChildCoverage_MonotoneUnderInsert(t *testing.T) {
	snap := snapshot2026(t)
	snap.Items = []domain.ScheduledItem{weekItem("i1", snap.Weeks[0])}
	before := ChildCoverage(snap, "c1")

	grown := snap.Clone()
	grown.Items = append(grown.Items, weekItem("i7", grown.Weeks[6]))
	after := ChildCoverage(grown, "c1")

	assert.GreaterOrEqual(t, len(after.CoveredWeeks), len(before.CoveredWeeks))
	assert.Subset(t, after.CoveredWeeks, before.CoveredWeeks)
}

func TestChildCoverage_PartitionProperty(t *testing.T) {
	snap := snapshot2026(t)
	snap.Items = []domain.ScheduledItem{
		weekItem("i1", snap.Weeks[0]),
		weekItem("i9", snap.Weeks[8]),
	}

	cov := ChildCoverage(snap, "c1")

	seen := make(map[int]int)
	for _, w := range cov.CoveredWeeks {
		seen[w]++
	}
	for _, w := range cov.GapWeeks {
		seen[w]++
	}
	// Every season week appears exactly once across the two sets.
	assert.Len(t, seen, len(snap.Weeks))
	for w, n := range seen {
		assert.Equal(t, 1, n, "week %d", w)
	}
}

func TestChildCoverage_OutOfSeasonItemDoesNotCover(t *testing.T) {
	snap := snapshot2026(t)
	snap.Items = []domain.ScheduledItem{{
		ID:        "winter",
		ChildID:   "c1",
		CampID:    "cmp-1",
		StartDate: "2026-12-21",
		EndDate:   "2026-12-24",
		Status:    domain.StatusPlanned,
		Price:     300,
	}}

	cov := ChildCoverage(snap, "c1")
	assert.Empty(t, cov.CoveredWeeks)
	// Cost still counts it.
	assert.Equal(t, 300, ChildCost(snap, "c1"))
}

func TestChildCoverage_EmptySnapshot(t *testing.T) {
	cov := ChildCoverage(&domain.Snapshot{}, "c1")
	assert.Empty(t, cov.CoveredWeeks)
	assert.Empty(t, cov.GapWeeks)
	assert.Equal(t, 0, cov.Percent)
}
