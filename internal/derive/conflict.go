package derive

import (
	"slices"

	"github.com/summerplanapp/summerplan-server/internal/domain"
)

// ChildConflicts detects scheduling conflicts among a child's non-cancelled
// items. Two items conflict when their inclusive date ranges share at least
// one day; blocks conflict with camps the same way camps conflict with each
// other. The result maps each conflicting item id to the ids of its
// conflicting partners, ordered by the partners' (start date, id).
//
// excludeID, when non-empty, removes one item from consideration entirely;
// callers use it to preview an edit of an existing item.
func ChildConflicts(s *domain.Snapshot, childID, excludeID string) map[string][]string {
	items := activeDatedItems(s, childID, excludeID)

	conflicts := make(map[string][]string)
	for i := range items {
		for j := i + 1; j < len(items); j++ {
			if items[i].Overlaps(&items[j]) {
				conflicts[items[i].ID] = append(conflicts[items[i].ID], items[j].ID)
				conflicts[items[j].ID] = append(conflicts[items[j].ID], items[i].ID)
			}
		}
	}

	// Partner lists were built by scan order; restore enumeration order.
	order := make(map[string]int, len(items))
	for idx := range items {
		order[items[idx].ID] = idx
	}
	for id := range conflicts {
		slices.SortFunc(conflicts[id], func(a, b string) int {
			return order[a] - order[b]
		})
	}
	return conflicts
}

// ConflictsWith returns the ids of existing items a candidate item would
// conflict with, for what-if checks before staging a mutation.
func ConflictsWith(s *domain.Snapshot, candidate *domain.ScheduledItem, excludeID string) []string {
	if !candidate.Active() || !candidate.HasDates() {
		return nil
	}

	var out []string
	for _, it := range activeDatedItems(s, candidate.ChildID, excludeID) {
		if it.ID == candidate.ID {
			continue
		}
		if it.Overlaps(candidate) {
			out = append(out, it.ID)
		}
	}
	return out
}

// activeDatedItems returns the child's non-cancelled items carrying valid
// dates, in enumeration order.
func activeDatedItems(s *domain.Snapshot, childID, excludeID string) []domain.ScheduledItem {
	var out []domain.ScheduledItem
	for _, it := range s.ItemsForChild(childID) {
		if it.ID == excludeID || !it.Active() || !it.HasDates() {
			continue
		}
		out = append(out, it)
	}
	return out
}
