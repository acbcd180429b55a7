package derive

import "github.com/summerplanapp/summerplan-server/internal/domain"

// ChildCost sums the price of every non-cancelled scheduled item for the
// child, in integer dollars. Out-of-season items still count; unknown prices
// count as zero.
func ChildCost(s *domain.Snapshot, childID string) int {
	total := 0
	for i := range s.Items {
		it := &s.Items[i]
		if it.ChildID != childID || !it.Active() {
			continue
		}
		total += it.Price
	}
	return total
}

// TotalCost sums per-child totals across every child in the snapshot.
func TotalCost(s *domain.Snapshot) int {
	total := 0
	for _, c := range s.Children {
		total += ChildCost(s, c.ID)
	}
	return total
}
