// Package derive computes derived views over a planning snapshot: coverage,
// cost, conflicts, registration urgency, work-hour fit, and friend interest.
// Every function here is a pure, single-pass function of an immutable
// snapshot; nothing mutates its input and nothing can fail. Scheduled items
// in any output are ordered by start date ascending, then id ascending.
package derive

import (
	"math"

	"github.com/summerplanapp/summerplan-server/internal/domain"
)

// Coverage holds the per-child week coverage view.
type Coverage struct {
	CoveredWeeks []int `json:"covered_weeks"`
	GapWeeks     []int `json:"gap_weeks"`
	Percent      int   `json:"percent"`
}

// ChildCoverage partitions the season weeks for one child into covered weeks
// and gaps. A week is covered when any non-cancelled scheduled item for the
// child intersects its date span; an item spanning several weeks counts each
// week it touches. Covered and gap sets are disjoint and together contain
// every season week.
func ChildCoverage(s *domain.Snapshot, childID string) Coverage {
	items := s.ItemsForChild(childID)

	cov := Coverage{
		CoveredWeeks: []int{},
		GapWeeks:     []int{},
	}

	for _, w := range s.Weeks {
		covered := false
		for i := range items {
			if !items[i].Active() || !items[i].HasDates() {
				continue
			}
			if items[i].IntersectsWeek(w) {
				covered = true
				break
			}
		}
		if covered {
			cov.CoveredWeeks = append(cov.CoveredWeeks, w.Number)
		} else {
			cov.GapWeeks = append(cov.GapWeeks, w.Number)
		}
	}

	if len(s.Weeks) > 0 {
		cov.Percent = int(math.Round(float64(len(cov.CoveredWeeks)) / float64(len(s.Weeks)) * 100))
	}
	return cov
}
