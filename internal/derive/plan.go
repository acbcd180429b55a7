package derive

import (
	"time"

	"github.com/summerplanapp/summerplan-server/internal/domain"
)

// ChildPlan is the full derived view for one child: the season weeks, the
// coverage partition, total cost, the child's items in enumeration order, and
// the conflict map.
type ChildPlan struct {
	ChildID         string                 `json:"child_id"`
	Weeks           []domain.Week          `json:"weeks"`
	CoveredWeeks    []int                  `json:"covered_weeks"`
	GapWeeks        []int                  `json:"gap_weeks"`
	CoveragePercent int                    `json:"coverage_percent"`
	TotalCost       int                    `json:"total_cost"`
	Items           []domain.ScheduledItem `json:"items"`
	Conflicts       map[string][]string    `json:"conflicts_by_item_id"`
}

// PlanForChild derives the complete plan view for one child.
func PlanForChild(s *domain.Snapshot, childID string) *ChildPlan {
	cov := ChildCoverage(s, childID)
	return &ChildPlan{
		ChildID:         childID,
		Weeks:           s.Weeks,
		CoveredWeeks:    cov.CoveredWeeks,
		GapWeeks:        cov.GapWeeks,
		CoveragePercent: cov.Percent,
		TotalCost:       ChildCost(s, childID),
		Items:           s.ItemsForChild(childID),
		Conflicts:       ChildConflicts(s, childID, ""),
	}
}

// Summary is the derived cross-child season view for an account.
type Summary struct {
	TotalCost     int                     `json:"total_cost"`
	Budget        int                     `json:"budget"`
	BudgetWarn    bool                    `json:"budget_warn"`
	Children      []*ChildPlan            `json:"children"`
	Registrations map[string]Registration `json:"registration_by_camp_id"`
	WorkFits      map[string]WorkFit      `json:"work_hour_by_camp_id"`
}

// Summarize derives the account-wide view: every child's plan, the combined
// cost against budget, and the registration and work-hour views for each
// camp referenced anywhere in the snapshot. warnFraction is the budget
// fraction at which BudgetWarn trips.
func Summarize(s *domain.Snapshot, warnFraction float64, now time.Time) *Summary {
	sum := &Summary{
		Registrations: make(map[string]Registration),
		WorkFits:      make(map[string]WorkFit),
	}

	for _, c := range s.Children {
		plan := PlanForChild(s, c.ID)
		sum.Children = append(sum.Children, plan)
		sum.TotalCost += plan.TotalCost
	}

	for id, camp := range s.Camps {
		sum.Registrations[id] = CampRegistration(camp, now)
		sum.WorkFits[id] = CampWorkFit(camp, s.Profile)
	}

	if s.Profile != nil && s.Profile.Budget > 0 {
		sum.Budget = s.Profile.Budget
		sum.BudgetWarn = float64(sum.TotalCost) >= warnFraction*float64(s.Profile.Budget)
	}
	return sum
}
