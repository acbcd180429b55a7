package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/summerplanapp/summerplan-server/internal/derive"
)

func (s *Server) registerPlanRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getChildPlan",
		Method:      http.MethodGet,
		Path:        "/api/v1/plan/children/{childId}",
		Summary:     "Get child plan",
		Description: "Returns the derived season plan for one child: coverage, gaps, cost, and conflicts",
		Tags:        []string{"Plan"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetChildPlan)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSummary",
		Method:      http.MethodGet,
		Path:        "/api/v1/plan/summary",
		Summary:     "Get season summary",
		Description: "Returns the cross-child season view with budget and registration status",
		Tags:        []string{"Plan"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetSummary)
}

// === DTOs ===

// GetChildPlanInput contains parameters for a child plan.
type GetChildPlanInput struct {
	Authorization string `header:"Authorization"`
	ChildID       string `path:"childId" doc:"Child ID"`
}

// ChildPlanOutput wraps a derived child plan for Huma.
type ChildPlanOutput struct {
	Body derive.ChildPlan
}

// GetSummaryInput contains parameters for the season summary.
type GetSummaryInput struct {
	Authorization string `header:"Authorization"`
}

// SummaryOutput wraps a derived season summary for Huma.
type SummaryOutput struct {
	Body derive.Summary
}

// === Handlers ===

func (s *Server) handleGetChildPlan(ctx context.Context, input *GetChildPlanInput) (*ChildPlanOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := s.services.Planner.PlanForChild(ctx, accountID, input.ChildID)
	if err != nil {
		return nil, err
	}

	return &ChildPlanOutput{Body: *plan}, nil
}

func (s *Server) handleGetSummary(ctx context.Context, _ *GetSummaryInput) (*SummaryOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.services.Planner.Summary(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &SummaryOutput{Body: *summary}, nil
}
