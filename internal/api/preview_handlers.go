package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/summerplanapp/summerplan-server/internal/derive"
	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/preview"
	"github.com/summerplanapp/summerplan-server/internal/service"
)

func (s *Server) registerPreviewRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "stagePreviewItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/preview/items",
		Summary:     "Stage item insert",
		Description: "Stages a new scheduled item in the preview overlay without persisting it",
		Tags:        []string{"Preview"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleStageInsertItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "stagePreviewItemUpdate",
		Method:      http.MethodPatch,
		Path:        "/api/v1/preview/items/{id}",
		Summary:     "Stage item update",
		Description: "Stages an edit to a scheduled item in the preview overlay",
		Tags:        []string{"Preview"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleStageUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "stagePreviewItemDelete",
		Method:      http.MethodDelete,
		Path:        "/api/v1/preview/items/{id}",
		Summary:     "Stage item delete",
		Description: "Stages a scheduled item deletion in the preview overlay",
		Tags:        []string{"Preview"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleStageDeleteItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPreviewChildPlan",
		Method:      http.MethodGet,
		Path:        "/api/v1/preview/plan/children/{childId}",
		Summary:     "Get previewed child plan",
		Description: "Returns the child plan as it would look with staged operations applied",
		Tags:        []string{"Preview"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetPreviewChildPlan)

	huma.Register(s.api, huma.Operation{
		OperationID: "getPreviewSummary",
		Method:      http.MethodGet,
		Path:        "/api/v1/preview/plan/summary",
		Summary:     "Get previewed summary",
		Description: "Returns the season summary as it would look with staged operations applied",
		Tags:        []string{"Preview"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetPreviewSummary)

	huma.Register(s.api, huma.Operation{
		OperationID: "listPreviewOps",
		Method:      http.MethodGet,
		Path:        "/api/v1/preview/ops",
		Summary:     "List staged operations",
		Description: "Returns the caller's staged operations in order",
		Tags:        []string{"Preview"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListPreviewOps)

	huma.Register(s.api, huma.Operation{
		OperationID: "commitPreview",
		Method:      http.MethodPost,
		Path:        "/api/v1/preview/commit",
		Summary:     "Commit preview",
		Description: "Replays staged operations against the store in order, stopping at the first failure. Unapplied operations stay staged for retry.",
		Tags:        []string{"Preview"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCommitPreview)

	huma.Register(s.api, huma.Operation{
		OperationID: "discardPreview",
		Method:      http.MethodPost,
		Path:        "/api/v1/preview/discard",
		Summary:     "Discard preview",
		Description: "Drops all staged operations without applying them",
		Tags:        []string{"Preview"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDiscardPreview)
}

// === DTOs ===

// StageInsertItemInput wraps the staged insert request for Huma.
type StageInsertItemInput struct {
	Authorization string `header:"Authorization"`
	Body          service.CreateItemParams
}

// StageUpdateItemInput wraps the staged update request for Huma.
type StageUpdateItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
	Body          service.UpdateItemParams
}

// StageDeleteItemInput contains parameters for a staged delete.
type StageDeleteItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
}

// StagedItemOutput wraps the staged item for Huma.
type StagedItemOutput struct {
	Body domain.ScheduledItem
}

// GetPreviewChildPlanInput contains parameters for a previewed child plan.
type GetPreviewChildPlanInput struct {
	Authorization string `header:"Authorization"`
	ChildID       string `path:"childId" doc:"Child ID"`
}

// PreviewChildPlanOutput wraps a previewed child plan for Huma.
type PreviewChildPlanOutput struct {
	Body derive.ChildPlan
}

// GetPreviewSummaryInput contains parameters for the previewed summary.
type GetPreviewSummaryInput struct {
	Authorization string `header:"Authorization"`
}

// PreviewSummaryOutput wraps a previewed season summary for Huma.
type PreviewSummaryOutput struct {
	Body derive.Summary
}

// ListPreviewOpsInput contains parameters for listing staged operations.
type ListPreviewOpsInput struct {
	Authorization string `header:"Authorization"`
}

// ListPreviewOpsResponse contains the staged operations.
type ListPreviewOpsResponse struct {
	Ops []preview.Op `json:"ops" doc:"Staged operations in replay order"`
}

// ListPreviewOpsOutput wraps the staged operations for Huma.
type ListPreviewOpsOutput struct {
	Body ListPreviewOpsResponse
}

// CommitPreviewInput contains parameters for committing the preview.
type CommitPreviewInput struct {
	Authorization string `header:"Authorization"`
}

// CommitPreviewResponse reports the outcome of a preview commit.
type CommitPreviewResponse struct {
	Applied     int          `json:"applied" doc:"Operations applied before stopping"`
	Failed      bool         `json:"failed" doc:"Whether a failure stopped the replay"`
	FailedIndex int          `json:"failed_index,omitempty" doc:"Index of the failing operation"`
	Error       string       `json:"error,omitempty" doc:"Failure message"`
	Remaining   []preview.Op `json:"remaining,omitempty" doc:"Operations still staged after the failure"`
}

// CommitPreviewOutput wraps the commit outcome for Huma.
type CommitPreviewOutput struct {
	Body CommitPreviewResponse
}

// DiscardPreviewInput contains parameters for discarding the preview.
type DiscardPreviewInput struct {
	Authorization string `header:"Authorization"`
}

// === Handlers ===

func (s *Server) handleStageInsertItem(ctx context.Context, input *StageInsertItemInput) (*StagedItemOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Preview.StageInsertItem(ctx, accountID, input.Body)
	if err != nil {
		return nil, err
	}

	return &StagedItemOutput{Body: *item}, nil
}

func (s *Server) handleStageUpdateItem(ctx context.Context, input *StageUpdateItemInput) (*StagedItemOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Preview.StageUpdateItem(ctx, accountID, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &StagedItemOutput{Body: *item}, nil
}

func (s *Server) handleStageDeleteItem(ctx context.Context, input *StageDeleteItemInput) (*struct{}, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Preview.StageDeleteItem(ctx, accountID, input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}

func (s *Server) handleGetPreviewChildPlan(ctx context.Context, input *GetPreviewChildPlanInput) (*PreviewChildPlanOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	plan, err := s.services.Preview.PlanForChild(ctx, accountID, input.ChildID)
	if err != nil {
		return nil, err
	}

	return &PreviewChildPlanOutput{Body: *plan}, nil
}

func (s *Server) handleGetPreviewSummary(ctx context.Context, _ *GetPreviewSummaryInput) (*PreviewSummaryOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.services.Preview.Summary(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &PreviewSummaryOutput{Body: *summary}, nil
}

func (s *Server) handleListPreviewOps(ctx context.Context, _ *ListPreviewOpsInput) (*ListPreviewOpsOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	ops := s.services.Preview.Pending(accountID)
	if ops == nil {
		ops = []preview.Op{}
	}
	return &ListPreviewOpsOutput{Body: ListPreviewOpsResponse{Ops: ops}}, nil
}

func (s *Server) handleCommitPreview(ctx context.Context, _ *CommitPreviewInput) (*CommitPreviewOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	result := s.services.Preview.Commit(ctx, accountID)

	resp := CommitPreviewResponse{
		Applied:     result.Applied,
		Failed:      result.Failed,
		FailedIndex: result.FailedIndex,
		Remaining:   result.Remaining,
	}
	if result.Err != nil {
		resp.Error = result.Err.Error()
	}

	return &CommitPreviewOutput{Body: resp}, nil
}

func (s *Server) handleDiscardPreview(ctx context.Context, _ *DiscardPreviewInput) (*struct{}, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	s.services.Preview.Discard(accountID)
	return &struct{}{}, nil
}
