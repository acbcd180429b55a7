package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/summerplanapp/summerplan-server/internal/catalog"
	"github.com/summerplanapp/summerplan-server/internal/service"
)

func (s *Server) registerCampRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listCamps",
		Method:      http.MethodGet,
		Path:        "/api/v1/camps",
		Summary:     "List camps",
		Description: "Searches the camp directory with relevance ranking and optional filters",
		Tags:        []string{"Camps"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListCamps)

	huma.Register(s.api, huma.Operation{
		OperationID: "getCamp",
		Method:      http.MethodGet,
		Path:        "/api/v1/camps/{id}",
		Summary:     "Get camp",
		Description: "Returns one camp with registration and work-hour views for the caller",
		Tags:        []string{"Camps"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCamp)
}

// === DTOs ===

// ListCampsInput contains search parameters for the camp directory.
type ListCampsInput struct {
	Authorization string `header:"Authorization"`
	Query         string `query:"q" doc:"Free-text search over name and address"`
	Category      string `query:"category" doc:"Category filter, accent and case insensitive"`
	Age           int    `query:"age" doc:"Only camps fitting this age"`
	MaxPrice      int    `query:"max_price" doc:"Only camps at or below this weekly price"`
	Limit         int    `query:"limit" doc:"Maximum results (default 50)"`
}

// ListCampsResponse contains camp search results.
type ListCampsResponse struct {
	Camps []*service.CampView `json:"camps" doc:"Matching camps with derived views"`
}

// ListCampsOutput wraps the camp list response for Huma.
type ListCampsOutput struct {
	Body ListCampsResponse
}

// GetCampInput contains parameters for getting a camp.
type GetCampInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Camp ID"`
}

// CampViewOutput wraps a single camp view response for Huma.
type CampViewOutput struct {
	Body service.CampView
}

// === Handlers ===

func (s *Server) handleListCamps(ctx context.Context, input *ListCampsInput) (*ListCampsOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.services.Camp.List(ctx, accountID, catalog.SearchParams{
		Query:    input.Query,
		Category: input.Category,
		Age:      input.Age,
		MaxPrice: input.MaxPrice,
		Limit:    input.Limit,
	})
	if err != nil {
		return nil, err
	}

	if views == nil {
		views = []*service.CampView{}
	}
	return &ListCampsOutput{Body: ListCampsResponse{Camps: views}}, nil
}

func (s *Server) handleGetCamp(ctx context.Context, input *GetCampInput) (*CampViewOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	view, err := s.services.Camp.Get(ctx, accountID, input.ID)
	if err != nil {
		return nil, err
	}

	return &CampViewOutput{Body: *view}, nil
}
