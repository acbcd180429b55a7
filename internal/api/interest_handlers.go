package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/service"
)

func (s *Server) registerInterestRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listInterests",
		Method:      http.MethodGet,
		Path:        "/api/v1/interests",
		Summary:     "List camp interests",
		Description: "Returns the caller's declared camp interests",
		Tags:        []string{"Interests"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListInterests)

	huma.Register(s.api, huma.Operation{
		OperationID: "upsertInterest",
		Method:      http.MethodPut,
		Path:        "/api/v1/interests",
		Summary:     "Declare camp interest",
		Description: "Declares or refreshes interest for a (child, camp, week) tuple",
		Tags:        []string{"Interests"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpsertInterest)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteInterest",
		Method:      http.MethodDelete,
		Path:        "/api/v1/interests/{id}",
		Summary:     "Delete camp interest",
		Description: "Withdraws a declared interest (owner only)",
		Tags:        []string{"Interests"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteInterest)
}

// === DTOs ===

// ListInterestsInput contains parameters for listing interests.
type ListInterestsInput struct {
	Authorization string `header:"Authorization"`
}

// ListInterestsResponse contains a list of camp interests.
type ListInterestsResponse struct {
	Interests []domain.CampInterest `json:"interests" doc:"Declared interests"`
}

// ListInterestsOutput wraps the list interests response for Huma.
type ListInterestsOutput struct {
	Body ListInterestsResponse
}

// UpsertInterestInput wraps the upsert interest request for Huma.
type UpsertInterestInput struct {
	Authorization string `header:"Authorization"`
	Body          service.UpsertInterestParams
}

// InterestOutput wraps a single interest response for Huma.
type InterestOutput struct {
	Body domain.CampInterest
}

// DeleteInterestInput contains parameters for deleting an interest.
type DeleteInterestInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Interest ID"`
}

// === Handlers ===

func (s *Server) handleListInterests(ctx context.Context, _ *ListInterestsInput) (*ListInterestsOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	interests, err := s.services.Interest.List(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if interests == nil {
		interests = []domain.CampInterest{}
	}
	return &ListInterestsOutput{Body: ListInterestsResponse{Interests: interests}}, nil
}

func (s *Server) handleUpsertInterest(ctx context.Context, input *UpsertInterestInput) (*InterestOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	interest, err := s.services.Interest.Upsert(ctx, accountID, input.Body)
	if err != nil {
		return nil, err
	}

	return &InterestOutput{Body: *interest}, nil
}

func (s *Server) handleDeleteInterest(ctx context.Context, input *DeleteInterestInput) (*struct{}, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Interest.Delete(ctx, accountID, input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}
