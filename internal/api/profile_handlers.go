package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/service"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/v1/profile",
		Summary:     "Get profile",
		Description: "Returns the caller's profile. Unset school dates fall back to season defaults.",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "putProfile",
		Method:      http.MethodPut,
		Path:        "/api/v1/profile",
		Summary:     "Update profile",
		Description: "Replaces the caller's profile settings",
		Tags:        []string{"Profile"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handlePutProfile)
}

// === DTOs ===

// GetProfileInput contains parameters for fetching the profile.
type GetProfileInput struct {
	Authorization string `header:"Authorization"`
}

// ProfileOutput wraps a profile response for Huma.
type ProfileOutput struct {
	Body domain.Profile
}

// PutProfileInput wraps the profile update request for Huma.
type PutProfileInput struct {
	Authorization string `header:"Authorization"`
	Body          service.PutProfileParams
}

// === Handlers ===

func (s *Server) handleGetProfile(ctx context.Context, _ *GetProfileInput) (*ProfileOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: *profile}, nil
}

func (s *Server) handlePutProfile(ctx context.Context, input *PutProfileInput) (*ProfileOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.services.Profile.Put(ctx, accountID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: *profile}, nil
}
