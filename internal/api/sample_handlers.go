package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSampleRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "seedSampleData",
		Method:      http.MethodPost,
		Path:        "/api/v1/sample/seed",
		Summary:     "Seed sample data",
		Description: "Creates a small demo family so a fresh account has something to explore",
		Tags:        []string{"Sample"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSeedSample)

	huma.Register(s.api, huma.Operation{
		OperationID: "purgeSampleData",
		Method:      http.MethodPost,
		Path:        "/api/v1/sample/purge",
		Summary:     "Purge sample data",
		Description: "Removes all seeded demo rows, leaving real data untouched",
		Tags:        []string{"Sample"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handlePurgeSample)
}

// === DTOs ===

// SeedSampleInput contains parameters for seeding sample data.
type SeedSampleInput struct {
	Authorization string `header:"Authorization"`
}

// PurgeSampleInput contains parameters for purging sample data.
type PurgeSampleInput struct {
	Authorization string `header:"Authorization"`
}

// PurgeSampleResponse reports how many rows were removed.
type PurgeSampleResponse struct {
	Removed int `json:"removed" doc:"Number of sample rows removed"`
}

// PurgeSampleOutput wraps the purge response for Huma.
type PurgeSampleOutput struct {
	Body PurgeSampleResponse
}

// === Handlers ===

func (s *Server) handleSeedSample(ctx context.Context, _ *SeedSampleInput) (*struct{}, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Sample.Seed(ctx, accountID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}

func (s *Server) handlePurgeSample(ctx context.Context, _ *PurgeSampleInput) (*PurgeSampleOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	removed, err := s.services.Sample.Purge(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return &PurgeSampleOutput{Body: PurgeSampleResponse{Removed: removed}}, nil
}
