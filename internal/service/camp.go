package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/summerplanapp/summerplan-server/internal/catalog"
	"github.com/summerplanapp/summerplan-server/internal/derive"
	"github.com/summerplanapp/summerplan-server/internal/domain"
)

// CampService exposes the camp directory with derived per-camp views.
type CampService struct {
	catalog  *catalog.Catalog
	profiles *ProfileService
	logger   *slog.Logger
}

// NewCampService creates a new camp service.
func NewCampService(cat *catalog.Catalog, profiles *ProfileService, logger *slog.Logger) *CampService {
	return &CampService{
		catalog:  cat,
		profiles: profiles,
		logger:   logger,
	}
}

// CampView is a camp joined with its derived registration urgency and
// work-hour fit for the calling account.
type CampView struct {
	Camp         *domain.Camp        `json:"camp"`
	Registration derive.Registration `json:"registration"`
	WorkFit      derive.WorkFit      `json:"work_fit"`
}

// Get returns one camp with derived views for the caller.
func (s *CampService) Get(ctx context.Context, ownerID, campID string) (*CampView, error) {
	camp, err := s.catalog.Get(campID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, ownerID, camp)
}

// List returns all camps matching the filters, with derived views.
func (s *CampService) List(ctx context.Context, ownerID string, params catalog.SearchParams) ([]*CampView, error) {
	camps, err := s.catalog.Search(ctx, params)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]*CampView, 0, len(camps))
	for _, camp := range camps {
		out = append(out, &CampView{
			Camp:         camp,
			Registration: derive.CampRegistration(camp, now),
			WorkFit:      derive.CampWorkFit(camp, profile),
		})
	}
	return out, nil
}

func (s *CampService) view(ctx context.Context, ownerID string, camp *domain.Camp) (*CampView, error) {
	profile, err := s.profiles.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return &CampView{
		Camp:         camp,
		Registration: derive.CampRegistration(camp, time.Now()),
		WorkFit:      derive.CampWorkFit(camp, profile),
	}, nil
}
