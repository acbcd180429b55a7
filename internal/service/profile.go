package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/summerplanapp/summerplan-server/internal/config"
	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
	"github.com/summerplanapp/summerplan-server/internal/store"
	"github.com/summerplanapp/summerplan-server/internal/validation"
)

// ProfileService manages the per-account planning profile. Reads fall back
// to configured season defaults so a fresh account can plan immediately.
type ProfileService struct {
	store     *store.Store
	validator *validation.Validator
	season    config.SeasonConfig
	logger    *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(store *store.Store, validator *validation.Validator, season config.SeasonConfig, logger *slog.Logger) *ProfileService {
	return &ProfileService{
		store:     store,
		validator: validator,
		season:    season,
		logger:    logger,
	}
}

// PutProfileParams is the allow-list payload for replacing the profile.
type PutProfileParams struct {
	SchoolEnd   string `json:"school_end,omitempty" validate:"omitempty,isodate"`
	SchoolStart string `json:"school_start,omitempty" validate:"omitempty,isodate"`
	WorkStart   string `json:"work_start,omitempty" validate:"omitempty,max=40"`
	WorkEnd     string `json:"work_end,omitempty" validate:"omitempty,max=40"`
	Budget      int    `json:"budget,omitempty" validate:"gte=0"`
}

// Get returns the caller's profile, filling school dates from the season
// defaults when unset.
func (s *ProfileService) Get(ctx context.Context, ownerID string) (*domain.Profile, error) {
	profile, err := s.store.Profiles.Get(ctx, ownerID)
	if errors.Is(err, errors.ErrNotFound) {
		profile = &domain.Profile{OwnerID: ownerID}
	} else if err != nil {
		return nil, err
	}

	if profile.SchoolEnd == "" {
		profile.SchoolEnd = domain.Date(s.season.DefaultSchoolEnd)
	}
	if profile.SchoolStart == "" {
		profile.SchoolStart = domain.Date(s.season.DefaultSchoolStart)
	}
	return profile, nil
}

// Put replaces the caller's profile.
func (s *ProfileService) Put(ctx context.Context, ownerID string, params PutProfileParams) (*domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params.WorkStart = validation.Sanitize(params.WorkStart)
	params.WorkEnd = validation.Sanitize(params.WorkEnd)
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}
	if params.SchoolEnd != "" && params.SchoolStart != "" && params.SchoolStart <= params.SchoolEnd {
		return nil, errors.InvalidDateRange("school start must come after school end")
	}

	profile := &domain.Profile{
		UpdatedAt:   time.Now().UTC(),
		OwnerID:     ownerID,
		SchoolEnd:   domain.Date(params.SchoolEnd),
		SchoolStart: domain.Date(params.SchoolStart),
		WorkStart:   params.WorkStart,
		WorkEnd:     params.WorkEnd,
		Budget:      params.Budget,
	}

	_, err := s.store.Profiles.Get(ctx, ownerID)
	switch {
	case errors.Is(err, errors.ErrNotFound):
		err = s.store.Profiles.Create(ctx, ownerID, profile)
	case err == nil:
		err = s.store.Profiles.Update(ctx, ownerID, profile)
	}
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, ownerID)
}
