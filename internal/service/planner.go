package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/summerplanapp/summerplan-server/internal/catalog"
	"github.com/summerplanapp/summerplan-server/internal/config"
	"github.com/summerplanapp/summerplan-server/internal/derive"
	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
	"github.com/summerplanapp/summerplan-server/internal/season"
	"github.com/summerplanapp/summerplan-server/internal/store"
)

// PlannerService assembles account snapshots and runs derivations over
// them. Everything derived flows from a Snapshot; the service never hands
// store rows to the derivation engine directly.
type PlannerService struct {
	store    *store.Store
	catalog  *catalog.Catalog
	profiles *ProfileService
	season   config.SeasonConfig
	logger   *slog.Logger
}

// NewPlannerService creates a new planner service.
func NewPlannerService(store *store.Store, cat *catalog.Catalog, profiles *ProfileService, seasonCfg config.SeasonConfig, logger *slog.Logger) *PlannerService {
	return &PlannerService{
		store:    store,
		catalog:  cat,
		profiles: profiles,
		season:   seasonCfg,
		logger:   logger,
	}
}

// Snapshot builds the account's current immutable view: season weeks from
// the profile's school dates, all owned rows, and the camp directory.
func (s *PlannerService) Snapshot(ctx context.Context, ownerID string) (*domain.Snapshot, error) {
	profile, err := s.profiles.Get(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	sea, err := season.Compute(profile.SchoolEnd, profile.SchoolStart)
	if err != nil {
		return nil, err
	}

	snap := &domain.Snapshot{
		Weeks:   sea.Weeks,
		Camps:   s.catalog.Camps(),
		Profile: profile,
	}

	for child, err := range s.store.Children.ListByIndex(ctx, "owner", ownerID) {
		if err != nil {
			return nil, err
		}
		snap.Children = append(snap.Children, *child)
	}
	for item, err := range s.store.Items.ListByIndex(ctx, "owner", ownerID) {
		if err != nil {
			return nil, err
		}
		snap.Items = append(snap.Items, *item)
	}
	for interest, err := range s.store.Interests.ListByIndex(ctx, "owner", ownerID) {
		if err != nil {
			return nil, err
		}
		snap.Interests = append(snap.Interests, *interest)
	}

	domain.SortItems(snap.Items)
	return snap, nil
}

// PlanForChild derives the full plan view for one of the caller's children.
func (s *PlannerService) PlanForChild(ctx context.Context, ownerID, childID string) (*derive.ChildPlan, error) {
	snap, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !hasChild(snap, childID) {
		return nil, errors.NotFound("child not found")
	}
	return derive.PlanForChild(snap, childID), nil
}

// Summary derives the account-wide season view from the live snapshot.
func (s *PlannerService) Summary(ctx context.Context, ownerID string) (*derive.Summary, error) {
	snap, err := s.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return derive.Summarize(snap, s.season.BudgetWarnFraction, time.Now()), nil
}

// SummaryFor derives the account-wide view from an already materialized
// snapshot, for the preview path.
func (s *PlannerService) SummaryFor(snap *domain.Snapshot) *derive.Summary {
	return derive.Summarize(snap, s.season.BudgetWarnFraction, time.Now())
}

func hasChild(snap *domain.Snapshot, childID string) bool {
	for _, c := range snap.Children {
		if c.ID == childID {
			return true
		}
	}
	return false
}
