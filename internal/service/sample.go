package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
	"github.com/summerplanapp/summerplan-server/internal/id"
	"github.com/summerplanapp/summerplan-server/internal/season"
	"github.com/summerplanapp/summerplan-server/internal/store"
)

// SampleService seeds and purges demo data. Seeded rows carry the sample
// flag so the purge can clear them without touching real planning data.
type SampleService struct {
	store    *store.Store
	profiles *ProfileService
	logger   *slog.Logger
}

// NewSampleService creates a new sample service.
func NewSampleService(store *store.Store, profiles *ProfileService, logger *slog.Logger) *SampleService {
	return &SampleService{
		store:    store,
		profiles: profiles,
		logger:   logger,
	}
}

// Seed populates a demo family for the account: two children, a few camp
// weeks and a vacation block spread over the season, and one interest. Rows
// are flagged as sample data.
func (s *SampleService) Seed(ctx context.Context, ownerID string) error {
	profile, err := s.profiles.Get(ctx, ownerID)
	if err != nil {
		return err
	}
	sea, err := season.Compute(profile.SchoolEnd, profile.SchoolStart)
	if err != nil {
		return err
	}
	if len(sea.Weeks) < 4 {
		return errors.InvalidDateRange("season too short to seed sample data")
	}

	now := time.Now().UTC()
	newID := func(prefix string) string { return id.MustGenerate(prefix) }

	children := []*domain.Child{
		{CreatedAt: now, UpdatedAt: now, ID: newID(id.PrefixChild), OwnerID: ownerID,
			Name: "Demo Maya", Color: "#7c3aed", Age: 8, Sample: true},
		{CreatedAt: now, UpdatedAt: now, ID: newID(id.PrefixChild), OwnerID: ownerID,
			Name: "Demo Leo", Color: "#0ea5e9", Age: 6, Sample: true},
	}
	for _, c := range children {
		if err := s.store.Children.Create(ctx, c.ID, c); err != nil {
			return err
		}
	}

	items := []*domain.ScheduledItem{
		{ID: newID(id.PrefixItem), ChildID: children[0].ID, CampID: "cmp-demo-nature",
			StartDate: sea.Weeks[0].Start, EndDate: sea.Weeks[0].End,
			Price: 350, Status: domain.StatusRegistered},
		{ID: newID(id.PrefixItem), ChildID: children[0].ID, CampID: "cmp-demo-robotics",
			StartDate: sea.Weeks[2].Start, EndDate: sea.Weeks[2].End,
			Price: 550, Status: domain.StatusPlanned},
		{ID: newID(id.PrefixItem), ChildID: children[1].ID, CampID: "cmp-demo-nature",
			StartDate: sea.Weeks[0].Start, EndDate: sea.Weeks[0].End,
			Price: 350, Status: domain.StatusPlanned},
		{ID: newID(id.PrefixItem), ChildID: children[1].ID, BlockType: domain.BlockVacation,
			StartDate: sea.Weeks[3].Start, EndDate: sea.Weeks[3].End,
			Status: domain.StatusConfirmed},
	}
	for _, it := range items {
		it.CreatedAt = now
		it.UpdatedAt = now
		it.OwnerID = ownerID
		it.Sample = true
		if err := s.store.Items.Create(ctx, it.ID, it); err != nil {
			return err
		}
	}

	interest := &domain.CampInterest{
		CreatedAt: now, UpdatedAt: now,
		ID: newID(id.PrefixInterest), OwnerID: ownerID, ChildID: children[0].ID,
		CampID: "cmp-demo-robotics", WeekNumber: sea.Weeks[1].Number,
		LookingForFriends: true, Sample: true,
	}
	if err := s.store.Interests.Create(ctx, interest.ID, interest); err != nil {
		return err
	}

	s.logger.Info("sample data seeded", "owner_id", ownerID,
		"children", len(children), "items", len(items))
	return nil
}

// Purge removes every sample-flagged row for the account in one
// transaction and returns the number of rows removed.
func (s *SampleService) Purge(ctx context.Context, ownerID string) (int, error) {
	return s.store.PurgeSampleData(ctx, ownerID)
}
