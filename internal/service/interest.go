package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
	"github.com/summerplanapp/summerplan-server/internal/id"
	"github.com/summerplanapp/summerplan-server/internal/store"
	"github.com/summerplanapp/summerplan-server/internal/validation"
)

// InterestService manages camp interest declarations. Interests are unique
// by (owner, child, camp, week) and always upserted.
type InterestService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewInterestService creates a new interest service.
func NewInterestService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *InterestService {
	return &InterestService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// UpsertInterestParams is the payload for declaring interest.
type UpsertInterestParams struct {
	ChildID           string `json:"child_id" validate:"required"`
	CampID            string `json:"camp_id" validate:"required"`
	WeekNumber        int    `json:"week_number" validate:"gte=1,lte=14"`
	LookingForFriends bool   `json:"looking_for_friends,omitempty"`
}

// Upsert declares or refreshes interest for a (child, camp, week) tuple.
func (s *InterestService) Upsert(ctx context.Context, ownerID string, params UpsertInterestParams) (*domain.CampInterest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	child, err := s.store.Children.Get(ctx, params.ChildID)
	if err != nil {
		return nil, err
	}
	if child.OwnerID != ownerID {
		return nil, errors.NotOwner("child belongs to another account")
	}

	key := domain.InterestKey(ownerID, params.ChildID, params.CampID, params.WeekNumber)
	now := time.Now().UTC()

	existing, err := s.store.Interests.GetByIndex(ctx, "key", key)
	if err == nil {
		existing.LookingForFriends = params.LookingForFriends
		existing.UpdatedAt = now
		if err := s.store.Interests.Update(ctx, existing.ID, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}

	interestID, err := id.Generate(id.PrefixInterest)
	if err != nil {
		return nil, errors.Internal("generate interest id", err)
	}
	interest := &domain.CampInterest{
		CreatedAt:         now,
		UpdatedAt:         now,
		ID:                interestID,
		OwnerID:           ownerID,
		ChildID:           params.ChildID,
		CampID:            params.CampID,
		WeekNumber:        params.WeekNumber,
		LookingForFriends: params.LookingForFriends,
	}
	if err := s.store.Interests.Create(ctx, interest.ID, interest); err != nil {
		return nil, err
	}

	s.logger.Info("interest declared",
		"interest_id", interest.ID, "child_id", params.ChildID,
		"camp_id", params.CampID, "week", params.WeekNumber)
	return interest, nil
}

// List returns the caller's interests.
func (s *InterestService) List(ctx context.Context, ownerID string) ([]domain.CampInterest, error) {
	var out []domain.CampInterest
	for interest, err := range s.store.Interests.ListByIndex(ctx, "owner", ownerID) {
		if err != nil {
			return nil, err
		}
		out = append(out, *interest)
	}
	return out, nil
}

// Delete withdraws one of the caller's interests. Idempotent after the
// ownership check.
func (s *InterestService) Delete(ctx context.Context, ownerID, interestID string) error {
	interest, err := s.store.Interests.Get(ctx, interestID)
	if errors.Is(err, errors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if interest.OwnerID != ownerID {
		return errors.NotOwner("interest belongs to another account")
	}
	return s.store.Interests.Delete(ctx, interestID)
}
