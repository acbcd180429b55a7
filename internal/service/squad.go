package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/summerplanapp/summerplan-server/internal/catalog"
	"github.com/summerplanapp/summerplan-server/internal/derive"
	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
	"github.com/summerplanapp/summerplan-server/internal/id"
	"github.com/summerplanapp/summerplan-server/internal/ratelimit"
	"github.com/summerplanapp/summerplan-server/internal/store"
	"github.com/summerplanapp/summerplan-server/internal/validation"
)

// SquadService manages friend squads and the cross-account interest feed.
// Every cross-user read passes through the disclosure filter here; clients
// never see undisclosed identity fields.
type SquadService struct {
	store     *store.Store
	catalog   *catalog.Catalog
	validator *validation.Validator
	joinLimit *ratelimit.KeyedRateLimiter
	logger    *slog.Logger
}

// NewSquadService creates a new squad service. joinLimit guards the
// invite-code join path against brute forcing.
func NewSquadService(store *store.Store, cat *catalog.Catalog, validator *validation.Validator, joinLimit *ratelimit.KeyedRateLimiter, logger *slog.Logger) *SquadService {
	return &SquadService{
		store:     store,
		catalog:   cat,
		validator: validator,
		joinLimit: joinLimit,
		logger:    logger,
	}
}

// CreateSquadParams is the payload for creating a squad.
type CreateSquadParams struct {
	Name           string `json:"name" validate:"required,min=1,max=100"`
	DisplayName    string `json:"display_name" validate:"required,min=1,max=100"`
	RevealIdentity bool   `json:"reveal_identity,omitempty"`
	ShareSchedule  bool   `json:"share_schedule,omitempty"`
}

// JoinSquadParams is the payload for joining by invite code.
type JoinSquadParams struct {
	InviteCode     string `json:"invite_code" validate:"required,len=8"`
	DisplayName    string `json:"display_name" validate:"required,min=1,max=100"`
	RevealIdentity bool   `json:"reveal_identity,omitempty"`
	ShareSchedule  bool   `json:"share_schedule,omitempty"`
}

// MemberFlagsParams updates the caller's own privacy flags in a squad.
type MemberFlagsParams struct {
	RevealIdentity bool `json:"reveal_identity,omitempty"`
	ShareSchedule  bool `json:"share_schedule,omitempty"`
}

// Create makes a new squad with the caller as first member.
func (s *SquadService) Create(ctx context.Context, ownerID string, params CreateSquadParams) (*domain.Squad, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params.Name = validation.Sanitize(params.Name)
	params.DisplayName = validation.Sanitize(params.DisplayName)
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	squadID, err := id.Generate(id.PrefixSquad)
	if err != nil {
		return nil, errors.Internal("generate squad id", err)
	}
	code, err := id.InviteCode()
	if err != nil {
		return nil, errors.Internal("generate invite code", err)
	}

	now := time.Now().UTC()
	squad := &domain.Squad{
		CreatedAt:  now,
		UpdatedAt:  now,
		ID:         squadID,
		OwnerID:    ownerID,
		Name:       params.Name,
		InviteCode: code,
	}
	squad.AddMember(domain.SquadMember{
		JoinedAt:       now,
		UserID:         ownerID,
		DisplayName:    params.DisplayName,
		RevealIdentity: params.RevealIdentity,
		ShareSchedule:  params.ShareSchedule,
	})

	if err := s.store.Squads.Create(ctx, squad.ID, squad); err != nil {
		return nil, err
	}

	s.logger.Info("squad created", "squad_id", squad.ID, "owner_id", ownerID)
	return squad, nil
}

// Join adds the caller to the squad behind an invite code. Rate limited per
// caller to make code guessing impractical.
func (s *SquadService) Join(ctx context.Context, userID string, params JoinSquadParams) (*domain.Squad, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !s.joinLimit.Allow(userID) {
		return nil, errors.Unauthorized("too many join attempts, slow down")
	}

	params.DisplayName = validation.Sanitize(params.DisplayName)
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	squad, err := s.store.Squads.GetByIndex(ctx, "invite_code", params.InviteCode)
	if err != nil {
		return nil, err
	}
	if squad.HasMember(userID) {
		return squad, nil
	}

	squad.AddMember(domain.SquadMember{
		JoinedAt:       time.Now().UTC(),
		UserID:         userID,
		DisplayName:    params.DisplayName,
		RevealIdentity: params.RevealIdentity,
		ShareSchedule:  params.ShareSchedule,
	})
	squad.UpdatedAt = time.Now().UTC()

	if err := s.store.Squads.Update(ctx, squad.ID, squad); err != nil {
		return nil, err
	}

	s.logger.Info("squad joined", "squad_id", squad.ID, "user_id", userID)
	return squad, nil
}

// Leave removes the caller from a squad. The last member leaving deletes
// the squad.
func (s *SquadService) Leave(ctx context.Context, userID, squadID string) error {
	squad, err := s.store.Squads.Get(ctx, squadID)
	if err != nil {
		return err
	}
	if !squad.HasMember(userID) {
		return errors.NotFound("not a member of this squad")
	}

	squad.RemoveMember(userID)
	if len(squad.Members) == 0 {
		return s.store.Squads.Delete(ctx, squadID)
	}
	squad.UpdatedAt = time.Now().UTC()
	return s.store.Squads.Update(ctx, squad.ID, squad)
}

// UpdateMemberFlags changes the caller's own disclosure flags in a squad.
func (s *SquadService) UpdateMemberFlags(ctx context.Context, userID, squadID string, params MemberFlagsParams) (*domain.Squad, error) {
	squad, err := s.store.Squads.Get(ctx, squadID)
	if err != nil {
		return nil, err
	}
	member := squad.Member(userID)
	if member == nil {
		return nil, errors.NotFound("not a member of this squad")
	}

	member.RevealIdentity = params.RevealIdentity
	member.ShareSchedule = params.ShareSchedule
	squad.UpdatedAt = time.Now().UTC()

	if err := s.store.Squads.Update(ctx, squad.ID, squad); err != nil {
		return nil, err
	}
	return squad, nil
}

// ListForUser returns every squad the caller belongs to.
func (s *SquadService) ListForUser(ctx context.Context, userID string) ([]*domain.Squad, error) {
	var out []*domain.Squad
	for squad, err := range s.store.Squads.ListByIndex(ctx, "member", userID) {
		if err != nil {
			return nil, err
		}
		out = append(out, squad)
	}
	slices.SortFunc(out, func(a, b *domain.Squad) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out, nil
}

// SquadInterests returns the peer interest feed for one squad: every
// interest row from members sharing their schedule, with the disclosure
// filter applied per owning member.
func (s *SquadService) SquadInterests(ctx context.Context, userID, squadID string) ([]domain.SquadInterestRow, error) {
	squad, err := s.store.Squads.Get(ctx, squadID)
	if err != nil {
		return nil, err
	}
	if !squad.HasMember(userID) {
		return nil, errors.NotOwner("not a member of this squad")
	}

	var rows []domain.SquadInterestRow
	for _, member := range squad.Members {
		if member.UserID == userID || !member.ShareSchedule {
			continue
		}

		childNames, err := s.childNames(ctx, member.UserID)
		if err != nil {
			return nil, err
		}

		for interest, err := range s.store.Interests.ListByIndex(ctx, "owner", member.UserID) {
			if err != nil {
				return nil, err
			}
			row := domain.SquadInterestRow{
				OwnerID:           &interest.OwnerID,
				ChildID:           &interest.ChildID,
				CampID:            interest.CampID,
				WeekNumber:        interest.WeekNumber,
				LookingForFriends: interest.LookingForFriends,
			}
			if name, ok := childNames[interest.ChildID]; ok {
				row.ChildName = &name
			}
			if camp, err := s.catalog.Get(interest.CampID); err == nil {
				row.CampName = camp.Name
			} else {
				row.CampName = domain.PlaceholderCampName
			}
			rows = append(rows, domain.Disclose(&member, row))
		}
	}

	slices.SortFunc(rows, func(a, b domain.SquadInterestRow) int {
		if n := strings.Compare(a.CampID, b.CampID); n != 0 {
			return n
		}
		return a.WeekNumber - b.WeekNumber
	})
	return rows, nil
}

// FriendCounts aggregates anonymous peer interest per (camp, week) across
// all of the caller's squads.
func (s *SquadService) FriendCounts(ctx context.Context, userID string) (map[derive.FriendKey]int, error) {
	squads, err := s.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	peerIDs := make(map[string]bool)
	squadValues := make([]domain.Squad, 0, len(squads))
	for _, sq := range squads {
		squadValues = append(squadValues, *sq)
		for _, m := range sq.Members {
			if m.UserID != userID {
				peerIDs[m.UserID] = true
			}
		}
	}

	var peerInterests []domain.CampInterest
	for peerID := range peerIDs {
		for interest, err := range s.store.Interests.ListByIndex(ctx, "owner", peerID) {
			if err != nil {
				return nil, err
			}
			peerInterests = append(peerInterests, *interest)
		}
	}

	return derive.FriendInterestCounts(squadValues, peerInterests, userID), nil
}

func (s *SquadService) childNames(ctx context.Context, ownerID string) (map[string]string, error) {
	names := make(map[string]string)
	for child, err := range s.store.Children.ListByIndex(ctx, "owner", ownerID) {
		if err != nil {
			return nil, err
		}
		names[child.ID] = child.Name
	}
	return names, nil
}
