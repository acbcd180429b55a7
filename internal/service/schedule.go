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

// ScheduleService manages scheduled items: camp weeks and non-camp blocks.
type ScheduleService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewScheduleService creates a new schedule service.
func NewScheduleService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *ScheduleService {
	return &ScheduleService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateItemParams is the allow-list payload for scheduling an item.
// Exactly one of CampID and BlockType must be set.
type CreateItemParams struct {
	ChildID   string `json:"child_id" validate:"required"`
	CampID    string `json:"camp_id,omitempty" validate:"omitempty,min=1"`
	BlockType string `json:"block_type,omitempty" validate:"omitempty,blocktype"`
	StartDate string `json:"start_date" validate:"required,isodate"`
	EndDate   string `json:"end_date" validate:"required,isodate"`
	Price     int    `json:"price,omitempty" validate:"gte=0"`
	Status    string `json:"status,omitempty" validate:"omitempty,itemstatus"`
}

// UpdateItemParams is the allow-list payload for editing an item. The child
// and owner bindings are immutable; they are simply not expressible here.
type UpdateItemParams struct {
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,isodate"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,isodate"`
	Price     *int    `json:"price,omitempty" validate:"omitempty,gte=0"`
	Status    *string `json:"status,omitempty" validate:"omitempty,itemstatus"`
}

// Create schedules a camp week or a block for one of the caller's children.
func (s *ScheduleService) Create(ctx context.Context, ownerID string, params CreateItemParams) (*domain.ScheduledItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}
	if (params.CampID == "") == (params.BlockType == "") {
		return nil, errors.Validation("exactly one of camp_id and block_type must be set")
	}
	if err := checkDateOrder(params.StartDate, params.EndDate); err != nil {
		return nil, err
	}

	// The child must exist and belong to the caller.
	child, err := s.store.Children.Get(ctx, params.ChildID)
	if err != nil {
		return nil, err
	}
	if child.OwnerID != ownerID {
		return nil, errors.NotOwner("child belongs to another account")
	}

	itemID, err := id.Generate(id.PrefixItem)
	if err != nil {
		return nil, errors.Internal("generate item id", err)
	}

	status := domain.ItemStatus(params.Status)
	if status == "" {
		status = domain.StatusPlanned
	}

	now := time.Now().UTC()
	item := &domain.ScheduledItem{
		CreatedAt: now,
		UpdatedAt: now,
		ID:        itemID,
		OwnerID:   ownerID,
		ChildID:   params.ChildID,
		CampID:    params.CampID,
		BlockType: domain.BlockType(params.BlockType),
		StartDate: domain.Date(params.StartDate),
		EndDate:   domain.Date(params.EndDate),
		Price:     params.Price,
		Status:    status,
	}

	if err := s.store.Items.Create(ctx, item.ID, item); err != nil {
		return nil, err
	}

	s.logger.Info("item scheduled",
		"item_id", item.ID, "child_id", item.ChildID,
		"camp_id", item.CampID, "block_type", item.BlockType)
	return item, nil
}

// Get returns one of the caller's scheduled items.
func (s *ScheduleService) Get(ctx context.Context, ownerID, itemID string) (*domain.ScheduledItem, error) {
	item, err := s.store.Items.Get(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.OwnerID != ownerID {
		return nil, errors.NotOwner("scheduled item belongs to another account")
	}
	return item, nil
}

// List returns the caller's scheduled items in enumeration order. With a
// non-empty childID only that child's items are returned.
func (s *ScheduleService) List(ctx context.Context, ownerID, childID string) ([]domain.ScheduledItem, error) {
	var out []domain.ScheduledItem
	for item, err := range s.store.Items.ListByIndex(ctx, "owner", ownerID) {
		if err != nil {
			return nil, err
		}
		if childID != "" && item.ChildID != childID {
			continue
		}
		out = append(out, *item)
	}
	domain.SortItems(out)
	return out, nil
}

// Update applies a partial edit to one of the caller's items.
func (s *ScheduleService) Update(ctx context.Context, ownerID, itemID string, params UpdateItemParams) (*domain.ScheduledItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	item, err := s.Get(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	if params.StartDate != nil {
		item.StartDate = domain.Date(*params.StartDate)
	}
	if params.EndDate != nil {
		item.EndDate = domain.Date(*params.EndDate)
	}
	if err := checkDateOrder(string(item.StartDate), string(item.EndDate)); err != nil {
		return nil, err
	}
	if params.Price != nil {
		item.Price = *params.Price
	}
	if params.Status != nil {
		item.Status = domain.ItemStatus(*params.Status)
	}
	item.UpdatedAt = time.Now().UTC()

	if err := s.store.Items.Update(ctx, item.ID, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes one of the caller's items. Deleting an already-deleted
// item is not an error once ownership has been established.
func (s *ScheduleService) Delete(ctx context.Context, ownerID, itemID string) error {
	item, err := s.store.Items.Get(ctx, itemID)
	if errors.Is(err, errors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if item.OwnerID != ownerID {
		return errors.NotOwner("scheduled item belongs to another account")
	}
	return s.store.Items.Delete(ctx, itemID)
}

func checkDateOrder(start, end string) error {
	if end < start {
		return errors.InvalidDateRange("end date precedes start date")
	}
	return nil
}
