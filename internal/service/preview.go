package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/summerplanapp/summerplan-server/internal/derive"
	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
	"github.com/summerplanapp/summerplan-server/internal/id"
	"github.com/summerplanapp/summerplan-server/internal/preview"
	"github.com/summerplanapp/summerplan-server/internal/store"
	"github.com/summerplanapp/summerplan-server/internal/validation"
)

// PreviewService manages per-account what-if sessions. Each account has at
// most one overlay; staging ops mutates only the overlay, and nothing is
// persisted until commit.
type PreviewService struct {
	store     *store.Store
	planner   *PlannerService
	validator *validation.Validator
	logger    *slog.Logger

	mu       sync.Mutex
	overlays map[string]*preview.Overlay
}

// NewPreviewService creates a new preview service.
func NewPreviewService(store *store.Store, planner *PlannerService, validator *validation.Validator, logger *slog.Logger) *PreviewService {
	return &PreviewService{
		store:     store,
		planner:   planner,
		validator: validator,
		logger:    logger,
		overlays:  make(map[string]*preview.Overlay),
	}
}

func (s *PreviewService) overlay(ownerID string) *preview.Overlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.overlays[ownerID]
	if !ok {
		o = preview.NewOverlay()
		s.overlays[ownerID] = o
	}
	return o
}

// StageInsertItem stages a hypothetical new scheduled item and returns it.
// The item gets a real ID so a later commit creates exactly what was
// previewed.
func (s *PreviewService) StageInsertItem(ctx context.Context, ownerID string, params CreateItemParams) (*domain.ScheduledItem, error) {
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}
	if (params.CampID == "") == (params.BlockType == "") {
		return nil, errors.Validation("exactly one of camp_id and block_type must be set")
	}
	if err := checkDateOrder(params.StartDate, params.EndDate); err != nil {
		return nil, err
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

	s.overlay(ownerID).Append(preview.Op{
		Kind:       preview.OpInsert,
		Collection: preview.CollectionItems,
		ID:         item.ID,
		Payload:    item,
	})
	return item, nil
}

// StageUpdateItem stages an edit against the materialized state, so edits
// can stack on earlier staged ops in the same session.
func (s *PreviewService) StageUpdateItem(ctx context.Context, ownerID, itemID string, params UpdateItemParams) (*domain.ScheduledItem, error) {
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	snap, err := s.Materialize(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	var item *domain.ScheduledItem
	for i := range snap.Items {
		if snap.Items[i].ID == itemID {
			item = &snap.Items[i]
			break
		}
	}
	if item == nil {
		return nil, errors.NotFound("scheduled item not found in preview")
	}
	if item.OwnerID != ownerID {
		return nil, errors.NotOwner("scheduled item belongs to another account")
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

	staged := *item
	s.overlay(ownerID).Append(preview.Op{
		Kind:       preview.OpUpdate,
		Collection: preview.CollectionItems,
		ID:         itemID,
		Payload:    &staged,
	})
	return &staged, nil
}

// StageDeleteItem stages removal of an item.
func (s *PreviewService) StageDeleteItem(ctx context.Context, ownerID, itemID string) error {
	s.overlay(ownerID).Append(preview.Op{
		Kind:       preview.OpDelete,
		Collection: preview.CollectionItems,
		ID:         itemID,
	})
	return nil
}

// Materialize returns the hypothetical snapshot: live state plus the
// session's staged ops.
func (s *PreviewService) Materialize(ctx context.Context, ownerID string) (*domain.Snapshot, error) {
	snap, err := s.planner.Snapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return preview.Materialize(snap, s.overlay(ownerID))
}

// PlanForChild derives a child's plan from the materialized snapshot.
func (s *PreviewService) PlanForChild(ctx context.Context, ownerID, childID string) (*derive.ChildPlan, error) {
	snap, err := s.Materialize(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !hasChild(snap, childID) {
		return nil, errors.NotFound("child not found")
	}
	return derive.PlanForChild(snap, childID), nil
}

// Summary derives the account summary from the materialized snapshot.
func (s *PreviewService) Summary(ctx context.Context, ownerID string) (*derive.Summary, error) {
	snap, err := s.Materialize(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return s.planner.SummaryFor(snap), nil
}

// Pending returns the session's staged ops in order.
func (s *PreviewService) Pending(ownerID string) []preview.Op {
	return s.overlay(ownerID).Ops()
}

// Discard drops the session's overlay.
func (s *PreviewService) Discard(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.overlays, ownerID)
}

// Commit replays the session's ops through the store in order, stopping at
// the first failure. On partial failure the overlay keeps the failing op
// and everything after it so the caller can fix and retry.
func (s *PreviewService) Commit(ctx context.Context, ownerID string) preview.CommitResult {
	o := s.overlay(ownerID)

	result := preview.Commit(o, func(op preview.Op) error {
		return s.applyOp(ctx, ownerID, op)
	})

	if result.Failed {
		s.logger.Warn("preview commit stopped at failure",
			"owner_id", ownerID,
			"applied", result.Applied,
			"failed_index", result.FailedIndex,
			"error", result.Err)
	} else {
		s.logger.Info("preview committed", "owner_id", ownerID, "applied", result.Applied)
		s.Discard(ownerID)
	}
	return result
}

func (s *PreviewService) applyOp(ctx context.Context, ownerID string, op preview.Op) error {
	if op.Collection != preview.CollectionItems {
		return errors.Validation("unsupported preview collection: " + string(op.Collection))
	}

	switch op.Kind {
	case preview.OpInsert:
		item, ok := op.Payload.(*domain.ScheduledItem)
		if !ok {
			return errors.Validation("preview op payload is not a scheduled item")
		}
		return s.store.Items.Create(ctx, item.ID, item)

	case preview.OpUpdate:
		item, ok := op.Payload.(*domain.ScheduledItem)
		if !ok {
			return errors.Validation("preview op payload is not a scheduled item")
		}
		current, err := s.store.Items.Get(ctx, op.ID)
		if err != nil {
			return err
		}
		if current.OwnerID != ownerID {
			return errors.NotOwner("scheduled item belongs to another account")
		}
		return s.store.Items.Update(ctx, op.ID, item)

	case preview.OpDelete:
		current, err := s.store.Items.Get(ctx, op.ID)
		if errors.Is(err, errors.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		if current.OwnerID != ownerID {
			return errors.NotOwner("scheduled item belongs to another account")
		}
		return s.store.Items.Delete(ctx, op.ID)

	default:
		return errors.Validation("unknown preview op kind: " + string(op.Kind))
	}
}
