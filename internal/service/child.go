// Package service provides the business logic layer for the planner:
// ownership enforcement, input sanitization and validation, and the
// orchestration between store, catalog, and derivations.
package service

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
	"github.com/summerplanapp/summerplan-server/internal/id"
	"github.com/summerplanapp/summerplan-server/internal/store"
	"github.com/summerplanapp/summerplan-server/internal/validation"
)

// ChildService manages an account's children.
type ChildService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewChildService creates a new child service.
func NewChildService(store *store.Store, validator *validation.Validator, logger *slog.Logger) *ChildService {
	return &ChildService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateChildParams is the allow-list payload for creating a child.
type CreateChildParams struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Age   int    `json:"age,omitempty" validate:"gte=0,lte=18"`
	Color string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// UpdateChildParams is the allow-list payload for updating a child. Nil
// fields are left unchanged; fields outside this struct cannot be updated.
type UpdateChildParams struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Age   *int    `json:"age,omitempty" validate:"omitempty,gte=0,lte=18"`
	Color *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// Create adds a child to the caller's family.
func (s *ChildService) Create(ctx context.Context, ownerID string, params CreateChildParams) (*domain.Child, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params.Name = validation.Sanitize(params.Name)
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	childID, err := id.Generate(id.PrefixChild)
	if err != nil {
		return nil, errors.Internal("generate child id", err)
	}

	now := time.Now().UTC()
	child := &domain.Child{
		CreatedAt: now,
		UpdatedAt: now,
		ID:        childID,
		OwnerID:   ownerID,
		Name:      params.Name,
		Color:     params.Color,
		Age:       params.Age,
	}

	if err := s.store.Children.Create(ctx, child.ID, child); err != nil {
		return nil, err
	}

	s.logger.Info("child created", "child_id", child.ID, "owner_id", ownerID)
	return child, nil
}

// Get returns one of the caller's children.
func (s *ChildService) Get(ctx context.Context, ownerID, childID string) (*domain.Child, error) {
	child, err := s.store.Children.Get(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child.OwnerID != ownerID {
		return nil, errors.NotOwner("child belongs to another account")
	}
	return child, nil
}

// List returns the caller's children sorted by name.
func (s *ChildService) List(ctx context.Context, ownerID string) ([]*domain.Child, error) {
	var out []*domain.Child
	for child, err := range s.store.Children.ListByIndex(ctx, "owner", ownerID) {
		if err != nil {
			return nil, err
		}
		out = append(out, child)
	}
	sortChildren(out)
	return out, nil
}

// Update applies a partial update to one of the caller's children.
func (s *ChildService) Update(ctx context.Context, ownerID, childID string, params UpdateChildParams) (*domain.Child, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if params.Name != nil {
		clean := validation.Sanitize(*params.Name)
		params.Name = &clean
	}
	if err := s.validator.Validate(params); err != nil {
		return nil, err
	}

	child, err := s.Get(ctx, ownerID, childID)
	if err != nil {
		return nil, err
	}

	if params.Name != nil {
		child.Name = *params.Name
	}
	if params.Age != nil {
		child.Age = *params.Age
	}
	if params.Color != nil {
		child.Color = *params.Color
	}
	child.UpdatedAt = time.Now().UTC()

	if err := s.store.Children.Update(ctx, child.ID, child); err != nil {
		return nil, err
	}
	return child, nil
}

// Delete removes a child and cascades to its scheduled items and interests.
func (s *ChildService) Delete(ctx context.Context, ownerID, childID string) error {
	return s.store.DeleteChildCascade(ctx, ownerID, childID)
}

func sortChildren(children []*domain.Child) {
	slices.SortFunc(children, func(a, b *domain.Child) int {
		if n := strings.Compare(a.Name, b.Name); n != 0 {
			return n
		}
		return strings.Compare(a.ID, b.ID)
	})
}
