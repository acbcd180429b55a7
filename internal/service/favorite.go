package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/summerplanapp/summerplan-server/internal/catalog"
	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/errors"
	"github.com/summerplanapp/summerplan-server/internal/id"
	"github.com/summerplanapp/summerplan-server/internal/store"
)

// FavoriteService manages per-account camp favorites.
type FavoriteService struct {
	store   *store.Store
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(store *store.Store, cat *catalog.Catalog, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		store:   store,
		catalog: cat,
		logger:  logger,
	}
}

// Add favorites a camp. Favoriting an already-favorited camp returns the
// existing row.
func (s *FavoriteService) Add(ctx context.Context, ownerID, campID string) (*domain.Favorite, error) {
	if _, err := s.catalog.Get(campID); err != nil {
		return nil, err
	}

	existing, err := s.store.Favorites.GetByIndex(ctx, "owner_camp", ownerID+"|"+campID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}

	favID, err := id.Generate(id.PrefixFavorite)
	if err != nil {
		return nil, errors.Internal("generate favorite id", err)
	}
	fav := &domain.Favorite{
		CreatedAt: time.Now().UTC(),
		ID:        favID,
		OwnerID:   ownerID,
		CampID:    campID,
	}
	if err := s.store.Favorites.Create(ctx, fav.ID, fav); err != nil {
		return nil, err
	}
	return fav, nil
}

// Remove unfavorites a camp. Idempotent.
func (s *FavoriteService) Remove(ctx context.Context, ownerID, campID string) error {
	fav, err := s.store.Favorites.GetByIndex(ctx, "owner_camp", ownerID+"|"+campID)
	if errors.Is(err, errors.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	return s.store.Favorites.Delete(ctx, fav.ID)
}

// List returns the caller's favorites.
func (s *FavoriteService) List(ctx context.Context, ownerID string) ([]domain.Favorite, error) {
	var out []domain.Favorite
	for fav, err := range s.store.Favorites.ListByIndex(ctx, "owner", ownerID) {
		if err != nil {
			return nil, err
		}
		out = append(out, *fav)
	}
	return out, nil
}
