package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/summerplanapp/summerplan-server/internal/domain"
)

func (s *Server) registerFavoriteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Returns camps the caller has favorited",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListFavorites)

	huma.Register(s.api, huma.Operation{
		OperationID: "addFavorite",
		Method:      http.MethodPut,
		Path:        "/api/v1/favorites/{campId}",
		Summary:     "Add favorite",
		Description: "Favorites a camp. Favoriting twice is a no-op.",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleAddFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "removeFavorite",
		Method:      http.MethodDelete,
		Path:        "/api/v1/favorites/{campId}",
		Summary:     "Remove favorite",
		Description: "Removes a camp from favorites",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRemoveFavorite)
}

// === DTOs ===

// ListFavoritesInput contains parameters for listing favorites.
type ListFavoritesInput struct {
	Authorization string `header:"Authorization"`
}

// ListFavoritesResponse contains the caller's favorites.
type ListFavoritesResponse struct {
	Favorites []domain.Favorite `json:"favorites" doc:"Favorited camps"`
}

// ListFavoritesOutput wraps the favorites list for Huma.
type ListFavoritesOutput struct {
	Body ListFavoritesResponse
}

// AddFavoriteInput contains parameters for adding a favorite.
type AddFavoriteInput struct {
	Authorization string `header:"Authorization"`
	CampID        string `path:"campId" doc:"Camp ID"`
}

// FavoriteOutput wraps a single favorite for Huma.
type FavoriteOutput struct {
	Body domain.Favorite
}

// RemoveFavoriteInput contains parameters for removing a favorite.
type RemoveFavoriteInput struct {
	Authorization string `header:"Authorization"`
	CampID        string `path:"campId" doc:"Camp ID"`
}

// === Handlers ===

func (s *Server) handleListFavorites(ctx context.Context, _ *ListFavoritesInput) (*ListFavoritesOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	favorites, err := s.services.Favorite.List(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if favorites == nil {
		favorites = []domain.Favorite{}
	}
	return &ListFavoritesOutput{Body: ListFavoritesResponse{Favorites: favorites}}, nil
}

func (s *Server) handleAddFavorite(ctx context.Context, input *AddFavoriteInput) (*FavoriteOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	favorite, err := s.services.Favorite.Add(ctx, accountID, input.CampID)
	if err != nil {
		return nil, err
	}

	return &FavoriteOutput{Body: *favorite}, nil
}

func (s *Server) handleRemoveFavorite(ctx context.Context, input *RemoveFavoriteInput) (*struct{}, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Favorite.Remove(ctx, accountID, input.CampID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}
