package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/service"
)

func (s *Server) registerScheduleRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listItems",
		Method:      http.MethodGet,
		Path:        "/api/v1/items",
		Summary:     "List scheduled items",
		Description: "Returns the caller's scheduled items, optionally filtered by child",
		Tags:        []string{"Schedule"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListItems)

	huma.Register(s.api, huma.Operation{
		OperationID: "createItem",
		Method:      http.MethodPost,
		Path:        "/api/v1/items",
		Summary:     "Create scheduled item",
		Description: "Schedules a camp week or a non-camp block for a child",
		Tags:        []string{"Schedule"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "getItem",
		Method:      http.MethodGet,
		Path:        "/api/v1/items/{id}",
		Summary:     "Get scheduled item",
		Description: "Returns a scheduled item by ID (owner only)",
		Tags:        []string{"Schedule"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateItem",
		Method:      http.MethodPatch,
		Path:        "/api/v1/items/{id}",
		Summary:     "Update scheduled item",
		Description: "Updates dates, price, or status of an item (owner only)",
		Tags:        []string{"Schedule"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteItem",
		Method:      http.MethodDelete,
		Path:        "/api/v1/items/{id}",
		Summary:     "Delete scheduled item",
		Description: "Deletes a scheduled item (owner only)",
		Tags:        []string{"Schedule"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteItem)
}

// === DTOs ===

// ListItemsInput contains parameters for listing scheduled items.
type ListItemsInput struct {
	Authorization string `header:"Authorization"`
	ChildID       string `query:"child_id" doc:"Restrict to one child"`
}

// ListItemsResponse contains a list of scheduled items.
type ListItemsResponse struct {
	Items []domain.ScheduledItem `json:"items" doc:"Scheduled items in enumeration order"`
}

// ListItemsOutput wraps the list items response for Huma.
type ListItemsOutput struct {
	Body ListItemsResponse
}

// CreateItemInput wraps the create item request for Huma.
type CreateItemInput struct {
	Authorization string `header:"Authorization"`
	Body          service.CreateItemParams
}

// ItemOutput wraps a single scheduled item response for Huma.
type ItemOutput struct {
	Body domain.ScheduledItem
}

// GetItemInput contains parameters for getting a scheduled item.
type GetItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
}

// UpdateItemInput wraps the update item request for Huma.
type UpdateItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
	Body          service.UpdateItemParams
}

// DeleteItemInput contains parameters for deleting a scheduled item.
type DeleteItemInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Item ID"`
}

// === Handlers ===

func (s *Server) handleListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Schedule.List(ctx, accountID, input.ChildID)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []domain.ScheduledItem{}
	}
	return &ListItemsOutput{Body: ListItemsResponse{Items: items}}, nil
}

func (s *Server) handleCreateItem(ctx context.Context, input *CreateItemInput) (*ItemOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Schedule.Create(ctx, accountID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: *item}, nil
}

func (s *Server) handleGetItem(ctx context.Context, input *GetItemInput) (*ItemOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Schedule.Get(ctx, accountID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: *item}, nil
}

func (s *Server) handleUpdateItem(ctx context.Context, input *UpdateItemInput) (*ItemOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	item, err := s.services.Schedule.Update(ctx, accountID, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ItemOutput{Body: *item}, nil
}

func (s *Server) handleDeleteItem(ctx context.Context, input *DeleteItemInput) (*struct{}, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Schedule.Delete(ctx, accountID, input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}
