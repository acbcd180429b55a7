package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/service"
)

func (s *Server) registerChildRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listChildren",
		Method:      http.MethodGet,
		Path:        "/api/v1/children",
		Summary:     "List children",
		Description: "Returns all children in the caller's family, sorted by name",
		Tags:        []string{"Children"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListChildren)

	huma.Register(s.api, huma.Operation{
		OperationID: "createChild",
		Method:      http.MethodPost,
		Path:        "/api/v1/children",
		Summary:     "Create child",
		Description: "Adds a child to the caller's family",
		Tags:        []string{"Children"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateChild)

	huma.Register(s.api, huma.Operation{
		OperationID: "getChild",
		Method:      http.MethodGet,
		Path:        "/api/v1/children/{id}",
		Summary:     "Get child",
		Description: "Returns a child by ID (owner only)",
		Tags:        []string{"Children"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetChild)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateChild",
		Method:      http.MethodPatch,
		Path:        "/api/v1/children/{id}",
		Summary:     "Update child",
		Description: "Updates child fields (owner only)",
		Tags:        []string{"Children"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateChild)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteChild",
		Method:      http.MethodDelete,
		Path:        "/api/v1/children/{id}",
		Summary:     "Delete child",
		Description: "Deletes a child and all of their scheduled items and interests",
		Tags:        []string{"Children"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDeleteChild)
}

// === DTOs ===

// ListChildrenInput contains parameters for listing children.
type ListChildrenInput struct {
	Authorization string `header:"Authorization"`
}

// ListChildrenResponse contains a list of children.
type ListChildrenResponse struct {
	Children []*domain.Child `json:"children" doc:"Children in the family"`
}

// ListChildrenOutput wraps the list children response for Huma.
type ListChildrenOutput struct {
	Body ListChildrenResponse
}

// CreateChildInput wraps the create child request for Huma.
type CreateChildInput struct {
	Authorization string `header:"Authorization"`
	Body          service.CreateChildParams
}

// ChildOutput wraps a single child response for Huma.
type ChildOutput struct {
	Body domain.Child
}

// GetChildInput contains parameters for getting a child.
type GetChildInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Child ID"`
}

// UpdateChildInput wraps the update child request for Huma.
type UpdateChildInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Child ID"`
	Body          service.UpdateChildParams
}

// DeleteChildInput contains parameters for deleting a child.
type DeleteChildInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Child ID"`
}

// === Handlers ===

func (s *Server) handleListChildren(ctx context.Context, _ *ListChildrenInput) (*ListChildrenOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	children, err := s.services.Child.List(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if children == nil {
		children = []*domain.Child{}
	}
	return &ListChildrenOutput{Body: ListChildrenResponse{Children: children}}, nil
}

func (s *Server) handleCreateChild(ctx context.Context, input *CreateChildInput) (*ChildOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	child, err := s.services.Child.Create(ctx, accountID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ChildOutput{Body: *child}, nil
}

func (s *Server) handleGetChild(ctx context.Context, input *GetChildInput) (*ChildOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	child, err := s.services.Child.Get(ctx, accountID, input.ID)
	if err != nil {
		return nil, err
	}

	return &ChildOutput{Body: *child}, nil
}

func (s *Server) handleUpdateChild(ctx context.Context, input *UpdateChildInput) (*ChildOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	child, err := s.services.Child.Update(ctx, accountID, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &ChildOutput{Body: *child}, nil
}

func (s *Server) handleDeleteChild(ctx context.Context, input *DeleteChildInput) (*struct{}, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Child.Delete(ctx, accountID, input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}
