package api

import (
	"context"
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"

	"github.com/summerplanapp/summerplan-server/internal/domain"
	"github.com/summerplanapp/summerplan-server/internal/service"
)

func (s *Server) registerSquadRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listSquads",
		Method:      http.MethodGet,
		Path:        "/api/v1/squads",
		Summary:     "List squads",
		Description: "Returns all squads the caller is a member of",
		Tags:        []string{"Squads"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSquads)

	huma.Register(s.api, huma.Operation{
		OperationID: "createSquad",
		Method:      http.MethodPost,
		Path:        "/api/v1/squads",
		Summary:     "Create squad",
		Description: "Creates a squad with the caller as first member and returns its invite code",
		Tags:        []string{"Squads"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCreateSquad)

	huma.Register(s.api, huma.Operation{
		OperationID: "joinSquad",
		Method:      http.MethodPost,
		Path:        "/api/v1/squads/join",
		Summary:     "Join squad",
		Description: "Joins a squad by invite code. Joining a squad you are already in is a no-op.",
		Tags:        []string{"Squads"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleJoinSquad)

	huma.Register(s.api, huma.Operation{
		OperationID: "leaveSquad",
		Method:      http.MethodPost,
		Path:        "/api/v1/squads/{id}/leave",
		Summary:     "Leave squad",
		Description: "Leaves a squad. The last member leaving deletes the squad.",
		Tags:        []string{"Squads"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleLeaveSquad)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateSquadMemberFlags",
		Method:      http.MethodPatch,
		Path:        "/api/v1/squads/{id}/membership",
		Summary:     "Update membership flags",
		Description: "Updates the caller's own privacy flags in a squad",
		Tags:        []string{"Squads"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleUpdateMemberFlags)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSquadInterests",
		Method:      http.MethodGet,
		Path:        "/api/v1/squads/{id}/interests",
		Summary:     "List squad interests",
		Description: "Returns peer camp interests in a squad, filtered by each member's disclosure flags",
		Tags:        []string{"Squads"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSquadInterests)

	huma.Register(s.api, huma.Operation{
		OperationID: "friendCounts",
		Method:      http.MethodGet,
		Path:        "/api/v1/squads/friend-counts",
		Summary:     "Friend interest counts",
		Description: "Returns how many squad friends are interested in each (camp, week) pair",
		Tags:        []string{"Squads"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleFriendCounts)
}

// === DTOs ===

// ListSquadsInput contains parameters for listing squads.
type ListSquadsInput struct {
	Authorization string `header:"Authorization"`
}

// ListSquadsResponse contains a list of squads.
type ListSquadsResponse struct {
	Squads []*domain.Squad `json:"squads" doc:"Squads the caller belongs to"`
}

// ListSquadsOutput wraps the list squads response for Huma.
type ListSquadsOutput struct {
	Body ListSquadsResponse
}

// CreateSquadInput wraps the create squad request for Huma.
type CreateSquadInput struct {
	Authorization string `header:"Authorization"`
	Body          service.CreateSquadParams
}

// SquadOutput wraps a single squad response for Huma.
type SquadOutput struct {
	Body domain.Squad
}

// JoinSquadInput wraps the join squad request for Huma.
type JoinSquadInput struct {
	Authorization string `header:"Authorization"`
	Body          service.JoinSquadParams
}

// LeaveSquadInput contains parameters for leaving a squad.
type LeaveSquadInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Squad ID"`
}

// UpdateMemberFlagsInput wraps the membership flags request for Huma.
type UpdateMemberFlagsInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Squad ID"`
	Body          service.MemberFlagsParams
}

// ListSquadInterestsInput contains parameters for the squad interest feed.
type ListSquadInterestsInput struct {
	Authorization string `header:"Authorization"`
	ID            string `path:"id" doc:"Squad ID"`
}

// ListSquadInterestsResponse contains disclosed peer interests.
type ListSquadInterestsResponse struct {
	Interests []domain.SquadInterestRow `json:"interests" doc:"Peer interests after disclosure filtering"`
}

// ListSquadInterestsOutput wraps the squad interests response for Huma.
type ListSquadInterestsOutput struct {
	Body ListSquadInterestsResponse
}

// FriendCountsInput contains parameters for friend interest counts.
type FriendCountsInput struct {
	Authorization string `header:"Authorization"`
}

// FriendCount is the interest tally for one (camp, week) pair.
type FriendCount struct {
	CampID     string `json:"camp_id" doc:"Camp ID"`
	WeekNumber int    `json:"week_number" doc:"Season week number"`
	Count      int    `json:"count" doc:"Number of interested squad friends"`
}

// FriendCountsResponse contains friend interest tallies.
type FriendCountsResponse struct {
	Counts []FriendCount `json:"counts" doc:"Tallies sorted by camp then week"`
}

// FriendCountsOutput wraps the friend counts response for Huma.
type FriendCountsOutput struct {
	Body FriendCountsResponse
}

// === Handlers ===

func (s *Server) handleListSquads(ctx context.Context, _ *ListSquadsInput) (*ListSquadsOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	squads, err := s.services.Squad.ListForUser(ctx, accountID)
	if err != nil {
		return nil, err
	}

	if squads == nil {
		squads = []*domain.Squad{}
	}
	return &ListSquadsOutput{Body: ListSquadsResponse{Squads: squads}}, nil
}

func (s *Server) handleCreateSquad(ctx context.Context, input *CreateSquadInput) (*SquadOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	squad, err := s.services.Squad.Create(ctx, accountID, input.Body)
	if err != nil {
		return nil, err
	}

	return &SquadOutput{Body: *squad}, nil
}

func (s *Server) handleJoinSquad(ctx context.Context, input *JoinSquadInput) (*SquadOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	squad, err := s.services.Squad.Join(ctx, accountID, input.Body)
	if err != nil {
		return nil, err
	}

	return &SquadOutput{Body: *squad}, nil
}

func (s *Server) handleLeaveSquad(ctx context.Context, input *LeaveSquadInput) (*struct{}, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Squad.Leave(ctx, accountID, input.ID); err != nil {
		return nil, err
	}

	return &struct{}{}, nil
}

func (s *Server) handleUpdateMemberFlags(ctx context.Context, input *UpdateMemberFlagsInput) (*SquadOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	squad, err := s.services.Squad.UpdateMemberFlags(ctx, accountID, input.ID, input.Body)
	if err != nil {
		return nil, err
	}

	return &SquadOutput{Body: *squad}, nil
}

func (s *Server) handleListSquadInterests(ctx context.Context, input *ListSquadInterestsInput) (*ListSquadInterestsOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.services.Squad.SquadInterests(ctx, accountID, input.ID)
	if err != nil {
		return nil, err
	}

	if rows == nil {
		rows = []domain.SquadInterestRow{}
	}
	return &ListSquadInterestsOutput{Body: ListSquadInterestsResponse{Interests: rows}}, nil
}

func (s *Server) handleFriendCounts(ctx context.Context, _ *FriendCountsInput) (*FriendCountsOutput, error) {
	accountID, err := GetAccountID(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := s.services.Squad.FriendCounts(ctx, accountID)
	if err != nil {
		return nil, err
	}

	out := make([]FriendCount, 0, len(counts))
	for key, n := range counts {
		out = append(out, FriendCount{CampID: key.CampID, WeekNumber: key.Week, Count: n})
	}
	slices.SortFunc(out, func(a, b FriendCount) int {
		if a.CampID != b.CampID {
			if a.CampID < b.CampID {
				return -1
			}
			return 1
		}
		return a.WeekNumber - b.WeekNumber
	})

	return &FriendCountsOutput{Body: FriendCountsResponse{Counts: out}}, nil
}
