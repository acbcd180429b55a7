package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/summerplanapp/summerplan-server/internal/id"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "startSession",
		Method:      http.MethodPost,
		Path:        "/api/v1/session",
		Summary:     "Start session",
		Description: "Mints an access token for a named account. New accounts get a fresh ID.",
		Tags:        []string{"Session"},
	}, s.handleStartSession)
}

// StartSessionRequest is the request body for minting an access token.
type StartSessionRequest struct {
	AccountID   string `json:"account_id,omitempty" doc:"Existing account ID to resume, empty for a new account"`
	DisplayName string `json:"display_name" minLength:"1" maxLength:"100" doc:"Display name shown to squad members"`
}

// StartSessionResponse contains the minted token and account identity.
type StartSessionResponse struct {
	AccountID   string    `json:"account_id" doc:"Account ID"`
	DisplayName string    `json:"display_name" doc:"Display name"`
	AccessToken string    `json:"access_token" doc:"PASETO access token"`
	ExpiresAt   time.Time `json:"expires_at" doc:"Token expiry time"`
}

// StartSessionInput wraps the session request for Huma.
type StartSessionInput struct {
	Body StartSessionRequest
}

// StartSessionOutput wraps the session response for Huma.
type StartSessionOutput struct {
	Body StartSessionResponse
}

func (s *Server) handleStartSession(ctx context.Context, input *StartSessionInput) (*StartSessionOutput, error) {
	if !s.sessionLimiter.Allow(getRemoteAddr(ctx)) {
		return nil, huma.Error429TooManyRequests("Too many session requests")
	}

	accountID := input.Body.AccountID
	if accountID == "" {
		generated, err := id.Generate(id.PrefixAccount)
		if err != nil {
			return nil, err
		}
		accountID = generated
	}

	token, err := s.tokenService.GenerateAccessToken(accountID, input.Body.DisplayName)
	if err != nil {
		return nil, err
	}

	return &StartSessionOutput{Body: StartSessionResponse{
		AccountID:   accountID,
		DisplayName: input.Body.DisplayName,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.tokenService.TokenDuration()),
	}}, nil
}
