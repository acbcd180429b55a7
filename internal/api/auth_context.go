package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/summerplanapp/summerplan-server/internal/auth"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// accountIDKey is the context key for the authenticated account ID.
const accountIDKey ctxKey = "accountID"

// remoteAddrKey is the context key for the client address, set by
// remoteAddrContext so huma handlers can rate limit per client.
const remoteAddrKey ctxKey = "remoteAddr"

// remoteAddrContext stores the request's remote address in context. It runs
// after chi's RealIP middleware, so the stored value reflects forwarding
// headers when present.
func remoteAddrContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), remoteAddrKey, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getRemoteAddr returns the client address stored by remoteAddrContext.
func getRemoteAddr(ctx context.Context) string {
	addr, _ := ctx.Value(remoteAddrKey).(string)
	return addr
}

// GetAccountID returns the authenticated account ID from context.
// Returns 401 error if the caller is not authenticated.
func GetAccountID(ctx context.Context) (string, error) {
	accountID, ok := ctx.Value(accountIDKey).(string)
	if !ok || accountID == "" {
		return "", huma.Error401Unauthorized("Authentication required")
	}
	return accountID, nil
}

// setAccountID stores the account ID in context.
func setAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

// authMiddleware returns a middleware that validates Bearer tokens and stores
// the account ID in context. If no token is present or invalid, continues
// without an account; handlers use GetAccountID to check authentication.
func authMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}

			token := authHeader[7:]
			claims, err := tokens.VerifyAccessToken(token)
			if err != nil {
				// Invalid token - continue without account (handler will reject if auth required)
				next.ServeHTTP(w, r)
				return
			}

			ctx := setAccountID(r.Context(), claims.AccountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveAccount extracts the account ID for the event stream endpoint.
// EventSource clients cannot set headers, so a token query parameter is
// accepted alongside the Authorization header.
func resolveAccount(tokens *auth.TokenService) func(r *http.Request) (string, bool) {
	return func(r *http.Request) (string, bool) {
		token := ""
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = h[7:]
		} else if q := r.URL.Query().Get("token"); q != "" {
			token = q
		}
		if token == "" {
			return "", false
		}
		claims, err := tokens.VerifyAccessToken(token)
		if err != nil {
			return "", false
		}
		return claims.AccountID, true
	}
}
