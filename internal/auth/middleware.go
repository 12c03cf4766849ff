package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// contextKey is unexported so only this package can place or read identity
// values in a request context.
type contextKey string

const identityKey contextKey = "identity"

// AccountChecker re-checks an authenticated account's current state. A
// token stays valid until expiry, so bans and deletions are enforced here,
// per request, rather than through a revocation list. Implemented by the
// auth service.
type AccountChecker interface {
	// CheckActive returns an error when the account no longer exists or is
	// banned. Any error means the request must be treated as unauthenticated.
	CheckActive(ctx context.Context, userID string) error
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns ("", false) when the header is absent or malformed.
func BearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

// RequireAuth enforces authentication: a valid bearer token AND a live
// account. On failure it short-circuits with a 401 envelope before the
// handler — and therefore before any store mutation — runs.
func RequireAuth(tokens *TokenService, accounts AccountChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr, ok := BearerToken(r)
			if !ok {
				writeUnauthorized(w)
				return
			}

			id, err := tokens.Validate(tokenStr)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			if err := accounts.CheckActive(r.Context(), id.UserID); err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the identity when a valid token is present but
// never blocks. Used by soft-auth endpoints (unread count, is-following)
// that answer with zero values for anonymous callers.
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tokenStr, ok := BearerToken(r); ok {
				if id, err := tokens.Validate(tokenStr); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), identityKey, id))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromContext returns the authenticated caller's identity.
// The second return is false for anonymous requests.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok && id.UserID != ""
}

// writeUnauthorized emits the standard 401 error envelope. The middleware
// writes it directly rather than importing the handler package.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   "not authenticated",
		"code":    "UNAUTHORIZED",
	})
}
