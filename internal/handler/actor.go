package handler

import (
	"context"
	"net/http"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/auth"
	"github.com/Murilo211205/rede-social/internal/model"
)

// ActorSource resolves an authenticated identity to its full account,
// for operations whose permissions depend on more than the identity
// itself (owner-or-admin deletes, moderation).
type ActorSource interface {
	GetUser(ctx context.Context, id string) (*model.User, error)
}

func actorFromRequest(r *http.Request, src ActorSource) (*model.User, error) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return nil, apperror.Unauthorized()
	}
	return src.GetUser(r.Context(), identity.UserID)
}

// callerID returns the authenticated user id, or "" for anonymous
// requests behind optional auth.
func callerID(r *http.Request) string {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return ""
	}
	return identity.UserID
}

// requireCallerID is callerID for routes behind required auth.
func requireCallerID(r *http.Request) (string, error) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		return "", apperror.Unauthorized()
	}
	return identity.UserID, nil
}
