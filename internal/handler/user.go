package handler

import (
	"log/slog"
	"net/http"

	"github.com/Murilo211205/rede-social/internal/apperror"
	"github.com/Murilo211205/rede-social/internal/service"
)

// UserHandler serves profiles, profile search and updates, a user's
// posts, and the admin moderation endpoints. Profile routes address
// users by username; moderation and follow routes use the id.
type UserHandler struct {
	users  *service.UserService
	posts  *service.PostService
	actors ActorSource
	logger *slog.Logger
}

func NewUserHandler(users *service.UserService, posts *service.PostService, actors ActorSource, logger *slog.Logger) *UserHandler {
	return &UserHandler{users: users, posts: posts, actors: actors, logger: logger}
}

func (h *UserHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	view, err := h.users.Profile(r.Context(), r.PathValue("user"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, view)
}

// HandleUserPosts lists one user's posts. The path names the user;
// banned authors stay invisible just like their profiles.
func (h *UserHandler) HandleUserPosts(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.GetByUsername(r.Context(), r.PathValue("user"))
	if err != nil {
		writeError(w, err)
		return
	}
	if user.IsBanned {
		writeError(w, apperror.NotFound("user"))
		return
	}

	page, err := h.posts.ListByUser(r.Context(), user.ID, pageParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, page)
}

func (h *UserHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.users.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"users": profiles})
}

func (h *UserHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := requireCallerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var update service.ProfileUpdate
	if err := decodeJSON(r, &update); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.users.UpdateProfile(r.Context(), userID, update)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"user": user.Own()})
}

func (h *UserHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.actors)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.users.Delete(r.Context(), actor, r.PathValue("user")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "user deleted")
}

func (h *UserHandler) HandleBan(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.actors)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.users.SetBanned(r.Context(), actor, r.PathValue("user"), true); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "user banned")
}
