package handler

import (
	"log/slog"
	"net/http"

	"github.com/Murilo211205/rede-social/internal/service"
)

// FollowHandler serves the follow graph endpoints. Routes use the
// target user's id in the path.
type FollowHandler struct {
	follows *service.FollowService
	logger  *slog.Logger
}

func NewFollowHandler(follows *service.FollowService, logger *slog.Logger) *FollowHandler {
	return &FollowHandler{follows: follows, logger: logger}
}

func (h *FollowHandler) HandleFollow(w http.ResponseWriter, r *http.Request) {
	userID, err := requireCallerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.follows.Follow(r.Context(), userID, r.PathValue("user")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "following")
}

func (h *FollowHandler) HandleUnfollow(w http.ResponseWriter, r *http.Request) {
	userID, err := requireCallerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.follows.Unfollow(r.Context(), userID, r.PathValue("user")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "unfollowed")
}

// HandleIsFollowing reports whether the caller follows the target.
// Anonymous callers get false rather than 401.
func (h *FollowHandler) HandleIsFollowing(w http.ResponseWriter, r *http.Request) {
	following, err := h.follows.IsFollowing(r.Context(), callerID(r), r.PathValue("user"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"is_following": following})
}

func (h *FollowHandler) HandleFollowers(w http.ResponseWriter, r *http.Request) {
	followers, err := h.follows.Followers(r.Context(), r.PathValue("user"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"followers": followers})
}

func (h *FollowHandler) HandleFollowing(w http.ResponseWriter, r *http.Request) {
	following, err := h.follows.Following(r.Context(), r.PathValue("user"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"following": following})
}
