package handler

import (
	"log/slog"
	"net/http"

	"github.com/Murilo211205/rede-social/internal/service"
)

// LikeHandler serves like/unlike for posts and comments.
type LikeHandler struct {
	likes  *service.LikeService
	logger *slog.Logger
}

func NewLikeHandler(likes *service.LikeService, logger *slog.Logger) *LikeHandler {
	return &LikeHandler{likes: likes, logger: logger}
}

func (h *LikeHandler) HandleLikePost(w http.ResponseWriter, r *http.Request) {
	userID, err := requireCallerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.likes.LikePost(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "post liked")
}

func (h *LikeHandler) HandleUnlikePost(w http.ResponseWriter, r *http.Request) {
	userID, err := requireCallerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.likes.UnlikePost(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "post unliked")
}

func (h *LikeHandler) HandleLikeComment(w http.ResponseWriter, r *http.Request) {
	userID, err := requireCallerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.likes.LikeComment(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusCreated, "comment liked")
}

func (h *LikeHandler) HandleUnlikeComment(w http.ResponseWriter, r *http.Request) {
	userID, err := requireCallerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.likes.UnlikeComment(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "comment unliked")
}
