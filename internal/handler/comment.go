package handler

import (
	"log/slog"
	"net/http"

	"github.com/Murilo211205/rede-social/internal/service"
)

// CommentHandler serves comment listing, creation, and deletion.
type CommentHandler struct {
	comments *service.CommentService
	actors   ActorSource
	logger   *slog.Logger
}

func NewCommentHandler(comments *service.CommentService, actors ActorSource, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, actors: actors, logger: logger}
}

func (h *CommentHandler) HandleListByPost(w http.ResponseWriter, r *http.Request) {
	comments, err := h.comments.ListByPost(r.Context(), r.PathValue("id"), r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"comments": comments})
}

func (h *CommentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	comment, err := h.comments.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, comment)
}

type commentRequest struct {
	Content         string  `json:"content"`
	ParentCommentID *string `json:"parent_comment_id"`
}

func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := requireCallerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req commentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	comment, err := h.comments.Create(r.Context(), userID, r.PathValue("id"), req.Content, req.ParentCommentID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, comment)
}

func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.actors)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.comments.Delete(r.Context(), actor, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "comment deleted")
}
