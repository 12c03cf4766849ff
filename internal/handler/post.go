package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Murilo211205/rede-social/internal/service"
)

// PostHandler serves the post CRUD and search endpoints.
type PostHandler struct {
	posts  *service.PostService
	actors ActorSource
	logger *slog.Logger
}

func NewPostHandler(posts *service.PostService, actors ActorSource, logger *slog.Logger) *PostHandler {
	return &PostHandler{posts: posts, actors: actors, logger: logger}
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func (h *PostHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	page, err := h.posts.List(r.Context(), pageParam(r), r.URL.Query().Get("sort"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, page)
}

func (h *PostHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, post)
}

type postRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (h *PostHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, err := requireCallerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.Create(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusCreated, post)
}

func (h *PostHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, err := requireCallerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req postRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	post, err := h.posts.Update(r.Context(), userID, r.PathValue("id"), req.Title, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, post)
}

func (h *PostHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r, h.actors)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.posts.Delete(r.Context(), actor, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "post deleted")
}

func (h *PostHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"posts": posts})
}
