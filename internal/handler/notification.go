package handler

import (
	"log/slog"
	"net/http"

	"github.com/Murilo211205/rede-social/internal/service"
)

// NotificationHandler serves the notification inbox.
type NotificationHandler struct {
	notifications *service.NotificationService
	logger        *slog.Logger
}

func NewNotificationHandler(notifications *service.NotificationService, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{notifications: notifications, logger: logger}
}

func (h *NotificationHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, err := requireCallerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	list, err := h.notifications.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"notifications": list})
}

// HandleUnreadCount returns the unread badge count. Anonymous callers
// get zero instead of 401 so clients can poll without a session.
func (h *NotificationHandler) HandleUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notifications.CountUnread(r.Context(), callerID(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{"count": count})
}

func (h *NotificationHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	userID, err := requireCallerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.notifications.MarkRead(r.Context(), userID, r.PathValue("id")); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "notification read")
}

func (h *NotificationHandler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, err := requireCallerID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.notifications.MarkAllRead(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "all notifications read")
}
