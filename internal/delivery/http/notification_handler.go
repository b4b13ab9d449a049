package http

import (
	"net/http"

	"entreprenapp/internal/usecase"
	"entreprenapp/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type NotificationHandler struct {
	notificationUc usecase.NotificationUsecase
	log            *zap.SugaredLogger
}

func NewNotificationHandler(notificationUc usecase.NotificationUsecase, log *zap.SugaredLogger) *NotificationHandler {
	return &NotificationHandler{
		notificationUc: notificationUc,
		log:            log,
	}
}

// GET /api/notification
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	limit, offset := pagination(r)
	notifications, err := h.notificationUc.List(r.Context(), actor.Id, limit, offset)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"notifications": notifications})
}

// GET /api/notification/unread-count
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	count, err := h.notificationUc.UnreadCount(r.Context(), actor.Id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"count": count})
}

// POST /api/notification/read/{id}
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	if err := h.notificationUc.MarkRead(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "notification marked read", nil)
}

// POST /api/notification/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	if err := h.notificationUc.MarkAllRead(r.Context(), actor.Id); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "all notifications marked read", nil)
}
