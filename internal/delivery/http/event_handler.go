package http

import (
	"net/http"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/usecase"
	"entreprenapp/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type EventHandler struct {
	eventUc usecase.EventUsecase
	log     *zap.SugaredLogger
}

func NewEventHandler(eventUc usecase.EventUsecase, log *zap.SugaredLogger) *EventHandler {
	return &EventHandler{
		eventUc: eventUc,
		log:     log,
	}
}

// POST /api/event/create
func (h *EventHandler) Create(w http.ResponseWriter, r *http.Request) {
	organizer, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	var req entity.CreateEventRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	event, err := h.eventUc.Create(r.Context(), organizer, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, "event created", map[string]any{"event": event})
}

// GET /api/event/{id}
func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	event, err := h.eventUc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"event": event})
}

// GET /api/event
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	events, err := h.eventUc.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"events": events})
}

// PUT /api/event/update/{id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req entity.UpdateEventRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	event, err := h.eventUc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "event updated", map[string]any{"event": event})
}

// DELETE /api/event/delete/{id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.eventUc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "event deleted", nil)
}

// POST /api/event/join/{id}
func (h *EventHandler) Join(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	event, err := h.eventUc.Join(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "joined event", map[string]any{"event": event})
}

// POST /api/event/leave/{id}
func (h *EventHandler) Leave(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	event, err := h.eventUc.Leave(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "left event", map[string]any{"event": event})
}
