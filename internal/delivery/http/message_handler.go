package http

import (
	"net/http"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/usecase"
	"entreprenapp/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MessageHandler struct {
	messageUc usecase.MessageUsecase
	log       *zap.SugaredLogger
}

func NewMessageHandler(messageUc usecase.MessageUsecase, log *zap.SugaredLogger) *MessageHandler {
	return &MessageHandler{
		messageUc: messageUc,
		log:       log,
	}
}

// POST /api/message/send
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	sender, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	var req entity.SendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	message, err := h.messageUc.Send(r.Context(), sender, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, "message sent", map[string]any{"message": message})
}

// GET /api/message/conversations
func (h *MessageHandler) Conversations(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	conversations, err := h.messageUc.Conversations(r.Context(), actor.Id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"conversations": conversations})
}

// GET /api/message/conversation/{id}
func (h *MessageHandler) Messages(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	limit, offset := pagination(r)
	messages, err := h.messageUc.Messages(r.Context(), actor, chi.URLParam(r, "id"), limit, offset)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"messages": messages})
}

// POST /api/message/read/{id}
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	if err := h.messageUc.MarkRead(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "conversation marked read", nil)
}
