package http

import (
	"net/http"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/usecase"
	"entreprenapp/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type FriendHandler struct {
	friendUc usecase.FriendUsecase
	log      *zap.SugaredLogger
}

func NewFriendHandler(friendUc usecase.FriendUsecase, log *zap.SugaredLogger) *FriendHandler {
	return &FriendHandler{
		friendUc: friendUc,
		log:      log,
	}
}

// POST /api/friend/request
func (h *FriendHandler) Send(w http.ResponseWriter, r *http.Request) {
	sender, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	var req entity.SendFriendRequestRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	request, err := h.friendUc.Send(r.Context(), sender, req.ReceiverId)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, "friend request sent", map[string]any{"request": request})
}

// POST /api/friend/accept/{id}
func (h *FriendHandler) Accept(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	request, err := h.friendUc.Accept(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "friend request accepted", map[string]any{"request": request})
}

// POST /api/friend/reject/{id}
func (h *FriendHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	request, err := h.friendUc.Reject(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "friend request rejected", map[string]any{"request": request})
}

// GET /api/friend/requests
func (h *FriendHandler) ListIncoming(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	requests, err := h.friendUc.ListIncoming(r.Context(), actor.Id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"requests": requests})
}

// GET /api/friend/requests/sent
func (h *FriendHandler) ListOutgoing(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	requests, err := h.friendUc.ListOutgoing(r.Context(), actor.Id)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"requests": requests})
}

// DELETE /api/friend/remove/{id}
func (h *FriendHandler) Unfriend(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	if err := h.friendUc.Unfriend(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "friend removed", nil)
}
