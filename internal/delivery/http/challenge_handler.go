package http

import (
	"net/http"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/usecase"
	"entreprenapp/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ChallengeHandler struct {
	challengeUc usecase.ChallengeUsecase
	log         *zap.SugaredLogger
}

func NewChallengeHandler(challengeUc usecase.ChallengeUsecase, log *zap.SugaredLogger) *ChallengeHandler {
	return &ChallengeHandler{
		challengeUc: challengeUc,
		log:         log,
	}
}

// POST /api/challenge/create
func (h *ChallengeHandler) Create(w http.ResponseWriter, r *http.Request) {
	creator, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	var req entity.CreateChallengeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	challenge, err := h.challengeUc.Create(r.Context(), creator, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, "challenge created", map[string]any{"challenge": challenge})
}

// GET /api/challenge/{id}
func (h *ChallengeHandler) Get(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.challengeUc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"challenge": challenge})
}

// GET /api/challenge
func (h *ChallengeHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	challenges, err := h.challengeUc.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"challenges": challenges})
}

// DELETE /api/challenge/delete/{id}
func (h *ChallengeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.challengeUc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "challenge deleted", nil)
}

// POST /api/challenge/apply/{id}
func (h *ChallengeHandler) Apply(w http.ResponseWriter, r *http.Request) {
	applicant, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	var req entity.ApplyChallengeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	challenge, err := h.challengeUc.Apply(r.Context(), applicant, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "application submitted", map[string]any{"challenge": challenge})
}
