package http

import (
	"net/http"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/usecase"
	"entreprenapp/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProjectHandler struct {
	projectUc usecase.ProjectUsecase
	log       *zap.SugaredLogger
}

func NewProjectHandler(projectUc usecase.ProjectUsecase, log *zap.SugaredLogger) *ProjectHandler {
	return &ProjectHandler{
		projectUc: projectUc,
		log:       log,
	}
}

// POST /api/project/create
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	var req entity.CreateProjectRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	project, err := h.projectUc.Create(r.Context(), owner, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, "project created", map[string]any{"project": project})
}

// GET /api/project/{id}
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectUc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"project": project})
}

// GET /api/project
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	projects, err := h.projectUc.List(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"projects": projects})
}

// DELETE /api/project/delete/{id}
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projectUc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "project deleted", nil)
}

// POST /api/project/invest/{id}
func (h *ProjectHandler) Invest(w http.ResponseWriter, r *http.Request) {
	investor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	var req entity.InvestRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	project, err := h.projectUc.Invest(r.Context(), investor, chi.URLParam(r, "id"), req.Amount)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "investment recorded", map[string]any{"project": project})
}
