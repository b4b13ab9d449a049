package http

import (
	"net/http"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/usecase"
	"entreprenapp/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PostHandler struct {
	postUc usecase.PostUsecase
	log    *zap.SugaredLogger
}

func NewPostHandler(postUc usecase.PostUsecase, log *zap.SugaredLogger) *PostHandler {
	return &PostHandler{
		postUc: postUc,
		log:    log,
	}
}

// POST /api/post/create
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	author, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	var req entity.CreatePostRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	post, err := h.postUc.Create(r.Context(), author, req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, "post created", map[string]any{"post": post})
}

// GET /api/post/{id}
func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.postUc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"post": post})
}

// GET /api/post
func (h *PostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	posts, err := h.postUc.Feed(r.Context(), limit, offset)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"posts": posts})
}

// GET /api/post/user/{id}
func (h *PostHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	posts, err := h.postUc.ListByAuthor(r.Context(), chi.URLParam(r, "id"), limit, offset)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"posts": posts})
}

// PUT /api/post/update/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req entity.UpdatePostRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	post, err := h.postUc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "post updated", map[string]any{"post": post})
}

// DELETE /api/post/delete/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.postUc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "post deleted", nil)
}

// POST /api/post/like/{id}
func (h *PostHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	result, err := h.postUc.ToggleLike(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", result)
}
