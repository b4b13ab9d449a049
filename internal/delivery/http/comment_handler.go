package http

import (
	"net/http"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/usecase"
	"entreprenapp/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CommentHandler struct {
	commentUc usecase.CommentUsecase
	log       *zap.SugaredLogger
}

func NewCommentHandler(commentUc usecase.CommentUsecase, log *zap.SugaredLogger) *CommentHandler {
	return &CommentHandler{
		commentUc: commentUc,
		log:       log,
	}
}

// POST /api/comment/create/{postId}
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	var req entity.CreateCommentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	comment, err := h.commentUc.Create(r.Context(), actor, chi.URLParam(r, "postId"), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, "comment created", map[string]any{"comment": comment})
}

// GET /api/comment/post/{postId}
func (h *CommentHandler) ListByPost(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	comments, err := h.commentUc.ListByPost(r.Context(), chi.URLParam(r, "postId"), limit, offset)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", map[string]any{"comments": comments})
}

// PUT /api/comment/update/{id}
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req entity.CreateCommentRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	comment, err := h.commentUc.Update(r.Context(), chi.URLParam(r, "id"), req.Content)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "comment updated", map[string]any{"comment": comment})
}

// DELETE /api/comment/delete/{id}
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.commentUc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "comment deleted", nil)
}

// POST /api/comment/reply/{id}
func (h *CommentHandler) Reply(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	var req entity.CreateReplyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	comment, err := h.commentUc.Reply(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusCreated, "reply added", map[string]any{"comment": comment})
}

// POST /api/comment/like/{id}
func (h *CommentHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	actor, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}

	result, err := h.commentUc.ToggleLike(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", result)
}
