package http

import (
	"net/http"

	"entreprenapp/internal/usecase"

	"go.uber.org/zap"
)

type SearchHandler struct {
	searchUc usecase.SearchUsecase
	log      *zap.SugaredLogger
}

func NewSearchHandler(searchUc usecase.SearchUsecase, log *zap.SugaredLogger) *SearchHandler {
	return &SearchHandler{
		searchUc: searchUc,
		log:      log,
	}
}

// GET /api/search?q=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)
	result, err := h.searchUc.Search(r.Context(), r.URL.Query().Get("q"), limit, offset)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}
	writeJSON(w, http.StatusOK, "success", result)
}
