package http

import (
	"encoding/json"
	"net/http"

	"entreprenapp/pkg/apperror"

	"go.uber.org/zap"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    any                   `json:"data,omitempty"`
	Errors  []apperror.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{
		Success: status < 400,
		Message: message,
		Data:    data,
	})
}

// writeError is the terminal error path: every handler error funnels through
// here and is normalized into the envelope. 5xx causes get logged with the
// request path and method, the client only sees a generic message.
func writeError(w http.ResponseWriter, r *http.Request, log *zap.SugaredLogger, err error) {
	apiErr := apperror.From(err)

	if apiErr.Status >= http.StatusInternalServerError {
		log.Errorw("request failed",
			"path", r.URL.Path,
			"method", r.Method,
			"error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(Response{
		Success: false,
		Message: apiErr.Message,
		Errors:  apiErr.Fields,
	})
}

func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.BadRequest("invalid request body")
	}
	return nil
}
