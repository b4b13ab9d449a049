package http

import (
	"net/http"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/usecase"
	"entreprenapp/pkg/apperror"

	"go.uber.org/zap"
)

type AuthHandler struct {
	authUc  usecase.AuthUsecase
	cookies *CookieManager
	log     *zap.SugaredLogger
}

func NewAuthHandler(authUc usecase.AuthUsecase, cookies *CookieManager, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{
		authUc:  authUc,
		cookies: cookies,
		log:     log,
	}
}

// POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entity.RegisterRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	user, err := h.authUc.Register(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, "registration successful, verification code sent", map[string]any{"user": user})
}

// POST /api/auth/verify
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req entity.VerifyRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.authUc.Verify(r.Context(), req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, "account verified", nil)
}

// POST /api/auth/resend-code
func (h *AuthHandler) ResendCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	if err := h.authUc.ResendCode(r.Context(), req.Email); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, "verification code sent", nil)
}

// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entity.LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, h.log, err)
		return
	}
	if err := checkStruct(req); err != nil {
		writeError(w, r, h.log, err)
		return
	}

	auth, err := h.authUc.Login(r.Context(), req)
	if err != nil {
		writeError(w, r, h.log, err)
		return
	}

	h.cookies.SetAccess(w, auth.AccessToken)
	h.cookies.SetRefresh(w, auth.RefreshToken)

	writeJSON(w, http.StatusOK, "login successful", map[string]any{"user": auth.User})
}

// POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		writeError(w, r, h.log, apperror.Unauthorized("refresh token is required"))
		return
	}

	auth, refreshErr := h.authUc.Refresh(r.Context(), cookie.Value)
	if refreshErr != nil {
		h.cookies.Clear(w)
		writeError(w, r, h.log, refreshErr)
		return
	}

	h.cookies.SetAccess(w, auth.AccessToken)
	h.cookies.SetRefresh(w, auth.RefreshToken)

	writeJSON(w, http.StatusOK, "token refreshed", map[string]any{"user": auth.User})
}

// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.cookies.Clear(w)
	writeJSON(w, http.StatusOK, "logout successful", nil)
}

// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeError(w, r, h.log, apperror.Unauthorized("authentication required"))
		return
	}
	user.Password = ""
	writeJSON(w, http.StatusOK, "success", map[string]any{"user": user})
}
