package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/usecase"
	"entreprenapp/pkg/apperror"
	"entreprenapp/pkg/jwt"

	"go.uber.org/zap"
)

type contextKey string

const (
	userContextKey     contextKey = "user"
	resourceContextKey contextKey = "resource"
)

// UserFromContext returns the authenticated principal attached by the auth
// middleware.
func UserFromContext(ctx context.Context) (entity.User, bool) {
	user, ok := ctx.Value(userContextKey).(entity.User)
	return user, ok
}

// ResourceFromContext returns the resource loaded by the ownership guard.
func ResourceFromContext(ctx context.Context) any {
	return ctx.Value(resourceContextKey)
}

type AuthMiddleware struct {
	authUc  usecase.AuthUsecase
	cookies *CookieManager
	log     *zap.SugaredLogger
}

func NewAuthMiddleware(authUc usecase.AuthUsecase, cookies *CookieManager, log *zap.SugaredLogger) *AuthMiddleware {
	return &AuthMiddleware{
		authUc:  authUc,
		cookies: cookies,
		log:     log,
	}
}

// Authenticate resolves the acting principal through two credential
// extractors: the cookie pair (with silent refresh) and a bearer-header
// fallback for cookie-blocked clients. The bearer path deliberately has no
// refresh behavior.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := m.extractCredentials(w, r)
		if err != nil {
			writeError(w, r, m.log, err)
			return
		}

		user, err := m.authUc.ResolvePrincipal(r.Context(), claims)
		if err != nil {
			writeError(w, r, m.log, err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) extractCredentials(w http.ResponseWriter, r *http.Request) (*entity.TokenClaims, error) {
	accessCookie, cookieErr := r.Cookie(accessCookieName)
	if cookieErr == nil {
		claims, err := m.authUc.ValidateAccessToken(accessCookie.Value)
		if err == nil {
			return claims, nil
		}
		if errors.Is(err, jwt.ErrExpiredToken) {
			// Expired access token falls through to the refresh
			// cookie; the caller never sees this 401 case.
			return m.silentRefresh(w, r)
		}
		return nil, apperror.Unauthorized("invalid authentication")
	}

	if bearer := bearerToken(r); bearer != "" {
		claims, err := m.authUc.ValidateAccessToken(bearer)
		if err != nil {
			return nil, apperror.Unauthorized("invalid authentication")
		}
		return claims, nil
	}

	return m.silentRefresh(w, r)
}

// silentRefresh mints and sets a fresh access cookie from a valid refresh
// cookie, so the request proceeds without an intermediate 401.
func (m *AuthMiddleware) silentRefresh(w http.ResponseWriter, r *http.Request) (*entity.TokenClaims, error) {
	refreshCookie, err := r.Cookie(refreshCookieName)
	if err != nil {
		return nil, apperror.Unauthorized("authentication required")
	}

	auth, refreshErr := m.authUc.Refresh(r.Context(), refreshCookie.Value)
	if refreshErr != nil {
		return nil, refreshErr
	}

	m.cookies.SetAccess(w, auth.AccessToken)

	return &entity.TokenClaims{
		UserId:   auth.User.Id,
		Email:    auth.User.Email,
		Username: auth.User.Username,
		Role:     auth.User.Role,
	}, nil
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// CORS allows the SPA origins with credentials.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && allowed[origin] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
