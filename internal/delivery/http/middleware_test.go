package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"entreprenapp/internal/entity"
	"entreprenapp/internal/usecase"
	"entreprenapp/pkg/apperror"
	"entreprenapp/pkg/jwt"

	"go.uber.org/zap"
)

// stubAuth backs the middleware tests with real token verification and a
// fixed principal.
type stubAuth struct {
	tokens *jwt.TokenManager
	user   entity.User
}

func newStubAuth() *stubAuth {
	return &stubAuth{
		tokens: jwt.NewTokenManager(
			"test-access-secret-0123456789abcdef",
			"test-refresh-secret-0123456789abcdef",
			15*time.Minute,
			7*24*time.Hour,
		),
		user: entity.User{Id: "user-1", Email: "alice@example.com", Username: "alice", Role: entity.RoleEntrepreneur, Verified: true},
	}
}

func (s *stubAuth) Register(context.Context, entity.RegisterRequest) (entity.User, error) {
	panic("not used")
}

func (s *stubAuth) Login(context.Context, entity.LoginRequest) (entity.AuthResponse, error) {
	panic("not used")
}

func (s *stubAuth) Verify(context.Context, entity.VerifyRequest) error { panic("not used") }
func (s *stubAuth) ResendCode(context.Context, string) error           { panic("not used") }

func (s *stubAuth) Refresh(_ context.Context, refreshToken string) (entity.AuthResponse, error) {
	if _, err := s.tokens.ValidateRefreshToken(refreshToken); err != nil {
		return entity.AuthResponse{}, apperror.Unauthorized("invalid or expired refresh token")
	}
	access, err := s.tokens.GenerateAccessToken(s.user)
	if err != nil {
		return entity.AuthResponse{}, apperror.Internal(err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(s.user)
	if err != nil {
		return entity.AuthResponse{}, apperror.Internal(err)
	}
	return entity.AuthResponse{AccessToken: access, RefreshToken: refresh, User: s.user}, nil
}

func (s *stubAuth) ValidateAccessToken(token string) (*entity.TokenClaims, error) {
	return s.tokens.ValidateAccessToken(token)
}

func (s *stubAuth) ValidateRefreshToken(token string) (*entity.TokenClaims, error) {
	return s.tokens.ValidateRefreshToken(token)
}

func (s *stubAuth) ResolvePrincipal(_ context.Context, claims *entity.TokenClaims) (entity.User, error) {
	if claims.UserId != s.user.Id {
		return entity.User{}, apperror.Unauthorized("account no longer exists")
	}
	return s.user, nil
}

var _ usecase.AuthUsecase = (*stubAuth)(nil)

func authProtected(t *testing.T, stub *stubAuth) http.Handler {
	t.Helper()
	cookies := NewCookieManager(false, 15*time.Minute, 7*24*time.Hour)
	mw := NewAuthMiddleware(stub, cookies, zap.NewNop().Sugar())

	return mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			t.Fatal("principal missing from context")
		}
		writeJSON(w, http.StatusOK, "success", map[string]string{"userId": user.Id})
	}))
}

func expiredAccessToken(t *testing.T, user entity.User) string {
	t.Helper()
	gen := jwt.NewTokenManager(
		"test-access-secret-0123456789abcdef",
		"test-refresh-secret-0123456789abcdef",
		-time.Minute,
		-time.Minute,
	)
	token, err := gen.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("generate expired token: %v", err)
	}
	return token
}

func TestAuthenticateWithValidAccessCookie(t *testing.T) {
	stub := newStubAuth()
	handler := authProtected(t, stub)

	access, _ := stub.tokens.GenerateAccessToken(stub.user)
	req := httptest.NewRequest(http.MethodGet, "/api/post", nil)
	req.AddCookie(&http.Cookie{Name: accessCookieName, Value: access})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestAuthenticateSilentRefresh(t *testing.T) {
	stub := newStubAuth()
	handler := authProtected(t, stub)

	refresh, _ := stub.tokens.GenerateRefreshToken(stub.user)
	req := httptest.NewRequest(http.MethodGet, "/api/post", nil)
	req.AddCookie(&http.Cookie{Name: accessCookieName, Value: expiredAccessToken(t, stub.user)})
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: refresh})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (expired access + valid refresh must not 401)", rec.Code)
	}

	var refreshed bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == accessCookieName && cookie.Value != "" {
			refreshed = true
			if _, err := stub.tokens.ValidateAccessToken(cookie.Value); err != nil {
				t.Fatalf("refreshed access cookie invalid: %v", err)
			}
		}
	}
	if !refreshed {
		t.Fatal("silent refresh must set a new access cookie")
	}
}

func TestAuthenticateMissingCredentials(t *testing.T) {
	handler := authProtected(t, newStubAuth())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/post", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var body Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if body.Success {
		t.Fatal("error envelope must have success=false")
	}
}

func TestAuthenticateGarbageAccessCookie(t *testing.T) {
	stub := newStubAuth()
	handler := authProtected(t, stub)

	refresh, _ := stub.tokens.GenerateRefreshToken(stub.user)
	req := httptest.NewRequest(http.MethodGet, "/api/post", nil)
	req.AddCookie(&http.Cookie{Name: accessCookieName, Value: "garbage"})
	// A refresh cookie is present but a malformed access token must not
	// trigger a refresh.
	req.AddCookie(&http.Cookie{Name: refreshCookieName, Value: refresh})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestAuthenticateBearerFallback(t *testing.T) {
	stub := newStubAuth()
	handler := authProtected(t, stub)

	access, _ := stub.tokens.GenerateAccessToken(stub.user)
	req := httptest.NewRequest(http.MethodGet, "/api/post", nil)
	req.Header.Set("Authorization", "Bearer "+access)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestAuthenticateBearerHasNoRefresh(t *testing.T) {
	stub := newStubAuth()
	handler := authProtected(t, stub)

	req := httptest.NewRequest(http.MethodGet, "/api/post", nil)
	req.Header.Set("Authorization", "Bearer "+expiredAccessToken(t, stub.user))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 (expired bearer must not refresh)", rec.Code)
	}
}
