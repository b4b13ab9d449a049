package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"entreprenapp/internal/entity"
	"entreprenapp/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func ownershipRouter(loader ResourceLoader, adminOverride bool, actor entity.User) http.Handler {
	guard := RequireOwnership(loader, "id", adminOverride, zap.NewNop().Sugar())

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			ctx := context.WithValue(req.Context(), userContextKey, actor)
			next.ServeHTTP(w, req.WithContext(ctx))
		})
	})
	r.With(guard).Delete("/resource/{id}", func(w http.ResponseWriter, req *http.Request) {
		if ResourceFromContext(req.Context()) == nil {
			writeError(w, req, zap.NewNop().Sugar(), apperror.Internal(nil))
			return
		}
		writeJSON(w, http.StatusOK, "deleted", nil)
	})
	return r
}

func postLoader(ownerId string) ResourceLoader {
	return func(_ context.Context, id string) (string, any, error) {
		if id == "missing" {
			return "", nil, apperror.NotFound("post not found")
		}
		return ownerId, entity.Post{Id: id, AuthorId: ownerId}, nil
	}
}

func TestOwnershipAllowsOwner(t *testing.T) {
	handler := ownershipRouter(postLoader("alice"), false, entity.User{Id: "alice"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/resource/post-1", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
}

func TestOwnershipRejectsNonOwner(t *testing.T) {
	handler := ownershipRouter(postLoader("alice"), false, entity.User{Id: "mallory"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/resource/post-1", nil))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	var body Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if body.Message != "Vous n'avez pas la permission d'effectuer cette action" {
		t.Fatalf("message = %q", body.Message)
	}
}

func TestOwnershipAdminOverride(t *testing.T) {
	admin := entity.User{Id: "root", Role: entity.RoleAdmin}

	handler := ownershipRouter(postLoader("alice"), true, admin)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/resource/post-1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("admin with override: status = %d, want 200", rec.Code)
	}

	handler = ownershipRouter(postLoader("alice"), false, admin)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/resource/post-1", nil))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("admin without override: status = %d, want 403", rec.Code)
	}
}

func TestOwnershipMissingResource(t *testing.T) {
	handler := ownershipRouter(postLoader("alice"), false, entity.User{Id: "alice"})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/resource/missing", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
