package http

import (
	"context"
	"net/http"

	"entreprenapp/internal/entity"
	"entreprenapp/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ResourceLoader fetches a resource by id and reports its owner. Loaders are
// expected to return an apperror (404 for missing) on failure.
type ResourceLoader func(ctx context.Context, id string) (ownerId string, resource any, err error)

// RequireOwnership is the single parameterized ownership guard: it loads the
// resource named by the path parameter, rejects non-owners with 403 and
// attaches the loaded resource to the request context. Admins bypass the
// owner check when adminOverride is set (delete routes).
func RequireOwnership(loader ResourceLoader, param string, adminOverride bool, log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeError(w, r, log, apperror.Unauthorized("authentication required"))
				return
			}

			id := chi.URLParam(r, param)
			if id == "" {
				writeError(w, r, log, apperror.BadRequest("missing resource id"))
				return
			}

			ownerId, resource, err := loader(r.Context(), id)
			if err != nil {
				writeError(w, r, log, err)
				return
			}

			if ownerId != user.Id && !(adminOverride && user.Role == entity.RoleAdmin) {
				writeError(w, r, log, apperror.Forbidden("Vous n'avez pas la permission d'effectuer cette action"))
				return
			}

			ctx := context.WithValue(r.Context(), resourceContextKey, resource)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
