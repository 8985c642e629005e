package middleware

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/Dotlabs-uz/pilavtour-admin/pkg/errors"
	httputil "github.com/Dotlabs-uz/pilavtour-admin/pkg/http"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/logger"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/session"
)

const adminKey contextKey = "admin"

// AdminResolver looks a uid up in the admin allow-list. A nil admin with a
// nil error means the uid is not allow-listed.
type AdminResolver interface {
	ResolveAdmin(ctx context.Context, uid string) (*model.Admin, error)
}

// RequireAdmin authenticates the bearer session and re-checks the allow-list
// on every request. Paths in public skip both checks.
func RequireAdmin(sessions *session.Manager, admins AdminResolver, log *logger.Logger, public ...string) func(http.Handler) http.Handler {
	open := make(map[string]struct{}, len(public))
	for _, p := range public {
		open[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := open[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			token := httputil.BearerToken(r)
			if token == "" {
				_ = httputil.WriteError(w, apperrors.Unauthorized("missing bearer token"))
				return
			}

			claims, err := sessions.Parse(token)
			if err != nil {
				msg := "invalid session"
				if errors.Is(err, session.ErrExpiredToken) {
					msg = "session expired"
				}
				_ = httputil.WriteError(w, apperrors.Unauthorized(msg))
				return
			}

			admin, err := admins.ResolveAdmin(r.Context(), claims.Subject)
			if err != nil {
				log.Error("Failed to resolve admin",
					"request_id", GetRequestID(r.Context()),
					"uid", claims.Subject,
					"error", err,
				)
				_ = httputil.WriteError(w, err)
				return
			}
			if admin == nil {
				log.Warn("Rejected session for non-admin",
					"request_id", GetRequestID(r.Context()),
					"uid", claims.Subject,
				)
				_ = httputil.WriteError(w, apperrors.Forbidden("admin access required"))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
		})
	}
}

func WithAdmin(ctx context.Context, admin *model.Admin) context.Context {
	return context.WithValue(ctx, adminKey, admin)
}

func AdminFrom(ctx context.Context) (*model.Admin, bool) {
	admin, ok := ctx.Value(adminKey).(*model.Admin)
	return admin, ok && admin != nil
}
