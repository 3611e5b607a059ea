package middleware

import (
	"context"
	"net/http"

	"github.com/horndawg/launchpad/internal/models"
)

type contextKey string

const adminContextKey contextKey = "admin"

// SessionCookieName carries the admin session token.
const SessionCookieName = "admin_session"

type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*models.AdminUser, error)
}

// RequireAdmin redirects to the login page unless the request carries a
// valid admin session. The admin is stored in the request context.
func RequireAdmin(sessions SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}

			admin, err := sessions.ValidateSession(r.Context(), cookie.Value)
			if err != nil {
				http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
		})
	}
}

func WithAdmin(ctx context.Context, admin *models.AdminUser) context.Context {
	return context.WithValue(ctx, adminContextKey, admin)
}

// AdminFromContext returns nil outside RequireAdmin.
func AdminFromContext(ctx context.Context) *models.AdminUser {
	admin, _ := ctx.Value(adminContextKey).(*models.AdminUser)
	return admin
}
