package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/horndawg/launchpad/internal/auth"
	"github.com/horndawg/launchpad/internal/models"
	"github.com/horndawg/launchpad/internal/web/middleware"
	"github.com/horndawg/launchpad/internal/web/render"
)

type Authenticator interface {
	Login(ctx context.Context, username, password string) (*models.Session, error)
	Logout(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (*models.AdminUser, error)
}

// AuthHandler serves the admin login and logout routes.
type AuthHandler struct {
	auth          Authenticator
	render        *render.Renderer
	secureCookies bool
}

func NewAuthHandler(a Authenticator, r *render.Renderer, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		auth:          a,
		render:        r,
		secureCookies: secureCookies,
	}
}

func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if _, err := h.auth.ValidateSession(r.Context(), cookie.Value); err == nil {
			http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
			return
		}
	}

	h.render.Render(w, r, "admin/login.html", withFlash(w, r, h.secureCookies, map[string]any{
		"Title": "Admin Login",
	}))
}

func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlashError(w, "Invalid form data.", h.secureCookies)
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	password := r.PostFormValue("password")

	session, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Error("admin login failed", "error", err)
		}
		setFlashError(w, "Invalid username or password.", h.secureCookies)
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    session.Token,
		Path:     "/admin",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("admin logged in", "user_id", session.UserID)
	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil && cookie.Value != "" {
		if err := h.auth.Logout(r.Context(), cookie.Value); err != nil {
			slog.Error("failed to delete admin session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}
