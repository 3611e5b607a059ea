package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/horndawg/launchpad/internal/models"
	"github.com/horndawg/launchpad/internal/ratelimit"
	"github.com/horndawg/launchpad/internal/web/handlers"
	"github.com/horndawg/launchpad/internal/web/middleware"
	"github.com/horndawg/launchpad/internal/web/render"
	"github.com/horndawg/launchpad/templates"
)

type stubSessions struct{}

func (stubSessions) ValidateSession(_ context.Context, token string) (*models.AdminUser, error) {
	if token == "valid" {
		return &models.AdminUser{ID: 1, Username: "admin"}, nil
	}
	return nil, context.Canceled
}

type stubPinger struct{}

func (stubPinger) PingContext(context.Context) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	renderer, err := render.NewRenderer(templates.FS)
	if err != nil {
		t.Fatalf("NewRenderer failed: %v", err)
	}
	return NewRouter(RouterDeps{
		PageHandler:    handlers.NewPageHandler(renderer),
		APIHandler:     handlers.NewAPIHandler(nil),
		AuthHandler:    handlers.NewAuthHandler(nil, renderer, false),
		AdminHandler:   handlers.NewAdminHandler(nil, renderer, false),
		Sessions:       stubSessions{},
		DB:             stubPinger{},
		Limiter:        ratelimit.NewLimiter(1, 5),
		StaticFS:       fstest.MapFS{"css/site.css": {Data: []byte("body{}")}},
		MaxUploadBytes: 1 << 20,
	})
}

func TestRouter_AdminRequiresSession(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/admin", "/admin/dashboard", "/admin/orders", "/admin/settings", "/admin/bulk-upload", "/admin/contact-messages", "/admin/product-breakdown"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/admin/login" {
			t.Errorf("%s: expected redirect to login, got %d %s", path, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestRouter_AdminPostRequiresCSRF(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/settings/price", strings.NewReader(url.Values{"price": {"10"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: "valid"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 without CSRF token, got %d", rec.Code)
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	cases := map[string]int{
		"/":                    http.StatusOK,
		"/reservation":         http.StatusOK,
		"/thank-you":           http.StatusOK,
		"/static/css/site.css": http.StatusOK,
		"/healthz":             http.StatusOK,
		"/metrics":             http.StatusOK,
		"/does-not-exist":      http.StatusNotFound,
	}
	for path, want := range cases {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != want {
			t.Errorf("%s: expected %d, got %d", path, want, rec.Code)
		}
	}
}

func TestRouter_LoginPageSetsCSRFCookie(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/login", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.CSRFCookieName {
			token = c.Value
		}
	}
	if token == "" {
		t.Fatal("expected csrf cookie")
	}
	if !strings.Contains(rec.Body.String(), `value="`+token+`"`) {
		t.Error("expected login form to embed the fresh csrf token")
	}
}
