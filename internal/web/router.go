package web

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/horndawg/launchpad/internal/ratelimit"
	"github.com/horndawg/launchpad/internal/web/handlers"
	"github.com/horndawg/launchpad/internal/web/middleware"
)

// RouterDeps holds all dependencies needed to build the router.
type RouterDeps struct {
	PageHandler    *handlers.PageHandler
	APIHandler     *handlers.APIHandler
	AuthHandler    *handlers.AuthHandler
	AdminHandler   *handlers.AdminHandler
	Sessions       middleware.SessionValidator
	DB             handlers.Pinger
	Limiter        *ratelimit.Limiter
	StaticFS       fs.FS
	MaxUploadBytes int64
	SecureCookies  bool
}

// NewRouter wires all routes into a chi router.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)

	fileServer := http.FileServer(http.FS(deps.StaticFS))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	r.Get("/healthz", handlers.Health(deps.DB))
	r.Handle("/metrics", promhttp.Handler())

	// Public pages
	r.Get("/", deps.PageHandler.Home())
	r.Get("/about", deps.PageHandler.About())
	r.Get("/contact", deps.PageHandler.Contact())
	r.Get("/reservation", deps.PageHandler.Reservation())
	r.Get("/thank-you", deps.PageHandler.ThankYou())

	// Public intake API (rate limited, no CSRF)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(deps.Limiter))

		r.Post("/api/reservation", deps.APIHandler.HandleReservation)
		r.Post("/api/contact", deps.APIHandler.HandleContact)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.MaxBody(deps.MaxUploadBytes))
		r.Use(middleware.CSRF(deps.SecureCookies))

		r.Get("/login", deps.AuthHandler.ShowLogin)
		r.Post("/login", deps.AuthHandler.HandleLogin)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin(deps.Sessions))

			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
			})
			r.Post("/logout", deps.AuthHandler.HandleLogout)
			r.Get("/dashboard", deps.AdminHandler.ShowDashboard)
			r.Get("/orders", deps.AdminHandler.ShowOrders)
			r.Get("/product-breakdown", deps.AdminHandler.ShowProductBreakdown)
			r.Get("/settings", deps.AdminHandler.ShowSettings)
			r.Post("/settings/price", deps.AdminHandler.HandleUpdatePrice)
			r.Get("/bulk-upload", deps.AdminHandler.ShowBulkUpload)
			r.Post("/bulk-upload", deps.AdminHandler.HandleBulkUpload)
			r.Get("/contact-messages", deps.AdminHandler.ShowContactMessages)
		})
	})

	r.NotFound(deps.PageHandler.NotFound)

	return r
}
