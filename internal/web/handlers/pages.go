package handlers

import (
	"net/http"

	"github.com/horndawg/launchpad/internal/catalog"
	"github.com/horndawg/launchpad/internal/web/render"
)

// PageHandler renders the public marketing pages.
type PageHandler struct {
	render *render.Renderer
}

func NewPageHandler(r *render.Renderer) *PageHandler {
	return &PageHandler{render: r}
}

func (h *PageHandler) show(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render.Render(w, r, name, map[string]any{
			"Title":      title,
			"Products":   catalog.Products,
			"Quantities": catalog.Quantities,
		})
	}
}

func (h *PageHandler) Home() http.HandlerFunc        { return h.show("home.html", "Home") }
func (h *PageHandler) About() http.HandlerFunc       { return h.show("about.html", "About") }
func (h *PageHandler) Contact() http.HandlerFunc     { return h.show("contact.html", "Contact") }
func (h *PageHandler) Reservation() http.HandlerFunc { return h.show("reservation.html", "Reservation") }
func (h *PageHandler) ThankYou() http.HandlerFunc    { return h.show("thank_you.html", "Thank You") }

func (h *PageHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render.RenderStatus(w, r, http.StatusNotFound, "not_found.html", map[string]any{
		"Title": "Page Not Found",
	})
}
