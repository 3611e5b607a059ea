package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/horndawg/launchpad/internal/backoffice"
	"github.com/horndawg/launchpad/internal/models"
	"github.com/horndawg/launchpad/internal/web/middleware"
	"github.com/horndawg/launchpad/internal/web/render"
)

type BackOffice interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
	ListOrders(ctx context.Context, filter backoffice.OrderFilter) (*backoffice.OrderPage, error)
	ProductBreakdown(ctx context.Context) (*backoffice.Breakdown, error)
	UnitPrice(ctx context.Context) (decimal.Decimal, error)
	UpdatePrice(ctx context.Context, raw string) (decimal.Decimal, error)
	BulkImport(ctx context.Context, filename string, r io.Reader) (*backoffice.ImportResult, error)
	ListContactMessages(ctx context.Context, page int) (*backoffice.ContactPage, error)
}

// AdminHandler serves the session-gated back-office pages.
type AdminHandler struct {
	office        BackOffice
	render        *render.Renderer
	secureCookies bool
}

func NewAdminHandler(office BackOffice, r *render.Renderer, secureCookies bool) *AdminHandler {
	return &AdminHandler{
		office:        office,
		render:        r,
		secureCookies: secureCookies,
	}
}

func (h *AdminHandler) page(w http.ResponseWriter, r *http.Request, title string) map[string]any {
	return withFlash(w, r, h.secureCookies, map[string]any{
		"Title": title,
		"Admin": middleware.AdminFromContext(r.Context()),
	})
}

func (h *AdminHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	data := h.page(w, r, "Dashboard")

	stats, err := h.office.Dashboard(r.Context())
	if err != nil {
		slog.Error("failed to load dashboard", "error", err)
		data["Error"] = "Error loading dashboard data."
		stats = &models.DashboardStats{}
	}
	data["Stats"] = stats

	h.render.Render(w, r, "admin/dashboard.html", data)
}

func (h *AdminHandler) ShowOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := backoffice.OrderFilter{
		Search:  strings.TrimSpace(q.Get("search")),
		Product: strings.TrimSpace(q.Get("product")),
		Page:    pageParam(r),
	}

	data := h.page(w, r, "Orders")
	result, err := h.office.ListOrders(r.Context(), filter)
	if err != nil {
		slog.Error("failed to list orders", "error", err)
		data["Error"] = "Error loading orders."
		result = &backoffice.OrderPage{Filter: filter}
	}
	data["Result"] = result
	data["PageLinks"] = pageLinks("/admin/orders", filter.Page, result.TotalPages, map[string]string{
		"search":  filter.Search,
		"product": filter.Product,
	})

	h.render.Render(w, r, "admin/orders.html", data)
}

func (h *AdminHandler) ShowProductBreakdown(w http.ResponseWriter, r *http.Request) {
	data := h.page(w, r, "Product Breakdown")

	breakdown, err := h.office.ProductBreakdown(r.Context())
	if err != nil {
		slog.Error("failed to load product breakdown", "error", err)
		data["Error"] = "Error loading product breakdown."
		breakdown = &backoffice.Breakdown{}
	}
	data["Breakdown"] = breakdown

	h.render.Render(w, r, "admin/product_breakdown.html", data)
}

func (h *AdminHandler) ShowSettings(w http.ResponseWriter, r *http.Request) {
	data := h.page(w, r, "Settings")

	price, err := h.office.UnitPrice(r.Context())
	if err != nil {
		slog.Error("failed to load unit price", "error", err)
		data["Error"] = "Error loading settings."
	}
	data["Price"] = price

	h.render.Render(w, r, "admin/settings.html", data)
}

func (h *AdminHandler) HandleUpdatePrice(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		setFlashError(w, "Invalid form data.", h.secureCookies)
		http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
		return
	}

	price, err := h.office.UpdatePrice(r.Context(), r.PostFormValue("price"))
	switch {
	case errors.Is(err, backoffice.ErrInvalidPrice):
		setFlashError(w, "Invalid price.", h.secureCookies)
	case err != nil:
		slog.Error("failed to update price", "error", err)
		setFlashError(w, "Error updating price.", h.secureCookies)
	default:
		slog.Info("unit price updated", "price", price.StringFixed(2))
		setFlashSuccess(w, "Price updated to €"+price.StringFixed(2)+".", h.secureCookies)
	}
	http.Redirect(w, r, "/admin/settings", http.StatusSeeOther)
}

func (h *AdminHandler) ShowBulkUpload(w http.ResponseWriter, r *http.Request) {
	h.render.Render(w, r, "admin/bulk_upload.html", h.page(w, r, "Bulk Upload"))
}

func (h *AdminHandler) HandleBulkUpload(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			setFlashError(w, "File is too large.", h.secureCookies)
		} else {
			setFlashError(w, "No file uploaded.", h.secureCookies)
		}
		http.Redirect(w, r, "/admin/bulk-upload", http.StatusSeeOther)
		return
	}
	defer file.Close()

	result, err := h.office.BulkImport(r.Context(), header.Filename, file)
	switch {
	case errors.Is(err, backoffice.ErrEmptyImport):
		setFlashError(w, "Empty file.", h.secureCookies)
	case errors.Is(err, backoffice.ErrUnsupportedFile):
		setFlashError(w, "Unsupported file type. Upload an .xlsx or .csv file.", h.secureCookies)
	case err != nil:
		slog.Error("bulk upload failed", "file", header.Filename, "error", err)
		setFlashError(w, "Error processing file.", h.secureCookies)
	default:
		msg := fmt.Sprintf("%d orders uploaded successfully.", result.Imported)
		if result.Skipped > 0 || result.Failed > 0 {
			msg += fmt.Sprintf(" %d rows skipped, %d failed.", result.Skipped, result.Failed)
		}
		setFlashSuccess(w, msg, h.secureCookies)
	}
	http.Redirect(w, r, "/admin/bulk-upload", http.StatusSeeOther)
}

func (h *AdminHandler) ShowContactMessages(w http.ResponseWriter, r *http.Request) {
	page := pageParam(r)
	data := h.page(w, r, "Contact Messages")

	result, err := h.office.ListContactMessages(r.Context(), page)
	if err != nil {
		slog.Error("failed to list contact messages", "error", err)
		data["Error"] = "Error loading messages."
		result = &backoffice.ContactPage{Page: page}
	}
	data["Result"] = result
	data["PageLinks"] = pageLinks("/admin/contact-messages", result.Page, result.TotalPages, nil)

	h.render.Render(w, r, "admin/contact_messages.html", data)
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
