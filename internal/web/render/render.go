package render

import (
	"bytes"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// layout pairs a page directory with the base template that wraps it.
type layout struct {
	base  string
	pages string
}

var layouts = []layout{
	{base: "layouts/public.html", pages: "pages/*.html"},
	{base: "layouts/admin.html", pages: "admin/*.html"},
}

// Renderer executes page templates parsed once from an embedded filesystem.
// Pages under pages/ are keyed by file name ("home.html"); pages under admin/
// keep their directory ("admin/orders.html").
type Renderer struct {
	templates map[string]*template.Template
}

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return "€" + d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("2006-01-02 15:04") },
	"add":   func(a, b int) int { return a + b },
	"sub":   func(a, b int) int { return a - b },
}

func NewRenderer(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template)}

	partials, err := fs.Glob(fsys, "partials/*.html")
	if err != nil {
		return nil, err
	}

	for _, l := range layouts {
		pages, err := fs.Glob(fsys, l.pages)
		if err != nil {
			return nil, err
		}
		for _, page := range pages {
			files := append([]string{l.base}, partials...)
			files = append(files, page)

			tmpl, err := template.New(path.Base(page)).Funcs(funcs).ParseFS(fsys, files...)
			if err != nil {
				return nil, err
			}
			r.templates[templateKey(page)] = tmpl
		}
	}
	return r, nil
}

func templateKey(page string) string {
	if strings.HasPrefix(page, "admin/") {
		return page
	}
	return path.Base(page)
}

func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, name string, data map[string]any) {
	r.RenderStatus(w, req, http.StatusOK, name, data)
}

// RenderStatus executes the named page into a buffer first so a template
// error never leaves a half-written response. The CSRF token cookie, when
// present, is exposed to templates as .CSRFToken.
func (r *Renderer) RenderStatus(w http.ResponseWriter, req *http.Request, status int, name string, data map[string]any) {
	t, ok := r.templates[name]
	if !ok {
		slog.Error("template not found", "name", name)
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = map[string]any{}
	}
	if cookie, err := req.Cookie("csrf_token"); err == nil {
		data["CSRFToken"] = cookie.Value
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		slog.Error("failed to execute template", "name", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("write response failed", "name", name, "error", err)
	}
}
