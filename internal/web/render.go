package web

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/yuin/goldmark"

	"github.com/ruthina1/Dev-Genie/internal/catalog"
	"github.com/ruthina1/Dev-Genie/internal/db"
	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/ops"
	"github.com/ruthina1/Dev-Genie/internal/project"
)

// PageData contains common fields used across all page templates.
type PageData struct {
	Title   string
	Version string
	Nav     string // active nav item: "generate", "templates", "history"
}

// IndexPageData is the template data for the generation form.
type IndexPageData struct {
	PageData
	Form          project.Config
	Mode          project.Mode
	Prompt        string
	Architectures []catalog.Descriptor
	Methodologies []catalog.Descriptor
	BestPractices []catalog.Descriptor
	Flags         []project.Flag
	Template      *catalog.Template
}

// ResultPageData is the template data for a finished generation.
type ResultPageData struct {
	PageData
	Result       *ops.GenerateOutput
	DownloadURL  string
	RenderedHTML template.HTML
}

// HistoryPageData is the template data for the history page.
type HistoryPageData struct {
	PageData
	Items      []db.Generation
	Pagination ops.Pagination
	Mode       string
}

// TemplatesPageData is the template data for the gallery page.
type TemplatesPageData struct {
	PageData
	Items  []catalog.Template
	Query  string
	Filter string
}

// ErrorPageData is the template data for the error page.
type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// Renderer manages template parsing and rendering.
type Renderer struct {
	templates map[string]*template.Template
	version   string
	logger    *slog.Logger
}

// NewRenderer creates a Renderer by parsing templates from the given FS.
func NewRenderer(templateFS fs.FS, version string, logger *slog.Logger) *Renderer {
	funcMap := template.FuncMap{
		"add":          func(a, b int) int { return a + b },
		"sub":          func(a, b int) int { return a - b },
		"formatTime":   formatTime,
		"formatNumber": formatNumber,
		"join":         strings.Join,
		"hasFlag":      func(c project.Config, f project.Flag) bool { return c.Has(f) },
		"hasID":        hasID,
	}

	// Parse layout as the base template
	layoutTmpl := template.Must(template.New("layout").Funcs(funcMap).ParseFS(templateFS, "layout.html"))

	pages := map[string]string{
		"index":     "index.html",
		"result":    "result.html",
		"history":   "history.html",
		"templates": "templates.html",
		"error":     "error.html",
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t := template.Must(layoutTmpl.Clone())
		template.Must(t.ParseFS(templateFS, file))
		templates[name] = t
	}

	return &Renderer{
		templates: templates,
		version:   version,
		logger:    logger,
	}
}

// page returns PageData for a page of this renderer.
func (r *Renderer) page(title, nav string) PageData {
	return PageData{Title: title, Version: r.version, Nav: nav}
}

// renderPage renders a named page template with the given data and HTTP 200 status.
func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.renderPageStatus(w, http.StatusOK, name, data)
}

// renderPageStatus renders a named page template with the given data and HTTP status code.
func (r *Renderer) renderPageStatus(w http.ResponseWriter, status int, name string, data any) {
	t, ok := r.templates[name]
	if !ok {
		r.logger.Error("template not found", "name", name)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logger.Error("template execution error", "name", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// renderError renders an error response with content negotiation.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	gErr := asGenieError(err)

	if strings.Contains(req.Header.Get("Accept"), "application/json") {
		renderAPIError(w, gErr)
		return
	}

	r.renderPageStatus(w, gErr.Status, "error", ErrorPageData{
		PageData:   r.page(fmt.Sprintf("Error %d", gErr.Status), ""),
		StatusCode: gErr.Status,
		Message:    gErr.Message,
	})
}

// renderAPIError writes {"error":{"code","message","status"}}.
func renderAPIError(w http.ResponseWriter, err error) {
	gErr := asGenieError(err)
	renderJSON(w, gErr.Status, map[string]any{
		"error": map[string]any{
			"code":    string(gErr.Code),
			"message": gErr.Message,
			"status":  gErr.Status,
		},
	})
}

func asGenieError(err error) *errors.GenieError {
	var gErr *errors.GenieError
	if !stderrors.As(err, &gErr) {
		gErr = errors.NewInternal(err)
	}
	return gErr
}

// renderJSON writes a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// renderArchive streams a zip as an attachment.
func renderArchive(w http.ResponseWriter, fileName string, data []byte) {
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// renderMarkdown converts markdown text to HTML using goldmark.
func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// formatTime formats a Unix timestamp as "2006-01-02 15:04" UTC.
func formatTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04")
}

// formatNumber formats an int or int64 with comma thousands separators.
func formatNumber(v any) string {
	switch n := v.(type) {
	case int:
		return groupDigits(int64(n))
	case int64:
		return groupDigits(n)
	default:
		return fmt.Sprint(v)
	}
}

func groupDigits(n int64) string {
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// hasID reports whether id is in ids; used to pre-check form checkboxes.
func hasID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
