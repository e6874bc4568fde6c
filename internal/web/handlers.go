package web

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ruthina1/Dev-Genie/internal/archive"
	"github.com/ruthina1/Dev-Genie/internal/catalog"
	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/ops"
	"github.com/ruthina1/Dev-Genie/internal/project"
)

// Handlers contains HTTP route handlers for the web UI and API.
type Handlers struct {
	env      ops.Env
	renderer *Renderer
	cache    *archiveCache
	metrics  *metrics
}

// HandleIndex handles GET / and serves the generation form, optionally pre-filled
// from ?template=<id>.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	mode, err := project.ParseMode(r.URL.Query().Get("mode"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data := IndexPageData{
		PageData:      h.renderer.page("Generate", "generate"),
		Mode:          mode,
		Architectures: catalog.Architectures(),
		Methodologies: catalog.Methodologies(),
		BestPractices: catalog.BestPractices(),
		Flags:         project.Flags(),
	}

	if id := r.URL.Query().Get("template"); id != "" {
		tpl, ok, err := catalog.LookupTemplate(id)
		if err != nil {
			h.renderer.renderError(w, r, errors.NewInternal(err))
			return
		}
		if !ok {
			h.renderer.renderError(w, r, errors.NewNotFound("template", id))
			return
		}
		data.Template = &tpl
		data.Form = tpl.Config()
		data.Prompt = tpl.Prompt
	}

	h.renderer.renderPage(w, "index", data)
}

// HandleGenerate handles POST /generate. It runs the form and shows the result.
func (h *Handlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := parseGenerateForm(r)
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	out, err := ops.Generate(r.Context(), h.env, ops.GenerateInput{Request: req})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	h.remember(out)

	var readme string
	if tree, err := archive.Extract(out.Archive); err == nil {
		readme, _ = tree.Get("README.md")
	}

	h.renderer.renderPage(w, "result", ResultPageData{
		PageData:     h.renderer.page(out.ProjectName, "generate"),
		Result:       out,
		DownloadURL:  "/download/" + out.ID,
		RenderedHTML: renderMarkdown(readme),
	})
}

// HandleDownload handles GET /download/{id} by streaming a cached archive.
func (h *Handlers) HandleDownload(w http.ResponseWriter, r *http.Request) {
	a, err := h.lookup(r.PathValue("id"))
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	renderArchive(w, a.FileName, a.Data)
}

// HandleHistory handles GET /history, newest generations first.
func (h *Handlers) HandleHistory(w http.ResponseWriter, r *http.Request) {
	mode := r.URL.Query().Get("mode")
	result, err := ops.History(h.env, ops.HistoryInput{
		Mode:   mode,
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "history", HistoryPageData{
		PageData:   h.renderer.page("History", "history"),
		Items:      result.Items,
		Pagination: result.Pagination,
		Mode:       mode,
	})
}

// HandleTemplates handles GET /templates, the searchable gallery.
func (h *Handlers) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = catalog.FilterAll
	}

	result, err := ops.Templates(h.env, ops.TemplatesInput{Query: query, Filter: filter})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "templates", TemplatesPageData{
		PageData: h.renderer.page("Templates", "templates"),
		Items:    result.Items,
		Query:    query,
		Filter:   filter,
	})
}

// remember caches a generated archive for download and counts it.
func (h *Handlers) remember(out *ops.GenerateOutput) {
	h.cache.put(out.ID, cachedArchive{
		FileName: out.FileName,
		Data:     out.Archive,
		Files:    out.Files,
	})
	h.metrics.recordGeneration(string(out.Mode), out.Source, out.Fallback, len(out.Archive))
}

func (h *Handlers) lookup(id string) (cachedArchive, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return cachedArchive{}, errors.NewInvalidRequest("project id is required")
	}
	a, ok := h.cache.get(id)
	if !ok {
		return cachedArchive{}, errors.NewNotFound("project", id)
	}
	return a, nil
}

// parseGenerateForm maps the HTML form onto an operation request.
func parseGenerateForm(r *http.Request) (ops.Request, error) {
	if err := r.ParseForm(); err != nil {
		return ops.Request{}, errors.NewInvalidRequest("invalid form data")
	}

	form := project.Config{
		ProjectName:        r.FormValue("projectName"),
		Description:        r.FormValue("description"),
		Features:           r.FormValue("features"),
		Language:           r.FormValue("language"),
		Framework:          r.FormValue("framework"),
		Architecture:       r.FormValue("architecture"),
		Methodologies:      r.Form["methodologies"],
		BestPractices:      r.Form["bestPractices"],
		AdditionalFeatures: parseFeatureLines(r.FormValue("additionalFeatures")),
		Flags:              make(map[project.Flag]bool),
	}
	for _, f := range project.Flags() {
		if isChecked(r.FormValue("flag_" + string(f))) {
			form.Flags[f] = true
		}
	}

	return ops.Request{
		Mode:       r.FormValue("mode"),
		Prompt:     r.FormValue("prompt"),
		Form:       form,
		TemplateID: r.FormValue("template"),
	}, nil
}

// parseFeatureLines reads "Name: description" lines. Lines without a
// colon become a feature with no description.
func parseFeatureLines(s string) []project.Feature {
	var out []project.Feature
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, desc, _ := strings.Cut(line, ":")
		if name = strings.TrimSpace(name); name == "" {
			continue
		}
		out = append(out, project.Feature{Name: name, Description: strings.TrimSpace(desc)})
	}
	return out
}

func isChecked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
