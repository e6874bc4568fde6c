package web

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/ruthina1/Dev-Genie/internal/catalog"
	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/ops"
	"github.com/ruthina1/Dev-Genie/internal/project"
	"github.com/ruthina1/Dev-Genie/internal/remote"
)

// maxRequestBytes bounds JSON request bodies.
const maxRequestBytes = 1 << 20

// HandleHealth handles GET /health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, remote.HealthResponse{Status: "ok"})
}

// HandleAPIGenerateBasic handles POST /api/generate/basic.
func (h *Handlers) HandleAPIGenerateBasic(w http.ResponseWriter, r *http.Request) {
	var req remote.BasicRequest
	if err := decodeBody(r, &req); err != nil {
		renderAPIError(w, err)
		return
	}
	h.apiGenerate(w, r, project.ModeBasic, req.Config())
}

// HandleAPIGenerateAdvanced handles POST /api/generate/advanced.
func (h *Handlers) HandleAPIGenerateAdvanced(w http.ResponseWriter, r *http.Request) {
	var req remote.AdvancedRequest
	if err := decodeBody(r, &req); err != nil {
		renderAPIError(w, err)
		return
	}
	h.apiGenerate(w, r, project.ModeAdvanced, req.Config())
}

// apiGenerate always builds locally: this server is the backend, so
// delegating again could loop back to itself.
func (h *Handlers) apiGenerate(w http.ResponseWriter, r *http.Request, mode project.Mode, cfg project.Config) {
	out, err := ops.Generate(r.Context(), h.env, ops.GenerateInput{Request: ops.Request{
		Mode:       string(mode),
		Form:       cfg,
		TemplateID: cfg.TemplateID,
		Local:      true,
	}})
	if err != nil {
		renderAPIError(w, err)
		return
	}
	h.remember(out)

	if wantsArchive(r) {
		renderArchive(w, out.FileName, out.Archive)
		return
	}
	renderJSON(w, http.StatusOK, remote.Descriptor{
		ProjectID: out.ID,
		FileName:  out.FileName,
		Files:     out.Files,
		Source:    out.Source,
	})
}

// HandleAPIDownload handles GET /api/download/{id}.
func (h *Handlers) HandleAPIDownload(w http.ResponseWriter, r *http.Request) {
	a, err := h.lookup(r.PathValue("id"))
	if err != nil {
		renderAPIError(w, err)
		return
	}
	renderArchive(w, a.FileName, a.Data)
}

// HandleAPIParsePrompt handles POST /api/parse-prompt.
func (h *Handlers) HandleAPIParsePrompt(w http.ResponseWriter, r *http.Request) {
	var req remote.ParseRequest
	if err := decodeBody(r, &req); err != nil {
		renderAPIError(w, err)
		return
	}
	out, err := ops.ParsePrompt(r.Context(), h.env, ops.ParseInput{
		Prompt: req.Prompt,
		Mode:   req.Mode,
		Local:  true,
	})
	if err != nil {
		renderAPIError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, remote.NewParseResponse(out.Config, out.Tags))
}

// HandleAPITemplates handles GET /api/templates?q=&filter=.
func (h *Handlers) HandleAPITemplates(w http.ResponseWriter, r *http.Request) {
	out, err := ops.Templates(h.env, ops.TemplatesInput{
		Query:  r.URL.Query().Get("q"),
		Filter: r.URL.Query().Get("filter"),
	})
	if err != nil {
		renderAPIError(w, err)
		return
	}
	renderJSON(w, http.StatusOK, map[string]any{"templates": out.Items})
}

// HandleAPIArchitectures handles GET /api/architectures.
func (h *Handlers) HandleAPIArchitectures(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]any{"architectures": catalog.Architectures()})
}

// HandleAPIFrameworks handles GET /api/frameworks?language=.
func (h *Handlers) HandleAPIFrameworks(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, map[string]any{
		"frameworks": catalog.Frameworks(r.URL.Query().Get("language")),
	})
}

func wantsArchive(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/zip") && !strings.Contains(accept, "application/json")
}

func decodeBody(r *http.Request, v any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes+1))
	if err != nil {
		return errors.NewInvalidRequest("failed to read request body")
	}
	if len(body) > maxRequestBytes {
		return errors.NewInvalidRequest("request body too large")
	}
	if err := json.Unmarshal(body, v); err != nil {
		return errors.NewInvalidRequest("invalid JSON body: " + err.Error())
	}
	return nil
}
