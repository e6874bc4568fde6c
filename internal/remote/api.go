package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ruthina1/Dev-Genie/internal/catalog"
	"github.com/ruthina1/Dev-Genie/internal/project"
)

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// Healthy reports whether the status is "ok" or "healthy".
func (h HealthResponse) Healthy() bool {
	s := strings.ToLower(strings.TrimSpace(h.Status))
	return s == "ok" || s == "healthy"
}

// BasicRequest is the body of POST /api/generate/basic.
type BasicRequest struct {
	ProjectName     string `json:"projectName"`
	Description     string `json:"description"`
	Features        string `json:"features"`
	IncludeAuth     bool   `json:"includeAuth"`
	IncludeDatabase bool   `json:"includeDatabase"`
	IncludeTesting  bool   `json:"includeTesting"`
	IncludeDocker   bool   `json:"includeDocker,omitempty"`
}

// AdvancedRequest is the body of POST /api/generate/advanced.
type AdvancedRequest struct {
	ProjectName        string            `json:"projectName"`
	Description        string            `json:"description"`
	Features           string            `json:"features"`
	Language           string            `json:"language,omitempty"`
	Framework          string            `json:"framework,omitempty"`
	Architecture       string            `json:"architecture"`
	Methodologies      []string          `json:"methodologies"`
	BestPractices      []string          `json:"bestPractices"`
	AdditionalFeatures []project.Feature `json:"additionalFeatures"`
	Flags              map[string]bool   `json:"flags,omitempty"`
	IncludeAuth        bool              `json:"includeAuth"`
	IncludeDatabase    bool              `json:"includeDatabase"`
	IncludeTesting     bool              `json:"includeTesting"`
	IncludeDocker      bool              `json:"includeDocker"`
	TemplateID         string            `json:"templateId,omitempty"`
}

// NewBasicRequest converts a config to the basic wire shape.
func NewBasicRequest(cfg project.Config) BasicRequest {
	return BasicRequest{
		ProjectName:     cfg.ProjectName,
		Description:     cfg.Description,
		Features:        cfg.Features,
		IncludeAuth:     cfg.Has(project.FlagAuthentication),
		IncludeDatabase: cfg.Has(project.FlagDatabase),
		IncludeTesting:  cfg.Has(project.FlagTesting),
		IncludeDocker:   cfg.Has(project.FlagDocker),
	}
}

// Config converts the wire shape back to a project config.
func (r BasicRequest) Config() project.Config {
	return project.Config{
		ProjectName: r.ProjectName,
		Description: r.Description,
		Features:    r.Features,
		Flags: map[project.Flag]bool{
			project.FlagAuthentication: r.IncludeAuth,
			project.FlagDatabase:       r.IncludeDatabase,
			project.FlagTesting:        r.IncludeTesting,
			project.FlagDocker:         r.IncludeDocker,
		},
	}
}

// NewAdvancedRequest converts a config to the advanced wire shape.
func NewAdvancedRequest(cfg project.Config) AdvancedRequest {
	req := AdvancedRequest{
		ProjectName:        cfg.ProjectName,
		Description:        cfg.Description,
		Features:           cfg.Features,
		Language:           cfg.Language,
		Framework:          cfg.Framework,
		Architecture:       cfg.Architecture,
		Methodologies:      nonNil(cfg.Methodologies),
		BestPractices:      nonNil(cfg.BestPractices),
		AdditionalFeatures: cfg.AdditionalFeatures,
		IncludeAuth:        cfg.Has(project.FlagAuthentication),
		IncludeDatabase:    cfg.Has(project.FlagDatabase),
		IncludeTesting:     cfg.Has(project.FlagTesting),
		IncludeDocker:      cfg.Has(project.FlagDocker),
		TemplateID:         cfg.TemplateID,
	}
	if req.AdditionalFeatures == nil {
		req.AdditionalFeatures = []project.Feature{}
	}
	for _, f := range cfg.EnabledFlags() {
		if req.Flags == nil {
			req.Flags = make(map[string]bool)
		}
		req.Flags[string(f)] = true
	}
	return req
}

// Config converts the wire shape back to a project config. Both the flags
// map and the include* booleans are honored.
func (r AdvancedRequest) Config() project.Config {
	cfg := project.Config{
		ProjectName:        r.ProjectName,
		Description:        r.Description,
		Features:           r.Features,
		Language:           r.Language,
		Framework:          r.Framework,
		Architecture:       r.Architecture,
		Methodologies:      r.Methodologies,
		BestPractices:      r.BestPractices,
		AdditionalFeatures: r.AdditionalFeatures,
		TemplateID:         r.TemplateID,
		Flags:              make(map[project.Flag]bool),
	}
	for name, on := range r.Flags {
		if f, ok := project.ParseFlag(name); ok && on {
			cfg.Flags[f] = true
		}
	}
	for f, on := range map[project.Flag]bool{
		project.FlagAuthentication: r.IncludeAuth,
		project.FlagDatabase:       r.IncludeDatabase,
		project.FlagTesting:        r.IncludeTesting,
		project.FlagDocker:         r.IncludeDocker,
	} {
		if on {
			cfg.Flags[f] = true
		}
	}
	return cfg
}

// Descriptor is the JSON body returned when generation does not stream the
// archive directly.
type Descriptor struct {
	ProjectID string   `json:"projectId"`
	FileName  string   `json:"fileName,omitempty"`
	Files     []string `json:"files,omitempty"`
	Source    string   `json:"source,omitempty"`
}

// ParseRequest is the body of POST /api/parse-prompt.
type ParseRequest struct {
	Prompt string `json:"prompt"`
	Mode   string `json:"mode,omitempty"`
}

// ParseResponse is the normalized config returned by POST /api/parse-prompt.
type ParseResponse struct {
	ProjectName     string   `json:"projectName"`
	Description     string   `json:"description"`
	Framework       string   `json:"framework"`
	Language        string   `json:"language,omitempty"`
	Features        string   `json:"features"`
	Tags            []string `json:"tags,omitempty"`
	IncludeAuth     bool     `json:"includeAuth"`
	IncludeDatabase bool     `json:"includeDatabase"`
	IncludeTesting  bool     `json:"includeTesting"`
	IncludeDocker   bool     `json:"includeDocker,omitempty"`
}

// Config converts a parse result to a project config.
func (p ParseResponse) Config() project.Config {
	cfg := BasicRequest{
		ProjectName:     p.ProjectName,
		Description:     p.Description,
		Features:        p.Features,
		IncludeAuth:     p.IncludeAuth,
		IncludeDatabase: p.IncludeDatabase,
		IncludeTesting:  p.IncludeTesting,
		IncludeDocker:   p.IncludeDocker,
	}.Config()
	cfg.Framework = p.Framework
	cfg.Language = p.Language
	return cfg
}

// NewParseResponse renders a config in the parse-prompt wire shape.
func NewParseResponse(cfg project.Config, tags []string) ParseResponse {
	return ParseResponse{
		ProjectName:     cfg.ProjectName,
		Description:     cfg.Description,
		Framework:       cfg.Framework,
		Language:        cfg.Language,
		Features:        cfg.Features,
		Tags:            tags,
		IncludeAuth:     cfg.Has(project.FlagAuthentication),
		IncludeDatabase: cfg.Has(project.FlagDatabase),
		IncludeTesting:  cfg.Has(project.FlagTesting),
		IncludeDocker:   cfg.Has(project.FlagDocker),
	}
}

// Health calls GET /health.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.getJSON(ctx, "/health", &out)
	return out, err
}

// Generate posts cfg to the endpoint for mode and returns the raw response,
// which is either an archive or a JSON descriptor.
func (c *Client) Generate(ctx context.Context, mode project.Mode, cfg project.Config) (Response, error) {
	if mode == project.ModeAdvanced {
		return c.GenerateAdvanced(ctx, NewAdvancedRequest(cfg))
	}
	return c.GenerateBasic(ctx, NewBasicRequest(cfg))
}

// GenerateBasic calls POST /api/generate/basic.
func (c *Client) GenerateBasic(ctx context.Context, req BasicRequest) (Response, error) {
	return c.do(ctx, http.MethodPost, "/api/generate/basic", req)
}

// GenerateAdvanced calls POST /api/generate/advanced.
func (c *Client) GenerateAdvanced(ctx context.Context, req AdvancedRequest) (Response, error) {
	return c.do(ctx, http.MethodPost, "/api/generate/advanced", req)
}

// Download fetches the archive for a previously generated project.
func (c *Client) Download(ctx context.Context, projectID string) ([]byte, error) {
	if strings.TrimSpace(projectID) == "" {
		return nil, fmt.Errorf("project id is required")
	}
	resp, err := c.do(ctx, http.MethodGet, "/api/download/"+url.PathEscape(projectID), nil)
	if err != nil {
		return nil, err
	}
	if resp.Kind != KindArchive {
		return nil, fmt.Errorf("download returned %s (%s), want archive", resp.Kind, resp.ContentType)
	}
	return resp.Body, nil
}

// ParsePrompt calls POST /api/parse-prompt.
func (c *Client) ParsePrompt(ctx context.Context, prompt string, mode project.Mode) (ParseResponse, error) {
	resp, err := c.do(ctx, http.MethodPost, "/api/parse-prompt", ParseRequest{Prompt: prompt, Mode: string(mode)})
	if err != nil {
		return ParseResponse{}, err
	}
	var out ParseResponse
	if err := resp.Decode(&out); err != nil {
		return ParseResponse{}, err
	}
	return out, nil
}

// Templates calls GET /api/templates.
func (c *Client) Templates(ctx context.Context) ([]catalog.Template, error) {
	var out []catalog.Template
	return out, c.getList(ctx, "/api/templates", "templates", &out)
}

// Architectures calls GET /api/architectures.
func (c *Client) Architectures(ctx context.Context) ([]catalog.Descriptor, error) {
	var out []catalog.Descriptor
	return out, c.getList(ctx, "/api/architectures", "architectures", &out)
}

// Frameworks calls GET /api/frameworks?language=.
func (c *Client) Frameworks(ctx context.Context, language string) ([]string, error) {
	var out []string
	path := "/api/frameworks?language=" + url.QueryEscape(language)
	return out, c.getList(ctx, path, "frameworks", &out)
}

// getList accepts either a bare JSON array or an object wrapping it under key.
func (c *Client) getList(ctx context.Context, path, key string, v any) error {
	var raw json.RawMessage
	if err := c.getJSON(ctx, path, &raw); err != nil {
		return err
	}
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "{") {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		inner, ok := wrapped[key]
		if !ok {
			return fmt.Errorf("decode response: missing %q", key)
		}
		raw = inner
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
