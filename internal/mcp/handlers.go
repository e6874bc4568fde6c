package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/ops"
	"github.com/ruthina1/Dev-Genie/internal/project"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	env ops.Env
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(env ops.Env) *Handlers {
	return &Handlers{env: env}
}

// Request types for each tool

// ProjectRequest describes the project for generate and preview.
type ProjectRequest struct {
	Mode               string            `json:"mode,omitempty"`
	Prompt             string            `json:"prompt,omitempty"`
	TemplateID         string            `json:"template_id,omitempty"`
	ProjectName        string            `json:"project_name,omitempty"`
	Description        string            `json:"description,omitempty"`
	Features           string            `json:"features,omitempty"`
	Language           string            `json:"language,omitempty"`
	Framework          string            `json:"framework,omitempty"`
	Architecture       string            `json:"architecture,omitempty"`
	Methodologies      []string          `json:"methodologies,omitempty"`
	BestPractices      []string          `json:"best_practices,omitempty"`
	Flags              []string          `json:"flags,omitempty"`
	AdditionalFeatures []project.Feature `json:"additional_features,omitempty"`
	Local              bool              `json:"local,omitempty"`
}

// GenerateRequest represents the arguments for project_generate.
type GenerateRequest struct {
	ProjectRequest
	OutputPath string `json:"output_path,omitempty"`
	UnpackDir  string `json:"unpack_dir,omitempty"`
	Force      bool   `json:"force,omitempty"`
	Publish    bool   `json:"publish,omitempty"`
}

// PreviewRequest represents the arguments for project_preview.
type PreviewRequest struct {
	ProjectRequest
	Path string `json:"path,omitempty"`
}

// ParsePromptRequest represents the arguments for project_parse_prompt.
type ParsePromptRequest struct {
	Prompt string `json:"prompt"`
	Mode   string `json:"mode,omitempty"`
	Local  bool   `json:"local,omitempty"`
}

// CatalogRequest represents the arguments for project_catalog.
type CatalogRequest struct {
	Language string `json:"language,omitempty"`
}

// TemplatesRequest represents the arguments for project_templates.
type TemplatesRequest struct {
	Query  string `json:"query,omitempty"`
	Filter string `json:"filter,omitempty"`
}

// HistoryRequest represents the arguments for project_history.
type HistoryRequest struct {
	Mode       string `json:"mode,omitempty"`
	TemplateID string `json:"template_id,omitempty"`
	Limit      int    `json:"limit,omitempty"`
	Offset     int    `json:"offset,omitempty"`
}

// HistoryGetRequest represents the arguments for history_get.
type HistoryGetRequest struct {
	ID string `json:"id"`
}

// PurgeRequest represents the arguments for history_purge.
type PurgeRequest struct {
	OlderThanDays *int `json:"older_than_days,omitempty"`
}

// toRequest maps tool arguments onto an operation request.
func (r ProjectRequest) toRequest() (ops.Request, error) {
	form := project.Config{
		ProjectName:        r.ProjectName,
		Description:        r.Description,
		Features:           r.Features,
		Language:           r.Language,
		Framework:          r.Framework,
		Architecture:       r.Architecture,
		Methodologies:      r.Methodologies,
		BestPractices:      r.BestPractices,
		AdditionalFeatures: r.AdditionalFeatures,
	}
	if len(r.Flags) > 0 {
		form.Flags = make(map[project.Flag]bool, len(r.Flags))
		var unknown []string
		for _, name := range r.Flags {
			f, ok := project.ParseFlag(name)
			if !ok {
				unknown = append(unknown, name)
				continue
			}
			form.Flags[f] = true
		}
		if len(unknown) > 0 {
			return ops.Request{}, errors.NewInvalidRequest("unknown flags: " + strings.Join(unknown, ", "))
		}
	}
	return ops.Request{
		Mode:       r.Mode,
		Prompt:     r.Prompt,
		Form:       form,
		TemplateID: r.TemplateID,
		Local:      r.Local,
	}, nil
}

// Handler implementations

// HandleGenerate handles the project_generate tool call.
func (h *Handlers) HandleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GenerateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	request, err := input.toRequest()
	if err != nil {
		return errorResult(err), nil
	}

	// An archive nobody can reach is useless over stdio.
	outputPath := input.OutputPath
	if outputPath == "" && input.UnpackDir == "" {
		if h.env.Config != nil {
			outputPath = h.env.Config.OutputDir
		}
		if outputPath == "" {
			return errorResult(errors.NewInvalidRequest("output_path or unpack_dir is required (or set output_dir in config)")), nil
		}
	}

	result, err := ops.Generate(ctx, h.env, ops.GenerateInput{
		Request:    request,
		OutputPath: outputPath,
		UnpackDir:  input.UnpackDir,
		Force:      input.Force,
		Publish:    input.Publish,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePreview handles the project_preview tool call.
func (h *Handlers) HandlePreview(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PreviewRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	request, err := input.toRequest()
	if err != nil {
		return errorResult(err), nil
	}

	result, err := ops.Preview(ctx, h.env, ops.PreviewInput{Request: request, Path: input.Path})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleParsePrompt handles the project_parse_prompt tool call.
func (h *Handlers) HandleParsePrompt(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ParsePromptRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ParsePrompt(ctx, h.env, ops.ParseInput{
		Prompt: input.Prompt,
		Mode:   input.Mode,
		Local:  input.Local,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCatalog handles the project_catalog tool call.
func (h *Handlers) HandleCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CatalogRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	return successResult(ops.Catalog(ops.CatalogInput{Language: input.Language}))
}

// HandleTemplates handles the project_templates tool call.
func (h *Handlers) HandleTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[TemplatesRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Templates(h.env, ops.TemplatesInput{Query: input.Query, Filter: input.Filter})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHistory handles the project_history tool call.
func (h *Handlers) HandleHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.History(h.env, ops.HistoryInput{
		Mode:       input.Mode,
		TemplateID: input.TemplateID,
		Limit:      input.Limit,
		Offset:     input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHistoryGet handles the history_get tool call.
func (h *Handlers) HandleHistoryGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[HistoryGetRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetGeneration(h.env, input.ID)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleHistoryPurge handles the history_purge tool call.
func (h *Handlers) HandleHistoryPurge(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PurgeRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Purge(h.env, ops.PurgeInput{OlderThanDays: input.OlderThanDays})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are not exposed.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if gErr, ok := errors.As(err); ok {
		errorObj := map[string]any{
			"code":    gErr.Code,
			"message": gErr.Message,
			"status":  gErr.Status,
		}
		if gErr.Code != errors.ErrInternal && gErr.Details != nil {
			errorObj["details"] = gErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}
