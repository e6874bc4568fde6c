package mcp

import "github.com/mark3labs/mcp-go/mcp"

var additionalFeatureSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"name":        map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
	},
	"required": []string{"name"},
}

// requestOptions are the project description arguments shared by
// project_generate and project_preview.
func requestOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("mode",
			mcp.Description("Generation mode. Advanced enables architecture, methodologies and best practices."),
			mcp.Enum("basic", "advanced"),
		),
		mcp.WithString("prompt", mcp.Description("Free-text project description. Explicit fields win over anything inferred from it.")),
		mcp.WithString("template_id", mcp.Description("Gallery template to start from (see project_templates).")),
		mcp.WithString("project_name", mcp.Description("Project name. Also used for the archive file name.")),
		mcp.WithString("description", mcp.Description("Short project description.")),
		mcp.WithString("features", mcp.Description("Comma-separated feature summary.")),
		mcp.WithString("language", mcp.Description("Target language, e.g. JavaScript.")),
		mcp.WithString("framework", mcp.Description("Target framework, e.g. Express.js.")),
		mcp.WithString("architecture", mcp.Description("Architecture id from project_catalog, e.g. mvc, clean, microservices.")),
		mcp.WithArray("methodologies", mcp.Description("Methodology ids, e.g. tdd, ddd."), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("best_practices", mcp.Description("Best-practice ids, e.g. eslint, prettier, husky."), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("flags", mcp.Description("Enabled options: authentication, database, testing, docker, api, frontend."), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("additional_features", mcp.Description("Extra features that get a stub module each."), mcp.Items(additionalFeatureSchema)),
		mcp.WithBoolean("local", mcp.Description("Skip the remote API and build locally.")),
	}
}

func toolDef(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	return mcp.NewTool(name, append([]mcp.ToolOption{mcp.WithDescription(description)}, opts...)...)
}

var generateToolDef = toolDef("project_generate",
	"Generate a project scaffold as a ZIP archive. Writes it to output_path and/or extracts it into unpack_dir; falls back to the configured output_dir.",
	append(requestOptions(),
		mcp.WithString("output_path", mcp.Description("Destination .zip file, or an existing directory.")),
		mcp.WithString("unpack_dir", mcp.Description("Directory to extract the generated project into.")),
		mcp.WithBoolean("force", mcp.Description("Overwrite existing files.")),
		mcp.WithBoolean("publish", mcp.Description("Upload the archive to the configured object store and return a download link.")),
	)...,
)

var previewToolDef = toolDef("project_preview",
	"List the files a project would contain, or show one file, without writing anything.",
	append(requestOptions(),
		mcp.WithString("path", mcp.Description("Return the content of this file in the tree.")),
		mcp.WithReadOnlyHintAnnotation(true),
	)...,
)

var parsePromptToolDef = toolDef("project_parse_prompt",
	"Turn a free-text description into a project configuration (name, framework, language, flags).",
	mcp.WithString("prompt", mcp.Required(), mcp.Description("Free-text project description.")),
	mcp.WithString("mode", mcp.Enum("basic", "advanced")),
	mcp.WithBoolean("local", mcp.Description("Skip the remote API and parse locally.")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var catalogToolDef = toolDef("project_catalog",
	"List architectures, methodologies, best practices, languages and frameworks.",
	mcp.WithString("language", mcp.Description("Only list frameworks for this language.")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var templatesToolDef = toolDef("project_templates",
	"Search the template gallery.",
	mcp.WithString("query", mcp.Description("Case-insensitive match on name or description.")),
	mcp.WithString("filter", mcp.Description("all, fullstack, api, or a language name.")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var historyToolDef = toolDef("project_history",
	"List recorded generations, newest first.",
	mcp.WithString("mode", mcp.Enum("basic", "advanced")),
	mcp.WithString("template_id"),
	mcp.WithNumber("limit", mcp.Description("Max items (default 20, max 100).")),
	mcp.WithNumber("offset"),
	mcp.WithReadOnlyHintAnnotation(true),
)

var historyGetToolDef = toolDef("history_get",
	"Fetch one recorded generation, including the configuration it was built from.",
	mcp.WithString("id", mcp.Required()),
	mcp.WithReadOnlyHintAnnotation(true),
)

var historyPurgeToolDef = toolDef("history_purge",
	"Permanently delete history records. Without older_than_days every record is removed.",
	mcp.WithNumber("older_than_days"),
	mcp.WithDestructiveHintAnnotation(true),
)
