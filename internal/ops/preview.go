package ops

import (
	"context"

	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/project"
	"github.com/ruthina1/Dev-Genie/internal/scaffold"
)

// PreviewInput contains parameters for the Preview operation.
type PreviewInput struct {
	Request
	Path string // optional: return the content of this file
}

// PreviewFile is one entry of a previewed tree.
type PreviewFile struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// PreviewOutput contains the result of the Preview operation.
type PreviewOutput struct {
	ProjectName string         `json:"project_name"`
	Mode        project.Mode   `json:"mode"`
	Files       []PreviewFile  `json:"files"`
	TotalBytes  int            `json:"total_bytes"`
	Path        string         `json:"path,omitempty"`
	Content     *string        `json:"content,omitempty"`
	Config      project.Config `json:"config"`
}

// Preview builds the tree locally without producing an archive. Prompt
// parsing still follows the remote-first policy unless Local is set.
func Preview(ctx context.Context, env Env, input PreviewInput) (*PreviewOutput, error) {
	mode, cfg, err := resolve(input.Request, env.parseFunc(ctx, input.Local))
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.NewCancelled(err)
	}

	tree, err := scaffold.Build(cfg, mode)
	if err != nil {
		return nil, err
	}

	out := &PreviewOutput{
		ProjectName: cfg.ProjectName,
		Mode:        mode,
		Files:       make([]PreviewFile, 0, tree.Len()),
		TotalBytes:  tree.Size(),
		Config:      cfg,
	}
	for _, f := range tree.Files() {
		out.Files = append(out.Files, PreviewFile{Path: f.Path, Bytes: len(f.Content)})
	}

	if input.Path != "" {
		content, ok := tree.Get(input.Path)
		if !ok {
			return nil, errors.NewNotFound("file", input.Path)
		}
		out.Path = input.Path
		out.Content = &content
	}
	return out, nil
}
