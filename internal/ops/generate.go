package ops

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruthina1/Dev-Genie/internal/archive"
	"github.com/ruthina1/Dev-Genie/internal/db"
	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/generator"
	"github.com/ruthina1/Dev-Genie/internal/project"
	"github.com/ruthina1/Dev-Genie/internal/publish"
)

// GenerateInput contains parameters for the Generate operation.
type GenerateInput struct {
	Request
	OutputPath string // optional .zip file or existing directory
	UnpackDir  string // optional directory to extract the project into
	Force      bool   // overwrite existing files
	Publish    bool   // upload to the configured object store
}

// GenerateOutput contains the result of the Generate operation.
type GenerateOutput struct {
	ID             string          `json:"id"`
	ProjectName    string          `json:"project_name"`
	FileName       string          `json:"file_name"`
	Mode           project.Mode    `json:"mode"`
	Source         string          `json:"source"`
	Fallback       bool            `json:"fallback,omitempty"`
	FallbackReason string          `json:"fallback_reason,omitempty"`
	RemoteID       string          `json:"remote_id,omitempty"`
	Files          []string        `json:"files"`
	ArchiveBytes   int             `json:"archive_bytes"`
	Path           string          `json:"path,omitempty"`
	UnpackedTo     string          `json:"unpacked_to,omitempty"`
	Published      *publish.Object `json:"published,omitempty"`
	Config         project.Config  `json:"config"`
	Archive        []byte          `json:"-"`
}

// Generate resolves the request, produces the archive, writes, unpacks and
// publishes it as requested, and records it once all of that succeeded.
func Generate(ctx context.Context, env Env, input GenerateInput) (*GenerateOutput, error) {
	if input.Publish && env.Publisher == nil {
		return nil, errors.NewInvalidRequest("publishing is not configured (set DEVGENIE_S3_ENDPOINT and credentials)")
	}

	mode, cfg, err := resolve(input.Request, env.parseFunc(ctx, input.Local))
	if err != nil {
		return nil, err
	}

	gen := env.generator()
	if input.Local {
		gen = generator.Local{}
	}
	res, err := gen.Generate(ctx, cfg, mode)
	if err != nil {
		return nil, err
	}

	now := env.now()
	id, err := generateULID(now)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	out := &GenerateOutput{
		ID:             id,
		ProjectName:    cfg.ProjectName,
		FileName:       res.FileName,
		Mode:           mode,
		Source:         res.Source,
		Fallback:       res.Fallback,
		FallbackReason: res.FallbackReason,
		RemoteID:       res.ProjectID,
		Files:          res.Files,
		ArchiveBytes:   len(res.Archive),
		Config:         cfg,
		Archive:        res.Archive,
	}

	if input.OutputPath != "" {
		path, err := resolveOutputPath(input.OutputPath, out.FileName)
		if err != nil {
			return nil, err
		}
		if err := archive.WriteFile(path, res.Archive, input.Force); err != nil {
			return nil, err
		}
		out.Path = path
	}

	if input.UnpackDir != "" {
		tree, err := archive.Extract(res.Archive)
		if err != nil {
			return nil, err
		}
		dir, err := filepath.Abs(input.UnpackDir)
		if err != nil {
			return nil, errors.NewInvalidRequest(fmt.Sprintf("invalid unpack directory: %v", err))
		}
		if err := archive.Unpack(tree, dir, input.Force); err != nil {
			return nil, err
		}
		out.UnpackedTo = dir
	}

	if input.Publish {
		obj, err := env.Publisher.Publish(ctx, id, out.FileName, res.Archive)
		if err != nil {
			return nil, err
		}
		out.Published = obj
	}

	if err := record(env, out, now.Unix()); err != nil {
		return nil, err
	}

	env.logger().Info("project generated",
		"id", id, "project", cfg.ProjectName, "mode", string(mode),
		"source", res.Source, "fallback", res.Fallback, "files", len(res.Files))
	return out, nil
}

// record stores generation metadata when a database is configured.
func record(env Env, out *GenerateOutput, createdAt int64) error {
	if env.DB == nil {
		return nil
	}
	cfgJSON, err := json.Marshal(out.Config)
	if err != nil {
		return errors.NewInternal(err)
	}
	return db.Insert(env.DB, &db.Generation{
		ID:           out.ID,
		ProjectName:  out.ProjectName,
		Slug:         project.Slug(out.ProjectName),
		Mode:         string(out.Mode),
		Architecture: out.Config.Architecture,
		TemplateID:   out.Config.TemplateID,
		Source:       out.Source,
		Fallback:     out.Fallback,
		FileCount:    len(out.Files),
		ArchiveBytes: int64(out.ArchiveBytes),
		ConfigJSON:   string(cfgJSON),
		CreatedAt:    createdAt,
	})
}

// resolveOutputPath places fileName inside path when path is an existing
// directory, then validates the result.
func resolveOutputPath(path, fileName string) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, SanitizeForFilename(fileName))
	}
	if err := ValidateOutputPath(path); err != nil {
		return "", err
	}
	return filepath.Abs(path)
}
