// Package generator turns a project configuration into an archive, either
// locally or by delegating to the hosted API with a local fallback.
package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ruthina1/Dev-Genie/internal/archive"
	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/logging"
	"github.com/ruthina1/Dev-Genie/internal/project"
	"github.com/ruthina1/Dev-Genie/internal/remote"
	"github.com/ruthina1/Dev-Genie/internal/scaffold"
)

// Sources recorded on a Result.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Result is a generated archive plus the metadata surfaces report.
type Result struct {
	Archive        []byte   `json:"-"`
	FileName       string   `json:"fileName"`
	Source         string   `json:"source"`
	ProjectID      string   `json:"projectId,omitempty"`
	Files          []string `json:"files"`
	Fallback       bool     `json:"fallback,omitempty"`
	FallbackReason string   `json:"fallbackReason,omitempty"`
}

// Generator produces an archive for a configuration.
type Generator interface {
	Generate(ctx context.Context, cfg project.Config, mode project.Mode) (Result, error)
}

// Local builds the tree in process and serializes it.
type Local struct{}

// Generate implements Generator.
func (Local) Generate(ctx context.Context, cfg project.Config, mode project.Mode) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, errors.NewCancelled(err)
	}
	tree, err := scaffold.Build(cfg, mode)
	if err != nil {
		return Result{}, err
	}
	data, err := archive.Serialize(tree)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Archive:  data,
		FileName: project.ArchiveName(cfg.Canonical().ProjectName),
		Source:   SourceLocal,
		Files:    tree.Paths(),
	}, nil
}

// Remote delegates generation to the hosted API. The response must be an
// archive or a JSON descriptor naming a downloadable project; anything else
// is treated as malformed.
type Remote struct {
	Client *remote.Client
}

// Generate implements Generator.
func (r Remote) Generate(ctx context.Context, cfg project.Config, mode project.Mode) (Result, error) {
	if r.Client == nil {
		return Result{}, errors.NewRemoteFailed("generate", fmt.Errorf("remote client is not configured"))
	}
	resp, err := r.Client.Generate(ctx, mode, cfg)
	if err != nil {
		return Result{}, errors.NewRemoteFailed("generate", err)
	}

	res := Result{
		FileName: project.ArchiveName(cfg.Canonical().ProjectName),
		Source:   SourceRemote,
	}
	switch resp.Kind {
	case remote.KindArchive:
		res.Archive = resp.Body
	case remote.KindJSON:
		var desc remote.Descriptor
		if err := resp.Decode(&desc); err != nil {
			return Result{}, errors.NewRemoteFailed("generate", err)
		}
		if strings.TrimSpace(desc.ProjectID) == "" {
			return Result{}, errors.NewRemoteFailed("generate", fmt.Errorf("malformed response: missing projectId"))
		}
		data, err := r.Client.Download(ctx, desc.ProjectID)
		if err != nil {
			return Result{}, errors.NewRemoteFailed("download", err)
		}
		res.Archive = data
		res.ProjectID = desc.ProjectID
		if desc.FileName != "" {
			res.FileName = desc.FileName
		}
	default:
		return Result{}, errors.NewRemoteFailed("generate", fmt.Errorf("malformed response: unexpected %s body", resp.Kind))
	}

	tree, err := archive.Extract(res.Archive)
	if err != nil {
		return Result{}, errors.NewRemoteFailed("generate", fmt.Errorf("malformed archive: %w", err))
	}
	res.Files = tree.Paths()
	return res, nil
}

// Fallback tries Primary and, on any failure other than cancellation,
// returns Secondary's result marked as a fallback.
type Fallback struct {
	Primary   Generator
	Secondary Generator
	Logger    *slog.Logger
}

// Generate implements Generator.
func (f Fallback) Generate(ctx context.Context, cfg project.Config, mode project.Mode) (Result, error) {
	res, err := f.Primary.Generate(ctx, cfg, mode)
	if err == nil {
		return res, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return Result{}, errors.NewCancelled(ctxErr)
	}

	logger := f.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	logger.Warn("remote generation failed, using local builder",
		"project", cfg.ProjectName, "mode", string(mode), "error", err)

	res, secErr := f.Secondary.Generate(ctx, cfg, mode)
	if secErr != nil {
		return Result{}, secErr
	}
	res.Fallback = true
	res.FallbackReason = err.Error()
	return res, nil
}

// Router picks a generator by mode: basic always runs locally, advanced goes
// through Advanced.
type Router struct {
	Basic    Generator
	Advanced Generator
}

// NewRouter wires the standard pipeline. A nil client disables delegation.
func NewRouter(client *remote.Client, logger *slog.Logger) Router {
	local := Local{}
	r := Router{Basic: local, Advanced: local}
	if client != nil {
		r.Advanced = Fallback{Primary: Remote{Client: client}, Secondary: local, Logger: logger}
	}
	return r
}

// Generate implements Generator.
func (r Router) Generate(ctx context.Context, cfg project.Config, mode project.Mode) (Result, error) {
	switch mode {
	case project.ModeBasic:
		return r.Basic.Generate(ctx, cfg, mode)
	case project.ModeAdvanced:
		return r.Advanced.Generate(ctx, cfg, mode)
	default:
		return Result{}, errors.NewInvalidRequest(fmt.Sprintf("unknown mode %q", mode))
	}
}
