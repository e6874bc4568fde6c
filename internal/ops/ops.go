package ops

import (
	"context"
	"crypto/rand"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/ruthina1/Dev-Genie/internal/catalog"
	"github.com/ruthina1/Dev-Genie/internal/config"
	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/generator"
	"github.com/ruthina1/Dev-Genie/internal/logging"
	"github.com/ruthina1/Dev-Genie/internal/project"
	"github.com/ruthina1/Dev-Genie/internal/publish"
	"github.com/ruthina1/Dev-Genie/internal/remote"
)

// Pagination limits
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Pagination contains pagination metadata for list operations.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
	Total   int  `json:"total"`
}

// Env carries the collaborators shared by operations. Every field except
// Config may be nil: history is skipped without DB, generation runs locally
// without Generator, and publishing is refused without Publisher.
type Env struct {
	DB        *sql.DB
	Config    *config.Config
	Client    *remote.Client
	Generator generator.Generator
	Publisher *publish.Publisher
	Logger    *slog.Logger
	Now       func() time.Time
}

// NewEnv wires the standard collaborators for cfg. Remote delegation is
// enabled unless cfg disables it.
func NewEnv(database *sql.DB, cfg *config.Config, logger *slog.Logger) (Env, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	env := Env{DB: database, Config: cfg, Logger: logger}

	if !cfg.DisableRemote && cfg.APIBaseURL != "" {
		client, err := remote.New(cfg.APIBaseURL,
			remote.WithTimeout(time.Duration(cfg.RemoteTimeoutSeconds)*time.Second))
		if err != nil {
			return Env{}, errors.NewInvalidRequest(err.Error())
		}
		env.Client = client
	}
	env.Generator = generator.NewRouter(env.Client, logger)

	if cfg.Publish.Enabled() && cfg.Publish.AccessKey != "" {
		pub, err := publish.New(cfg.Publish)
		if err != nil {
			return Env{}, err
		}
		env.Publisher = pub
	}
	return env, nil
}

func (e Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e Env) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return logging.Discard()
}

func (e Env) generator() generator.Generator {
	if e.Generator != nil {
		return e.Generator
	}
	return generator.Local{}
}

func (e Env) parser(local bool) generator.PromptParser {
	p := generator.PromptParser{Client: e.Client, Logger: e.logger()}
	if local {
		p.Client = nil
	}
	return p
}

func (e Env) parseFunc(ctx context.Context, local bool) parseFunc {
	parser := e.parser(local)
	return func(raw string, form *project.Config, mode project.Mode) project.Config {
		res, _ := parser.Parse(ctx, raw, form, mode)
		return res.Config
	}
}

type parseFunc func(raw string, form *project.Config, mode project.Mode) project.Config

// Request is the project description shared by generate and preview.
type Request struct {
	Mode       string         // "basic" (default) or "advanced"
	Prompt     string         // optional free text
	Form       project.Config // explicit selections, which win over the prompt
	TemplateID string         // optional gallery template used as the base
	Local      bool           // skip remote delegation
}

// resolve turns a request into a validated mode and canonical config.
func resolve(r Request, parse parseFunc) (project.Mode, project.Config, error) {
	mode, err := project.ParseMode(r.Mode)
	if err != nil {
		return "", project.Config{}, err
	}

	form := r.Form
	if id := strings.TrimSpace(r.TemplateID); id != "" {
		tpl, ok, err := catalog.LookupTemplate(id)
		if err != nil {
			return "", project.Config{}, errors.NewInternal(err)
		}
		if !ok {
			return "", project.Config{}, errors.NewNotFound("template", id)
		}
		base := tpl.Config()
		form = overlayForm(base, form)
	}

	cfg := form
	if strings.TrimSpace(r.Prompt) != "" {
		cfg = parse(r.Prompt, &form, mode)
	}
	cfg = cfg.Canonical()

	if err := cfg.Validate(); err != nil {
		return "", project.Config{}, err
	}
	if mode == project.ModeAdvanced {
		if err := validateCatalogIDs(cfg); err != nil {
			return "", project.Config{}, err
		}
	}
	return mode, cfg, nil
}

// overlayForm applies non-empty form fields on top of a template config.
func overlayForm(base, form project.Config) project.Config {
	out := base
	set := func(dst *string, v string) {
		if strings.TrimSpace(v) != "" {
			*dst = v
		}
	}
	set(&out.ProjectName, form.ProjectName)
	set(&out.Description, form.Description)
	set(&out.Features, form.Features)
	set(&out.Language, form.Language)
	set(&out.Framework, form.Framework)
	set(&out.Architecture, form.Architecture)
	if len(form.Methodologies) > 0 {
		out.Methodologies = form.Methodologies
	}
	if len(form.BestPractices) > 0 {
		out.BestPractices = form.BestPractices
	}
	if len(form.AdditionalFeatures) > 0 {
		out.AdditionalFeatures = form.AdditionalFeatures
	}
	flags := make(map[project.Flag]bool, len(base.Flags)+len(form.Flags))
	for f, on := range base.Flags {
		flags[f] = on
	}
	for f, on := range form.Flags {
		flags[f] = on
	}
	out.Flags = flags
	return out
}

// validateCatalogIDs rejects ids that name nothing in the catalogs. An empty
// architecture is allowed and selects the default layout.
func validateCatalogIDs(cfg project.Config) error {
	if cfg.Architecture != "" {
		if _, ok := catalog.Architecture(cfg.Architecture); !ok {
			return errors.NewInvalidRequest(fmt.Sprintf("unknown architecture %q", cfg.Architecture))
		}
	}
	if unknown := catalog.UnknownIDs(catalog.Methodologies(), cfg.Methodologies); len(unknown) > 0 {
		return errors.NewInvalidRequest(fmt.Sprintf("unknown methodologies: %s", strings.Join(unknown, ", ")))
	}
	if unknown := catalog.UnknownIDs(catalog.BestPractices(), cfg.BestPractices); len(unknown) > 0 {
		return errors.NewInvalidRequest(fmt.Sprintf("unknown best practices: %s", strings.Join(unknown, ", ")))
	}
	return nil
}

// clampPage applies list defaults and bounds.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return limit, max(offset, 0)
}

// ulidEntropy is shared so ids minted within one millisecond still sort in
// creation order.
var ulidEntropy = &ulid.LockedMonotonicReader{MonotonicReader: ulid.Monotonic(rand.Reader, 0)}

// generateULID generates a new ULID.
func generateULID(now time.Time) (string, error) {
	id, err := ulid.New(ulid.Timestamp(now), ulidEntropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
