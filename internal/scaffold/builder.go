// Package scaffold builds the in-memory file tree of a generated project from
// a project configuration. Building is deterministic and performs no I/O.
package scaffold

import (
	"fmt"

	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/project"
)

// Build produces the complete file tree for cfg in the given mode. The config
// is canonicalised first, so equivalent configs produce identical trees.
// Invalid input fails before any file is produced; an unknown or empty
// architecture falls back to the default layout.
func Build(cfg project.Config, mode project.Mode) (*FileTree, error) {
	if mode != project.ModeBasic && mode != project.ModeAdvanced {
		return nil, errors.NewInvalidRequest(fmt.Sprintf("unknown mode %q", mode))
	}
	cfg = cfg.Canonical()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout := ResolveLayout(mode, cfg.Architecture)
	p := newPlan(mode, layout)
	for _, c := range contributions(layout) {
		next, err := c.apply(p.clone(), cfg)
		if err != nil {
			return nil, errors.NewGenerationFailed(fmt.Errorf("%s: %w", c.name, err))
		}
		p = next
	}

	if err := p.Files.Validate(); err != nil {
		return nil, errors.NewGenerationFailed(err)
	}
	return p.Files, nil
}
