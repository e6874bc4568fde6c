package scaffold

import (
	"fmt"
	"strings"

	"github.com/ruthina1/Dev-Genie/internal/catalog"
	"github.com/ruthina1/Dev-Genie/internal/project"
)

// Section is a README block contributed by a rule.
type Section struct {
	Title string
	Body  string
}

func commandSection(title, command string) Section {
	return Section{Title: title, Body: "```bash\n" + command + "\n```"}
}

func renderReadme(p Plan, cfg project.Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n%s\n", cfg.ProjectName, cfg.Description)

	if p.Mode == project.ModeAdvanced {
		arch, ok := catalog.Architecture(cfg.Architecture)
		if !ok {
			arch = catalog.Descriptor{Name: "Standard Express", Description: "Single entry point exposing one root route."}
		}
		fmt.Fprintf(&b, "\n## Architecture: %s\n\n%s\n", arch.Name, arch.Description)

		if items := descriptorItems(cfg.Methodologies, catalog.Methodology); len(items) > 0 {
			b.WriteString("\n## Methodologies\n" + strings.Join(items, "\n") + "\n")
		}
		if items := descriptorItems(cfg.BestPractices, catalog.BestPractice); len(items) > 0 {
			b.WriteString("\n## Best Practices\n" + strings.Join(items, "\n") + "\n")
		}
	}

	if kw := cfg.Keywords(); len(kw) > 0 {
		b.WriteString("\n## Features\n")
		for _, k := range kw {
			fmt.Fprintf(&b, "- %s\n", k)
		}
	}

	if p.Mode == project.ModeAdvanced && len(cfg.AdditionalFeatures) > 0 {
		b.WriteString("\n## Additional Features\n")
		for _, f := range cfg.AdditionalFeatures {
			if f.Description != "" {
				fmt.Fprintf(&b, "- **%s**: %s\n", f.Name, f.Description)
			} else {
				fmt.Fprintf(&b, "- **%s**\n", f.Name)
			}
		}
	}

	if flags := cfg.EnabledFlags(); len(flags) > 0 {
		b.WriteString("\n## Options\n")
		for _, f := range flags {
			fmt.Fprintf(&b, "- %s\n", flagLabel(f))
		}
	}

	b.WriteString("\n## Installation\n\n```bash\nnpm install\n```\n")
	b.WriteString("\n## Environment Setup\n\nCopy `.env.example` to `.env` and configure:\n\n```bash\ncp .env.example .env\n```\n")
	b.WriteString("\n## Usage\n\n### Development\n```bash\nnpm run dev\n```\n\n### Production\n```bash\nnpm start\n```\n")

	for _, s := range p.Readme {
		fmt.Fprintf(&b, "\n## %s\n\n%s\n", s.Title, s.Body)
	}

	b.WriteString("\n## License\n\nMIT\n")
	return b.String()
}

func descriptorItems(ids []string, lookup func(string) (catalog.Descriptor, bool)) []string {
	var items []string
	for _, id := range ids {
		if d, ok := lookup(id); ok {
			items = append(items, fmt.Sprintf("- **%s**: %s", d.Name, d.Description))
		}
	}
	return items
}

func flagLabel(f project.Flag) string {
	switch f {
	case project.FlagAuthentication:
		return "Authentication (JWT + bcrypt)"
	case project.FlagDatabase:
		return "Database (MongoDB via mongoose)"
	case project.FlagTesting:
		return "Testing (jest + supertest)"
	case project.FlagDocker:
		return "Docker"
	case project.FlagAPI:
		return "REST API"
	case project.FlagFrontend:
		return "Frontend client"
	default:
		return string(f)
	}
}

func renderArchitectureDoc(p Plan, cfg project.Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s Architecture\n\n", cfg.ProjectName)

	name := "Basic Express application"
	desc := "Express server with config, routes, middleware and utils modules."
	if p.Mode == project.ModeAdvanced {
		if arch, ok := catalog.Architecture(cfg.Architecture); ok {
			name, desc = arch.Name, arch.Description
		} else {
			name, desc = "Standard Express", "Single entry point exposing one root route."
		}
	}
	fmt.Fprintf(&b, "**Pattern:** %s\n\n%s\n", name, desc)

	b.WriteString("\n## Services\n\n| Service | Entry | Port |\n|---|---|---|\n")
	for _, e := range p.Entries {
		fmt.Fprintf(&b, "| %s | `%s` | %d |\n", e.Service, e.Path, e.Port)
	}

	if items := descriptorItems(cfg.Methodologies, catalog.Methodology); len(items) > 0 {
		b.WriteString("\n## Methodologies\n\n" + strings.Join(items, "\n") + "\n")
	}
	if items := descriptorItems(cfg.BestPractices, catalog.BestPractice); len(items) > 0 {
		b.WriteString("\n## Tooling\n\n" + strings.Join(items, "\n") + "\n")
	}
	return b.String()
}
