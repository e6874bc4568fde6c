package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ruthina1/Dev-Genie/internal/project"
)

//go:embed templates.yaml
var templatesYAML []byte

// Template is a gallery entry that pre-fills a project configuration.
type Template struct {
	ID           string   `yaml:"id" json:"id"`
	Name         string   `yaml:"name" json:"name"`
	Description  string   `yaml:"description" json:"description"`
	Language     string   `yaml:"language" json:"language"`
	Framework    string   `yaml:"framework" json:"framework"`
	Architecture string   `yaml:"architecture" json:"architecture"`
	Features     []string `yaml:"features" json:"features"`
	Prompt       string   `yaml:"prompt" json:"prompt"`
	Downloads    int      `yaml:"downloads" json:"downloads"`
}

type templateFile struct {
	Templates []Template `yaml:"templates"`
}

// Filter values accepted by FilterTemplates besides a language name.
const (
	FilterAll       = "all"
	FilterFullStack = "fullstack"
	FilterAPI       = "api"
)

var (
	templatesOnce sync.Once
	templatesList []Template
	templatesErr  error
)

// ParseTemplates decodes a gallery document.
func ParseTemplates(data []byte) ([]Template, error) {
	var doc templateFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	seen := make(map[string]bool)
	for i, tpl := range doc.Templates {
		if tpl.ID == "" || tpl.Name == "" {
			return nil, fmt.Errorf("parse templates: entry %d is missing id or name", i)
		}
		if seen[tpl.ID] {
			return nil, fmt.Errorf("parse templates: duplicate id %q", tpl.ID)
		}
		seen[tpl.ID] = true
	}
	return doc.Templates, nil
}

// Templates returns the embedded gallery. The document is decoded once.
func Templates() ([]Template, error) {
	templatesOnce.Do(func() {
		templatesList, templatesErr = ParseTemplates(templatesYAML)
	})
	if templatesErr != nil {
		return nil, templatesErr
	}
	return cloneTemplates(templatesList), nil
}

// LookupTemplate finds a gallery entry by id.
func LookupTemplate(id string) (Template, bool, error) {
	all, err := Templates()
	if err != nil {
		return Template{}, false, err
	}
	for _, tpl := range all {
		if tpl.ID == id {
			return tpl, true, nil
		}
	}
	return Template{}, false, nil
}

// FilterTemplates keeps templates whose name or description contains query
// (case-insensitive) and that match filter: "all", a language name,
// "fullstack" (Full-Stack architecture) or "api" (API feature).
func FilterTemplates(list []Template, query, filter string) []Template {
	query = strings.ToLower(strings.TrimSpace(query))
	filter = strings.ToLower(strings.TrimSpace(filter))

	var out []Template
	for _, tpl := range list {
		matchesSearch := query == "" ||
			strings.Contains(strings.ToLower(tpl.Name), query) ||
			strings.Contains(strings.ToLower(tpl.Description), query)

		matchesFilter := filter == "" || filter == FilterAll ||
			strings.ToLower(tpl.Language) == filter ||
			(filter == FilterFullStack && tpl.Architecture == "Full-Stack") ||
			(filter == FilterAPI && tpl.HasFeature("API"))

		if matchesSearch && matchesFilter {
			out = append(out, tpl)
		}
	}
	return out
}

// HasFeature reports whether the template lists label (case-insensitive).
func (t Template) HasFeature(label string) bool {
	for _, f := range t.Features {
		if strings.EqualFold(f, label) {
			return true
		}
	}
	return false
}

// Config maps the template onto a project configuration. The architecture
// is kept only when it names a catalog architecture.
func (t Template) Config() project.Config {
	cfg := project.Config{
		ProjectName: project.Slug(t.Name),
		Description: t.Description,
		Features:    strings.Join(t.Features, ", "),
		Language:    strings.ToLower(t.Language),
		Framework:   t.Framework,
		TemplateID:  t.ID,
		Flags:       make(map[project.Flag]bool),
	}

	arch := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(t.Architecture)), " ", "-")
	if _, ok := Architecture(arch); ok {
		cfg.Architecture = arch
	}

	for _, label := range t.Features {
		if flag, ok := project.ParseFlag(label); ok {
			cfg.Flags[flag] = true
		}
	}
	return cfg
}

func cloneTemplates(list []Template) []Template {
	out := make([]Template, len(list))
	for i, tpl := range list {
		tpl.Features = append([]string(nil), tpl.Features...)
		out[i] = tpl
	}
	return out
}
