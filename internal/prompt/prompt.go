// Package prompt turns a free-text project description plus optional form
// selections into a canonical project configuration. Matching is literal
// substring search; it makes no attempt at language understanding.
package prompt

import (
	"regexp"
	"strings"

	"github.com/ruthina1/Dev-Genie/internal/project"
)

// Default project names used when the prompt names nothing.
const (
	DefaultBasicName    = "my-project"
	DefaultAdvancedName = "my-advanced-project"
)

var namePattern = regexp.MustCompile(`(?i)(?:called|named)\s+["']?([^"'\s,]+)["']?`)

// rule fires when any of its keywords occurs in the lowercased prompt.
// Empty single-valued fields leave the current value alone.
type rule struct {
	keywords  []string
	framework string
	language  string
	tags      []string
	flags     []project.Flag
}

// rules are applied in order; later framework/language matches overwrite
// earlier ones while tags and flags accumulate.
var rules = []rule{
	{keywords: []string{"node", "express"}, framework: "Node.js + Express", language: "javascript", tags: []string{"REST API", "Express Server"}},
	{keywords: []string{"react"}, framework: "React", language: "javascript", tags: []string{"React Components", "Webpack"}},
	{keywords: []string{"python", "flask"}, framework: "Python + Flask", language: "python", tags: []string{"Flask API", "Python Routes"}},
	{keywords: []string{"django"}, framework: "Django", language: "python", tags: []string{"Django REST", "Admin Panel"}},
	{keywords: []string{"mongodb", "mongo"}, tags: []string{"MongoDB Database"}, flags: []project.Flag{project.FlagDatabase}},
	{keywords: []string{"postgres", "postgresql"}, tags: []string{"PostgreSQL Database"}},
	{keywords: []string{"database"}, flags: []project.Flag{project.FlagDatabase}},
	{keywords: []string{"auth"}, tags: []string{"Authentication"}, flags: []project.Flag{project.FlagAuthentication}},
	{keywords: []string{"test"}, tags: []string{"Testing"}, flags: []project.Flag{project.FlagTesting}},
	{keywords: []string{"docker"}, tags: []string{"Docker"}, flags: []project.Flag{project.FlagDocker}},
}

// Result is a normalized configuration plus what the keyword matcher inferred.
type Result struct {
	Config    project.Config `json:"config"`
	Framework string         `json:"framework"`
	Language  string         `json:"language"`
	Tags      []string       `json:"tags"`
}

// ExtractName returns the "called X" / "named X" project name, if any.
func ExtractName(raw string) (string, bool) {
	m := namePattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// DefaultName is the project name used when neither form nor prompt supplies one.
func DefaultName(mode project.Mode) string {
	if mode == project.ModeAdvanced {
		return DefaultAdvancedName
	}
	return DefaultBasicName
}

// Normalize derives a configuration from raw and overlays the structured form
// selections, which take precedence over anything inferred from text. It never
// fails: an empty prompt yields the default name and an empty feature summary.
// form may be nil.
func Normalize(raw string, form *project.Config, mode project.Mode) Result {
	inferred := infer(raw)

	cfg := project.Config{
		ProjectName: DefaultName(mode),
		Description: strings.TrimSpace(raw),
		Features:    strings.Join(inferred.Tags, ", "),
		Language:    inferred.Language,
		Framework:   inferred.Framework,
		Flags:       inferred.flags,
	}
	if name, ok := ExtractName(raw); ok {
		cfg.ProjectName = name
	}

	if form != nil {
		cfg = overlay(cfg, *form, inferred.Tags)
	}

	inferred.Config = cfg
	return inferred.Result
}

type inference struct {
	Result
	flags map[project.Flag]bool
}

func infer(raw string) inference {
	lower := strings.ToLower(raw)
	out := inference{flags: make(map[project.Flag]bool)}

	for _, r := range rules {
		if !containsAny(lower, r.keywords) {
			continue
		}
		if r.framework != "" {
			out.Framework = r.framework
		}
		if r.language != "" {
			out.Language = r.language
		}
		for _, tag := range r.tags {
			out.Tags = appendUnique(out.Tags, tag)
		}
		for _, f := range r.flags {
			out.flags[f] = true
		}
	}
	return out
}

// overlay applies explicit form fields on top of the text-derived config.
func overlay(cfg, form project.Config, tags []string) project.Config {
	if s := strings.TrimSpace(form.ProjectName); s != "" {
		cfg.ProjectName = s
	}
	if s := strings.TrimSpace(form.Description); s != "" {
		cfg.Description = s
	}
	if s := strings.TrimSpace(form.Language); s != "" {
		cfg.Language = s
	}
	if s := strings.TrimSpace(form.Framework); s != "" {
		cfg.Framework = s
	}
	if s := strings.TrimSpace(form.Architecture); s != "" {
		cfg.Architecture = s
	}
	if s := strings.TrimSpace(form.TemplateID); s != "" {
		cfg.TemplateID = s
	}
	if len(form.Methodologies) > 0 {
		cfg.Methodologies = append([]string(nil), form.Methodologies...)
	}
	if len(form.BestPractices) > 0 {
		cfg.BestPractices = append([]string(nil), form.BestPractices...)
	}
	if len(form.AdditionalFeatures) > 0 {
		cfg.AdditionalFeatures = append([]project.Feature(nil), form.AdditionalFeatures...)
	}

	flags := make(map[project.Flag]bool, len(cfg.Flags)+len(form.Flags))
	for f, on := range cfg.Flags {
		flags[f] = on
	}
	for f, on := range form.Flags {
		flags[f] = on
	}
	cfg.Flags = flags

	if strings.TrimSpace(form.Features) != "" {
		cfg.Features = enrichSummary(form.Features, tags)
	}
	return cfg
}

// enrichSummary appends tags missing (case-insensitively) from summary.
func enrichSummary(summary string, tags []string) string {
	parts := project.Config{Features: summary}.Keywords()
	for _, tag := range tags {
		found := false
		for _, p := range parts {
			if strings.EqualFold(p, tag) {
				found = true
				break
			}
		}
		if !found {
			parts = append(parts, tag)
		}
	}
	return strings.Join(parts, ", ")
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// Apply overlays form on an already normalized result, such as one produced
// by a remote parser. form may be nil.
func Apply(res Result, form *project.Config) Result {
	if form != nil {
		res.Config = overlay(res.Config, *form, res.Tags)
	}
	return res
}
