// Package project defines the canonical configuration that drives scaffolding.
package project

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/ruthina1/Dev-Genie/internal/errors"
)

// Mode selects the generation pipeline.
type Mode string

const (
	ModeBasic    Mode = "basic"
	ModeAdvanced Mode = "advanced"
)

// ParseMode parses "basic" or "advanced" (case-insensitive). Empty means basic.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "basic":
		return ModeBasic, nil
	case "advanced":
		return ModeAdvanced, nil
	default:
		return "", errors.NewInvalidRequest(fmt.Sprintf("unknown mode %q (want basic or advanced)", s))
	}
}

// Flag is a recognized boolean feature toggle.
type Flag string

const (
	FlagAuthentication Flag = "authentication"
	FlagDatabase       Flag = "database"
	FlagTesting        Flag = "testing"
	FlagDocker         Flag = "docker"
	FlagAPI            Flag = "api"
	FlagFrontend       Flag = "frontend"
)

var allFlags = []Flag{FlagAuthentication, FlagDatabase, FlagTesting, FlagDocker, FlagAPI, FlagFrontend}

// Flags returns every recognized flag in display order.
func Flags() []Flag {
	return append([]Flag(nil), allFlags...)
}

// ParseFlag maps a flag name to a Flag. Unknown names report false.
func ParseFlag(s string) (Flag, bool) {
	f := Flag(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range allFlags {
		if f == known {
			return f, true
		}
	}
	return "", false
}

// Feature is a user-described feature that may produce a stub file.
type Feature struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Config is the canonical input to scaffolding.
type Config struct {
	ProjectName        string        `json:"projectName"`
	Description        string        `json:"description"`
	Features           string        `json:"features"`
	Language           string        `json:"language,omitempty"`
	Framework          string        `json:"framework,omitempty"`
	Architecture       string        `json:"architecture,omitempty"`
	Methodologies      []string      `json:"methodologies,omitempty"`
	BestPractices      []string      `json:"bestPractices,omitempty"`
	Flags              map[Flag]bool `json:"flags,omitempty"`
	AdditionalFeatures []Feature     `json:"additionalFeatures,omitempty"`
	TemplateID         string        `json:"templateId,omitempty"`
}

// Has reports whether flag f is enabled.
func (c Config) Has(f Flag) bool {
	return c.Flags[f]
}

// HasMethodology reports whether methodology id is selected.
func (c Config) HasMethodology(id string) bool {
	return contains(c.Methodologies, id)
}

// HasBestPractice reports whether best-practice id is selected.
func (c Config) HasBestPractice(id string) bool {
	return contains(c.BestPractices, id)
}

// Keywords splits the features summary on commas, dropping empty segments.
func (c Config) Keywords() []string {
	var out []string
	for _, part := range strings.Split(c.Features, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// EnabledFlags returns the enabled flags in display order.
func (c Config) EnabledFlags() []Flag {
	var out []Flag
	for _, f := range allFlags {
		if c.Flags[f] {
			out = append(out, f)
		}
	}
	return out
}

// bestPracticeAliases maps alternate ids onto catalog ids.
var bestPracticeAliases = map[string]string{
	"git-hooks": "husky",
	"githooks":  "husky",
	"docs":      "documentation",
}

// Canonical returns a copy with trimmed strings, lowercased and deduplicated
// id sets, and only known, enabled flags. The receiver is not modified.
func (c Config) Canonical() Config {
	out := Config{
		ProjectName:  strings.TrimSpace(c.ProjectName),
		Description:  strings.TrimSpace(c.Description),
		Features:     strings.TrimSpace(c.Features),
		Language:     strings.ToLower(strings.TrimSpace(c.Language)),
		Framework:    strings.TrimSpace(c.Framework),
		Architecture: strings.ToLower(strings.TrimSpace(c.Architecture)),
		TemplateID:   strings.TrimSpace(c.TemplateID),
	}
	out.Methodologies = idSet(c.Methodologies, nil)
	out.BestPractices = idSet(c.BestPractices, bestPracticeAliases)

	for f, on := range c.Flags {
		known, ok := ParseFlag(string(f))
		if !ok || !on {
			continue
		}
		if out.Flags == nil {
			out.Flags = make(map[Flag]bool)
		}
		out.Flags[known] = true
	}

	for _, feat := range c.AdditionalFeatures {
		name := strings.TrimSpace(feat.Name)
		if name == "" {
			continue
		}
		out.AdditionalFeatures = append(out.AdditionalFeatures, Feature{
			Name:        name,
			Description: strings.TrimSpace(feat.Description),
		})
	}
	return out
}

// Validate checks the generation precondition: a project name and description.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ProjectName) == "" {
		return errors.NewInvalidRequest("project name is required")
	}
	if strings.TrimSpace(c.Description) == "" {
		return errors.NewInvalidRequest("project description is required")
	}
	if Slug(c.ProjectName) == "" {
		return errors.NewInvalidRequest("project name must contain at least one visible character")
	}
	return nil
}

var separatorRun = regexp.MustCompile(`[\s/\\]+`)

// Slug lowercases name and replaces each run of whitespace or path
// separators with a single hyphen.
func Slug(name string) string {
	return separatorRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

// ArchiveName returns the download file name for a project.
func ArchiveName(name string) string {
	return Slug(name) + ".zip"
}

func idSet(ids []string, aliases map[string]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, id := range ids {
		id = strings.ToLower(strings.TrimSpace(id))
		if alias, ok := aliases[id]; ok {
			id = alias
		}
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}
