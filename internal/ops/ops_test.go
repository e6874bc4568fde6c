package ops

import (
	"testing"
	"time"

	"github.com/ruthina1/Dev-Genie/internal/config"
	"github.com/ruthina1/Dev-Genie/internal/db"
	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/generator"
	"github.com/ruthina1/Dev-Genie/internal/project"
	"github.com/ruthina1/Dev-Genie/internal/prompt"
)

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// newTestEnv returns a local-only environment backed by a fresh database.
func newTestEnv(t *testing.T) Env {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init failed: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	cfg := config.DefaultConfig()
	cfg.DisableRemote = true
	return Env{
		DB:        database,
		Config:    cfg,
		Generator: generator.Local{},
		Now:       func() time.Time { return fixedNow },
	}
}

func localParse(raw string, form *project.Config, mode project.Mode) project.Config {
	return prompt.Normalize(raw, form, mode).Config
}

func TestResolve_FormOnly(t *testing.T) {
	mode, cfg, err := resolve(Request{
		Form: project.Config{ProjectName: "Shop", Description: "a shop"},
	}, localParse)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if mode != project.ModeBasic {
		t.Errorf("mode = %q, want basic", mode)
	}
	if cfg.ProjectName != "Shop" {
		t.Errorf("ProjectName = %q, want Shop", cfg.ProjectName)
	}
}

func TestResolve_PromptWithFormPrecedence(t *testing.T) {
	_, cfg, err := resolve(Request{
		Mode:   "advanced",
		Prompt: "an express api called orders with mongodb",
		Form: project.Config{
			ProjectName:  "billing",
			Architecture: "clean",
		},
	}, localParse)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.ProjectName != "billing" {
		t.Errorf("ProjectName = %q, want form value billing", cfg.ProjectName)
	}
	if !cfg.Has(project.FlagDatabase) {
		t.Error("database flag not inferred from prompt")
	}
	if cfg.Architecture != "clean" {
		t.Errorf("Architecture = %q, want clean", cfg.Architecture)
	}
}

func TestResolve_Template(t *testing.T) {
	_, cfg, err := resolve(Request{
		TemplateID: "mern-auth",
		Form:       project.Config{ProjectName: "my-auth"},
	}, localParse)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if cfg.TemplateID != "mern-auth" {
		t.Errorf("TemplateID = %q, want mern-auth", cfg.TemplateID)
	}
	if cfg.ProjectName != "my-auth" {
		t.Errorf("ProjectName = %q, want my-auth", cfg.ProjectName)
	}
	if !cfg.Has(project.FlagAuthentication) {
		t.Error("template authentication flag lost")
	}
}

func TestResolve_Errors(t *testing.T) {
	valid := project.Config{ProjectName: "x", Description: "y"}
	tests := []struct {
		name string
		req  Request
		code errors.ErrorCode
	}{
		{"unknown mode", Request{Mode: "expert", Form: valid}, errors.ErrInvalidRequest},
		{"missing name", Request{Form: project.Config{Description: "y"}}, errors.ErrInvalidRequest},
		{"unknown template", Request{TemplateID: "nope", Form: valid}, errors.ErrNotFound},
		{"unknown architecture", Request{Mode: "advanced", Form: project.Config{
			ProjectName: "x", Description: "y", Architecture: "event-sourced",
		}}, errors.ErrInvalidRequest},
		{"unknown methodology", Request{Mode: "advanced", Form: project.Config{
			ProjectName: "x", Description: "y", Methodologies: []string{"waterfall"},
		}}, errors.ErrInvalidRequest},
		{"unknown best practice", Request{Mode: "advanced", Form: project.Config{
			ProjectName: "x", Description: "y", BestPractices: []string{"lint-staged"},
		}}, errors.ErrInvalidRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := resolve(tc.req, localParse)
			if !errors.Is(err, tc.code) {
				t.Errorf("error = %v, want %s", err, tc.code)
			}
		})
	}
}

func TestResolve_BasicIgnoresUnknownArchitecture(t *testing.T) {
	_, _, err := resolve(Request{Form: project.Config{
		ProjectName: "x", Description: "y", Architecture: "event-sourced",
	}}, localParse)
	if err != nil {
		t.Errorf("basic mode should not validate advanced ids: %v", err)
	}
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		limit, offset         int
		wantLimit, wantOffset int
	}{
		{0, 0, DefaultListLimit, 0},
		{500, -3, MaxListLimit, 0},
		{5, 10, 5, 10},
	}
	for _, tc := range tests {
		l, o := clampPage(tc.limit, tc.offset)
		if l != tc.wantLimit || o != tc.wantOffset {
			t.Errorf("clampPage(%d, %d) = (%d, %d), want (%d, %d)", tc.limit, tc.offset, l, o, tc.wantLimit, tc.wantOffset)
		}
	}
}

func TestNewEnv(t *testing.T) {
	cfg := config.DefaultConfig()
	env, err := NewEnv(nil, cfg, nil)
	if err != nil {
		t.Fatalf("NewEnv failed: %v", err)
	}
	if env.Client == nil {
		t.Error("remote client not configured")
	}
	if env.Publisher != nil {
		t.Error("publisher configured without endpoint")
	}

	cfg.DisableRemote = true
	env, err = NewEnv(nil, cfg, nil)
	if err != nil {
		t.Fatalf("NewEnv failed: %v", err)
	}
	if env.Client != nil {
		t.Error("remote client configured while disabled")
	}
}
