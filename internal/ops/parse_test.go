package ops

import (
	"context"
	"testing"

	"github.com/ruthina1/Dev-Genie/internal/errors"
	"github.com/ruthina1/Dev-Genie/internal/generator"
	"github.com/ruthina1/Dev-Genie/internal/project"
)

func TestParsePrompt_Local(t *testing.T) {
	env := newTestEnv(t)
	out, err := ParsePrompt(context.Background(), env, ParseInput{
		Prompt: "a django blog called inkwell with a postgres database and auth",
	})
	if err != nil {
		t.Fatalf("ParsePrompt failed: %v", err)
	}
	if out.Source != generator.SourceLocal {
		t.Errorf("Source = %q, want local", out.Source)
	}
	if out.Config.ProjectName != "inkwell" {
		t.Errorf("ProjectName = %q, want inkwell", out.Config.ProjectName)
	}
	if out.Framework != "Django" || out.Language != "python" {
		t.Errorf("Framework/Language = %q/%q", out.Framework, out.Language)
	}
	if !out.Config.Has(project.FlagDatabase) || !out.Config.Has(project.FlagAuthentication) {
		t.Errorf("flags = %v", out.Config.Flags)
	}
}

func TestParsePrompt_EmptyPrompt(t *testing.T) {
	env := newTestEnv(t)
	out, err := ParsePrompt(context.Background(), env, ParseInput{Mode: "advanced"})
	if err != nil {
		t.Fatalf("ParsePrompt failed: %v", err)
	}
	if out.Config.ProjectName != "my-advanced-project" {
		t.Errorf("ProjectName = %q, want my-advanced-project", out.Config.ProjectName)
	}
}

func TestParsePrompt_UnknownMode(t *testing.T) {
	env := newTestEnv(t)
	if _, err := ParsePrompt(context.Background(), env, ParseInput{Mode: "turbo"}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}
