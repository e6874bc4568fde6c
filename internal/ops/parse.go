package ops

import (
	"context"

	"github.com/ruthina1/Dev-Genie/internal/project"
	"github.com/ruthina1/Dev-Genie/internal/prompt"
)

// ParseInput contains parameters for the ParsePrompt operation.
type ParseInput struct {
	Prompt string
	Mode   string
	Form   *project.Config // optional selections that win over the prompt
	Local  bool
}

// ParseOutput contains the result of the ParsePrompt operation.
type ParseOutput struct {
	prompt.Result
	Source string `json:"source"`
}

// ParsePrompt normalizes free text into a project configuration. It never
// fails on content; only an unknown mode is rejected.
func ParsePrompt(ctx context.Context, env Env, input ParseInput) (*ParseOutput, error) {
	mode, err := project.ParseMode(input.Mode)
	if err != nil {
		return nil, err
	}
	res, source := env.parser(input.Local).Parse(ctx, input.Prompt, input.Form, mode)
	return &ParseOutput{Result: res, Source: source}, nil
}
