package generator

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ruthina1/Dev-Genie/internal/logging"
	"github.com/ruthina1/Dev-Genie/internal/project"
	"github.com/ruthina1/Dev-Genie/internal/prompt"
	"github.com/ruthina1/Dev-Genie/internal/remote"
)

// PromptParser normalizes prompts through the hosted API, falling back to the
// local keyword matcher.
type PromptParser struct {
	Client *remote.Client
	Logger *slog.Logger
}

// Parse returns the normalized result and the source that produced it.
func (p PromptParser) Parse(ctx context.Context, raw string, form *project.Config, mode project.Mode) (prompt.Result, string) {
	if p.Client != nil && strings.TrimSpace(raw) != "" {
		resp, err := p.Client.ParsePrompt(ctx, raw, mode)
		if err == nil {
			res := prompt.Result{
				Config:    resp.Config(),
				Framework: resp.Framework,
				Language:  resp.Language,
				Tags:      resp.Tags,
			}
			if strings.TrimSpace(res.Config.ProjectName) == "" {
				res.Config.ProjectName = prompt.DefaultName(mode)
			}
			return prompt.Apply(res, form), SourceRemote
		}
		logger := p.Logger
		if logger == nil {
			logger = logging.Discard()
		}
		logger.Warn("remote prompt parsing failed, using local matcher", "error", err)
	}
	return prompt.Normalize(raw, form, mode), SourceLocal
}

// HealthAsync probes the API without blocking the caller. The channel
// receives exactly one value and is then closed; a nil client reports false.
func HealthAsync(ctx context.Context, client *remote.Client) <-chan bool {
	out := make(chan bool, 1)
	go func() {
		defer close(out)
		if client == nil {
			out <- false
			return
		}
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		h, err := client.Health(ctx)
		out <- err == nil && h.Healthy()
	}()
	return out
}
