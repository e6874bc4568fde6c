package ops

import (
	"context"

	"github.com/ruthina1/Dev-Genie/internal/generator"
)

// HealthOutput reports whether remote delegation is available.
type HealthOutput struct {
	APIBaseURL    string `json:"api_base_url,omitempty"`
	RemoteEnabled bool   `json:"remote_enabled"`
	RemoteHealthy bool   `json:"remote_healthy"`
	Publish       bool   `json:"publish_enabled"`
}

// Health probes the remote API. A disabled or unreachable remote is not an
// error: generation still works locally.
func Health(ctx context.Context, env Env) *HealthOutput {
	out := &HealthOutput{
		RemoteEnabled: env.Client != nil,
		Publish:       env.Publisher != nil,
	}
	if env.Client != nil {
		out.APIBaseURL = env.Client.BaseURL()
	}
	out.RemoteHealthy = <-generator.HealthAsync(ctx, env.Client)
	return out
}
