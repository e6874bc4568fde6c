package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// decode round-trips a tool call's argument map through JSON into one of
// the request types, so a project_name sent as a number fails here rather
// than deep inside generation.
func decode[T any](req mcp.CallToolRequest) (T, error) {
	var args T
	raw, err := json.Marshal(req.GetArguments())
	if err != nil {
		return args, fmt.Errorf("encode tool arguments: %w", err)
	}
	if err := json.Unmarshal(raw, &args); err != nil {
		return args, fmt.Errorf("decode tool arguments: %w", err)
	}
	return args, nil
}
