package bookmaking

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// successResult wraps a payload in the uniform envelope: a single text
// content block holding the JSON-encoded payload.
func successResult(payload any) *mcp.CallToolResult {
	data, err := json.Marshal(payload)
	if err != nil {
		return failureResult(fmt.Errorf("encode payload: %w", err))
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}
}

// failureResult wraps an error in the uniform envelope with IsError set.
func failureResult(err error) *mcp.CallToolResult {
	data, _ := json.Marshal(map[string]string{"error": err.Error()})
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		IsError: true,
	}
}
