package tool

import (
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type errorBody struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Tool    string `json:"tool"`
}

func successResult(name string, body any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		return errorResult(name, err)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}
}

func errorResult(name string, err error) *mcp.CallToolResult {
	raw, _ := json.MarshalIndent(errorBody{
		Success: false,
		Error:   err.Error(),
		Tool:    name,
	}, "", "  ")

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
		IsError: true,
	}
}
