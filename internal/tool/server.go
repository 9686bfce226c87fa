package tool

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	serverName    = "waterbar-email"
	serverVersion = "v2.0.0"
)

const methodCallTool = "tools/call"

// NewServer creates an MCP server exposing every catalog tool through d.
// Calls to names outside the catalog also reach d, so they get the error
// envelope instead of a protocol error.
func NewServer(d *Dispatcher) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)

	known := make(map[string]bool)
	for _, t := range Catalog() {
		known[t.Name] = true
		server.AddTool(t, func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return d.Handle(ctx, Request{
				Name:      req.Params.Name,
				Arguments: req.Params.Arguments,
			}), nil
		})
	}

	server.AddReceivingMiddleware(unknownToolMiddleware(d, known))

	return server
}

func unknownToolMiddleware(d *Dispatcher, known map[string]bool) mcp.Middleware {
	return func(next mcp.MethodHandler) mcp.MethodHandler {
		return func(ctx context.Context, method string, req mcp.Request) (mcp.Result, error) {
			if method != methodCallTool {
				return next(ctx, method, req)
			}

			call, ok := req.(*mcp.CallToolRequest)
			if !ok || call.Params == nil || known[call.Params.Name] {
				return next(ctx, method, req)
			}

			return d.Handle(ctx, Request{
				Name:      call.Params.Name,
				Arguments: call.Params.Arguments,
			}), nil
		}
	}
}
