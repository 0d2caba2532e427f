package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/socialdata-mcp/internal/tools"
)

// ToolHandler returns the mcp-go handler for one registered tool. Failures
// are carried in the result envelope, never as a protocol error.
func ToolHandler(d *tools.Dispatcher, name string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return d.Call(ctx, name, request.GetArguments()), nil
	}
}
