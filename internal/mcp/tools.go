package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/socialdata-mcp/internal/tools"
)

// RegisterTools registers every tool of the dispatcher's registry on s, in
// catalog order, and returns the number registered.
func RegisterTools(s *server.MCPServer, d *tools.Dispatcher) int {
	list := d.Registry().List()
	for _, t := range list {
		s.AddTool(tools.BuildMCPTool(t), ToolHandler(d, t.Name))
	}
	return len(list)
}
