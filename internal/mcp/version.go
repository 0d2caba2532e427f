package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/socialdata-mcp/internal/common"
	"github.com/bobmcallan/socialdata-mcp/internal/tools"
)

// NewServer creates the MCP server advertising name and the build version,
// with every dispatcher tool registered.
func NewServer(name string, d *tools.Dispatcher, logger *common.Logger) *server.MCPServer {
	s := server.NewMCPServer(
		name,
		common.GetVersion(),
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	count := RegisterTools(s, d)

	logger.Info().
		Str("name", name).
		Str("version", common.GetVersion()).
		Int("tools", count).
		Msg("MCP server initialized")

	return s
}
