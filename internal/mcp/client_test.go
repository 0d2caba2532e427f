package mcp

import (
	"testing"

	"github.com/mark3labs/mcp-go/client"
	mcpgo "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// newInProcessClient starts and initializes an in-process client against s.
func newInProcessClient(t *testing.T, s *mcpserver.MCPServer) (*client.Client, error) {
	t.Helper()

	c, err := client.NewInProcessClient(s)
	if err != nil {
		return nil, err
	}
	t.Cleanup(func() { c.Close() })

	if err := c.Start(t.Context()); err != nil {
		return nil, err
	}

	initReq := mcpgo.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcpgo.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcpgo.Implementation{Name: "socialdata-mcp-test", Version: "1.0.0"}
	if _, err := c.Initialize(t.Context(), initReq); err != nil {
		return nil, err
	}
	return c, nil
}
