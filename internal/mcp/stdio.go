package mcp

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/socialdata-mcp/internal/common"
)

// ServeStdio runs the newline-delimited JSON-RPC loop over in and out until
// in reaches EOF or ctx is cancelled. Nothing but protocol frames is written
// to out.
func ServeStdio(ctx context.Context, s *server.MCPServer, in io.Reader, out io.Writer, logger *common.Logger) error {
	stdio := server.NewStdioServer(s)
	stdio.SetErrorLogger(log.New(&sdkLogWriter{logger: logger}, "", 0))

	logger.Info().Str("transport", "stdio").Msg("SocialData MCP server running on stdio")

	err := stdio.Listen(ctx, in, out)
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

// sdkLogWriter routes the SDK's *log.Logger output into the structured logger.
type sdkLogWriter struct {
	logger *common.Logger
}

func (w *sdkLogWriter) Write(p []byte) (int, error) {
	w.logger.Warn().Str("source", "mcp-go").Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}
