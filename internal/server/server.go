// Package server hosts the MCP endpoint over HTTP for the -http transport.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bobmcallan/socialdata-mcp/internal/common"
	"github.com/bobmcallan/socialdata-mcp/internal/config"
)

// Server manages the HTTP server and routes.
type Server struct {
	config    *config.Config
	mcp       http.Handler
	toolCount int
	router    chi.Router
	server    *http.Server
	logger    *common.Logger
}

// New creates a new HTTP server serving mcpHandler at /mcp. toolCount is
// reported by /health.
func New(cfg *config.Config, mcpHandler http.Handler, toolCount int, logger *common.Logger) *Server {
	s := &Server{
		config:    cfg,
		mcp:       mcpHandler,
		toolCount: toolCount,
		logger:    logger,
	}

	s.router = s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return s
}

// Start starts the HTTP server. It returns nil after Shutdown.
func (s *Server) Start() error {
	s.logger.Info().
		Str("address", s.server.Addr).
		Str("url", fmt.Sprintf("http://%s/mcp", s.server.Addr)).
		Msg("HTTP server starting")

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped")
	return nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
