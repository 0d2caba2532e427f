package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/bobmcallan/socialdata-mcp/internal/handlers"
)

// setupRoutes configures the router and middleware chain.
func (s *Server) setupRoutes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(s.correlationIDMiddleware)
	r.Use(s.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(s.corsMiddleware())
	r.Use(s.maxBodySizeMiddleware(1 << 20))
	r.Use(middleware.GetHead)

	r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(s.logger, s.toolCount))
	r.Method(http.MethodGet, "/version", handlers.NewVersionHandler(s.logger, s.config.Server.Name))

	// MCP endpoint (streamable HTTP: POST for requests, GET for the event stream, DELETE to end a session)
	if s.mcp != nil {
		r.Handle("/mcp", s.mcp)
	}

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)

	return r
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, r, http.StatusNotFound, "The requested endpoint does not exist")
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	handlers.WriteError(w, r, http.StatusMethodNotAllowed, "Method not allowed")
}
