package handlers

import (
	"net/http"

	"github.com/bobmcallan/socialdata-mcp/internal/common"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger    *common.Logger
	toolCount int
}

// NewHealthHandler creates a new health handler reporting toolCount
// registered tools.
func NewHealthHandler(logger *common.Logger, toolCount int) *HealthHandler {
	return &HealthHandler{logger: logger, toolCount: toolCount}
}

// ServeHTTP handles GET /health.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	err := WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"tools":  h.toolCount,
	})
	if err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("failed to write health response")
	}
}
