package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/bobmcallan/socialdata-mcp/internal/common"
)

// errorResponse is the body of every JSON error outside the MCP endpoint.
// CorrelationID matches the X-Correlation-ID header and the request's log lines.
type errorResponse struct {
	Status        string `json:"status"`
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

// WriteJSON writes data as JSON with statusCode.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(data)
}

// WriteError writes an error body tagged with the correlation id of r.
func WriteError(w http.ResponseWriter, r *http.Request, statusCode int, message string) error {
	return WriteJSON(w, statusCode, errorResponse{
		Status:        "error",
		Error:         message,
		CorrelationID: common.CorrelationIDFromContext(r.Context()),
	})
}
