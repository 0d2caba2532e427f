// Package tools holds the SocialData tool table and the dispatcher that turns
// a tool call into one upstream request and a result envelope.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/bobmcallan/socialdata-mcp/internal/common"
	"github.com/bobmcallan/socialdata-mcp/internal/socialdata"
)

// Gateway issues one upstream request and returns the JSON body as received.
type Gateway interface {
	Request(ctx context.Context, path string, opts *socialdata.RequestOptions) (json.RawMessage, error)
}

// Dispatcher evaluates tool calls against a Registry. It keeps no state
// between calls and is safe for concurrent use.
type Dispatcher struct {
	registry *Registry
	gateway  Gateway
	logger   *common.Logger
}

// NewDispatcher creates a dispatcher over registry that fetches through gateway.
func NewDispatcher(registry *Registry, gateway Gateway, logger *common.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		gateway:  gateway,
		logger:   logger,
	}
}

// Registry returns the registry the dispatcher resolves names against.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Resolve validates a call and computes its upstream endpoint without
// contacting the upstream.
func (d *Dispatcher) Resolve(name string, arguments map[string]interface{}) (Tool, Endpoint, error) {
	tool, ok := d.registry.Lookup(name)
	if !ok {
		return Tool{}, Endpoint{}, &UnknownToolError{Name: name}
	}
	if arguments == nil {
		return Tool{}, Endpoint{}, errArgumentsRequired
	}

	args, err := bindArgs(tool, arguments)
	if err != nil {
		return Tool{}, Endpoint{}, err
	}

	ep := tool.Endpoint(args)
	for _, p := range tool.Params {
		if !p.Query || !args.Has(p.Name) {
			continue
		}
		if ep.Query == nil {
			ep.Query = url.Values{}
		}
		ep.Query.Set(p.Name, queryValue(p, args))
	}
	return tool, ep, nil
}

// Call runs one tool call end to end. Every failure is reported as an error
// envelope whose text starts with "Error: "; Call never returns nil.
// The call logs under the correlation id carried by ctx, or a fresh one.
func (d *Dispatcher) Call(ctx context.Context, name string, arguments map[string]interface{}) *mcp.CallToolResult {
	correlationID := common.CorrelationIDFromContext(ctx)
	if correlationID == "" {
		correlationID = uuid.New().String()
		ctx = common.WithCorrelationID(ctx, correlationID)
	}
	logger := d.logger.WithCorrelationId(correlationID)
	start := time.Now()

	text, err := d.call(ctx, name, arguments)
	if err != nil {
		logger.Warn().
			Str("tool", name).
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Str("error", err.Error()).
			Msg("tool call failed")
		return errorResult("Error: " + err.Error())
	}

	logger.Info().
		Str("tool", name).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Int("bytes", len(text)).
		Msg("tool call complete")
	return textResult(text)
}

func (d *Dispatcher) call(ctx context.Context, name string, arguments map[string]interface{}) (string, error) {
	tool, ep, err := d.Resolve(name, arguments)
	if err != nil {
		return "", err
	}

	body, err := d.gateway.Request(ctx, ep.String(), nil)
	if err != nil {
		return "", err
	}

	if tool.Reshape != nil {
		if body, err = tool.Reshape(body); err != nil {
			return "", err
		}
	}

	return encodeIndented(body)
}

func queryValue(p Param, args Args) string {
	if p.Kind == KindBoolean {
		return fmt.Sprint(args.Bool(p.Name))
	}
	return args.String(p.Name)
}

// encodeIndented re-indents body with two spaces. Key order, number text
// and string escapes are left as the upstream wrote them.
func encodeIndented(body json.RawMessage) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", "  "); err != nil {
		return "", fmt.Errorf("failed to encode response: %w", err)
	}
	return buf.String(), nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
