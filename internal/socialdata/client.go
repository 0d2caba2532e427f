// Package socialdata is the HTTP gateway to the SocialData REST API.
package socialdata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bobmcallan/socialdata-mcp/internal/common"
)

// maxResponseSize caps the upstream response body to prevent OOM from unexpectedly large responses.
const maxResponseSize = 50 << 20 // 50MB

// RequestOptions customises a single upstream request. The zero value is a GET.
type RequestOptions struct {
	Method string
	Header http.Header
	Body   interface{}
}

// Client issues authenticated requests against the SocialData API.
// It holds no per-call state and is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
}

// NewClient creates a client for baseURL. A zero timeout keeps the
// http.Client default.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *common.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// BaseURL returns the configured upstream base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get performs a GET request for path and returns the JSON body.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Request(ctx, path, nil)
}

// Request performs one HTTP request against path (relative to the base URL)
// and returns the JSON body exactly as received. Authorization and Accept are set first;
// headers from opts are applied afterwards and replace duplicates.
func (c *Client) Request(ctx context.Context, path string, opts *RequestOptions) (json.RawMessage, error) {
	if opts == nil {
		opts = &RequestOptions{}
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	logger := c.logger
	if id := common.CorrelationIDFromContext(ctx); id != "" {
		logger = logger.WithCorrelationId(id)
	}
	logger.Debug().Str("method", method).Str("path", path).Msg("upstream request")

	var bodyReader io.Reader
	if opts.Body != nil {
		jsonData, err := json.Marshal(opts.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, vals := range opts.Header {
		req.Header.Del(key)
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		logger.Error().Str("method", method).Str("path", path).Int64("duration_ms", duration.Milliseconds()).Str("error", err.Error()).Msg("upstream request failed")
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	logger.Debug().Int("status", resp.StatusCode).Int64("duration_ms", duration.Milliseconds()).Int("bytes", len(body)).Msg("upstream response")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return decodeJSON(body)
}

// decodeJSON checks that body is a single JSON document and hands it back
// untouched, so key order and 64-bit ids reach the caller as sent.
func decodeJSON(body []byte) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, fmt.Errorf("failed to parse response: invalid JSON (%d bytes)", len(body))
	}
	return json.RawMessage(body), nil
}
