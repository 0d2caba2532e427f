package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const wiremockImage = "wiremock/wiremock:3.9.1"

// UpstreamEnv runs WireMock as a stand-in for the SocialData API. The
// adapter's Go code is exercised directly in the test process.
type UpstreamEnv struct {
	t          *testing.T
	wiremock   testcontainers.Container
	ctx        context.Context
	cancel     context.CancelFunc
	baseURL    string
	resultsDir string
}

// NewUpstreamEnv starts WireMock and waits for its admin API.
func NewUpstreamEnv(t *testing.T) *UpstreamEnv {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)

	datetime := time.Now().Format("20060102-150405")
	resultsDir := filepath.Join(findProjectRoot(), "tests", "logs", datetime+"-"+t.Name())
	os.MkdirAll(resultsDir, 0755)

	container, err := testcontainers.Run(ctx, wiremockImage,
		testcontainers.WithExposedPorts("8080/tcp"),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/__admin/mappings").
				WithPort("8080/tcp").
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		cancel()
		t.Fatalf("failed to start wiremock: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx)
		cancel()
		t.Fatalf("failed to get wiremock host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, "8080/tcp")
	if err != nil {
		container.Terminate(ctx)
		cancel()
		t.Fatalf("failed to get wiremock port: %v", err)
	}

	baseURL := fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
	t.Logf("Upstream environment ready: %s", baseURL)

	return &UpstreamEnv{
		t:          t,
		wiremock:   container,
		ctx:        ctx,
		cancel:     cancel,
		baseURL:    baseURL,
		resultsDir: resultsDir,
	}
}

// BaseURL returns the URL the adapter should use as its upstream.
func (e *UpstreamEnv) BaseURL() string {
	return e.baseURL
}

// Stub registers a WireMock stub mapping.
func (e *UpstreamEnv) Stub(mapping map[string]interface{}) {
	e.t.Helper()
	resp, err := e.admin(http.MethodPost, "/__admin/mappings", mapping)
	if err != nil {
		e.t.Fatalf("failed to register stub: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		e.t.Fatalf("register stub returned %d: %s", resp.StatusCode, readBody(e.t, resp.Body))
	}
}

// RequestCount returns how many requests WireMock has received.
func (e *UpstreamEnv) RequestCount() int {
	e.t.Helper()
	resp, err := e.admin(http.MethodPost, "/__admin/requests/count", map[string]interface{}{
		"method":     "ANY",
		"urlPattern": ".*",
	})
	if err != nil {
		e.t.Fatalf("failed to count requests: %v", err)
	}
	defer resp.Body.Close()

	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(readBody(e.t, resp.Body), &body); err != nil {
		e.t.Fatalf("invalid count response: %v", err)
	}
	return body.Count
}

// Cleanup tears down the container.
func (e *UpstreamEnv) Cleanup() {
	if e == nil {
		return
	}

	cleanupCtx, cleanupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cleanupCancel()

	e.collectLogs(cleanupCtx)

	if e.wiremock != nil {
		e.wiremock.Terminate(cleanupCtx)
	}
	if e.cancel != nil {
		e.cancel()
	}
}

// SaveResult saves test output to the results directory.
func (e *UpstreamEnv) SaveResult(name string, data []byte) {
	os.WriteFile(filepath.Join(e.resultsDir, name), data, 0644)
}

func (e *UpstreamEnv) admin(method, path string, body interface{}) (*http.Response, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(e.ctx, method, e.baseURL+path, strings.NewReader(string(bodyBytes)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return http.DefaultClient.Do(req)
}

func (e *UpstreamEnv) collectLogs(ctx context.Context) {
	if e.wiremock == nil {
		return
	}
	reader, err := e.wiremock.Logs(ctx)
	if err != nil {
		return
	}
	defer reader.Close()
	logs, _ := io.ReadAll(reader)
	os.WriteFile(filepath.Join(e.resultsDir, "wiremock.log"), logs, 0644)
}

// readBody reads and returns the response body.
func readBody(t *testing.T, body io.ReadCloser) []byte {
	t.Helper()
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return data
}

func findProjectRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}
