package common

import (
	"bytes"
	"encoding/json"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"
)

func TestNewLoggerFromConfig_ReturnsNonNil(t *testing.T) {
	logger := NewLoggerFromConfig(LoggingConfig{Level: "info"})
	if logger == nil {
		t.Fatal("NewLoggerFromConfig returned nil")
	}
}

func TestNewLoggerFromConfig_FluentAPI(t *testing.T) {
	// Must not panic
	logger := NewLoggerFromConfig(LoggingConfig{Level: "error", Outputs: []string{"console"}})
	logger.Info().Str("tool", "search_tweets").Msg("test message")
	logger.Warn().Int("status", 404).Msg("warning")
	logger.Error().Err(nil).Msg("error message")
	logger.Debug().Int64("duration_ms", 12).Bool("ok", true).Msg("debug")
}

type recordingWriter struct {
	mu     sync.Mutex
	events []models.LogEvent
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	var evt models.LogEvent
	if err := json.Unmarshal(p, &evt); err != nil {
		return 0, err
	}
	w.mu.Lock()
	w.events = append(w.events, evt)
	w.mu.Unlock()
	return len(p), nil
}

func (w *recordingWriter) WithLevel(log.Level) writers.IWriter { return w }
func (w *recordingWriter) GetFilePath() string                 { return "" }
func (w *recordingWriter) Close() error                        { return nil }

func TestNewLogger_WritesOnlyToGivenWriters(t *testing.T) {
	var rec recordingWriter
	logger := NewLogger("info", &rec)
	logger.WithCorrelationId("call-1").Info().Str("tool", "get_tweet").Msg("hello")

	if len(rec.events) != 1 {
		t.Fatalf("expected one event, got %d", len(rec.events))
	}
	evt := rec.events[0]
	if evt.Message != "hello" || evt.Fields["tool"] != "get_tweet" {
		t.Errorf("unexpected event: %+v", evt)
	}
	if evt.CorrelationID != "call-1" {
		t.Errorf("expected correlation id call-1, got %q", evt.CorrelationID)
	}
}

func TestNewLogger_NoWritersDoesNotReachGlobalRegistry(t *testing.T) {
	var global recordingWriter
	arbor.RegisterWriter("socialdata-test", &global)
	defer arbor.UnregisterWriter("socialdata-test")

	silent := NewLogger("info")
	silent.Info().Str("key", "value").Msg("dropped")
	silent.Error().Msg("dropped too")

	if len(global.events) != 0 {
		t.Errorf("writerless logger reached global writers: %+v", global.events)
	}
}

func TestNewLoggerFromConfig_NoneWritesNothing(t *testing.T) {
	var global recordingWriter
	arbor.RegisterWriter("socialdata-test", &global)
	defer arbor.UnregisterWriter("socialdata-test")

	logger := NewLoggerFromConfig(LoggingConfig{Outputs: []string{"none"}})
	logger.Warn().Msg("dropped")

	if len(global.events) != 0 {
		t.Errorf("none output reached global writers: %+v", global.events)
	}
}

func TestNewLoggerFromConfig_DoesNotWriteToStdout(t *testing.T) {
	// stdout is the MCP stdio channel; a stray log line corrupts the stream.
	oldStdout := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Failed to create pipe: %v", err)
	}
	os.Stdout = w

	logger := NewLoggerFromConfig(LoggingConfig{Level: "info", Outputs: []string{"console"}})
	logger.Info().Str("tool", "test").Msg("this must not go to stdout")
	logger.Error().Msg("neither should this")
	time.Sleep(100 * time.Millisecond)

	w.Close()
	os.Stdout = oldStdout

	var buf bytes.Buffer
	buf.ReadFrom(r)
	r.Close()

	if buf.Len() > 0 {
		t.Errorf("Logger wrote %d bytes to stdout (would corrupt MCP stdio): %s", buf.Len(), buf.String())
	}
}

func TestNewLoggerFromConfig_FileOutput(t *testing.T) {
	path := t.TempDir() + "/test.log"
	logger := NewLoggerFromConfig(LoggingConfig{
		Level:    "info",
		Outputs:  []string{"file"},
		FilePath: path,
	})
	logger.Info().Msg("to file")
}

func TestWithCorrelationId_ReturnsNewLogger(t *testing.T) {
	logger := NewLogger("info")
	correlated := logger.WithCorrelationId("call-123")

	if correlated == nil {
		t.Fatal("WithCorrelationId returned nil")
	}
	if correlated == logger {
		t.Error("WithCorrelationId should return a new Logger instance, not the same one")
	}
	correlated.Info().Str("tool", "get_thread").Msg("handler start")
}
