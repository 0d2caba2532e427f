// Package common provides shared utilities for socialdata-mcp.
package common

import (
	"github.com/phuslu/log"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/arbor/models"
	"github.com/ternarybob/arbor/writers"
)

const logTimeFormat = "2006-01-02T15:04:05Z07:00"

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// Logger wraps arbor.ILogger to provide a consistent interface
type Logger struct {
	arbor.ILogger
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error)           { return len(p), nil }
func (w discardWriter) WithLevel(_ log.Level) writers.IWriter { return w }
func (discardWriter) GetFilePath() string                   { return "" }
func (discardWriter) Close() error                          { return nil }

// NewLoggerFromConfig builds the process logger. "console" writes to stderr,
// never stdout, which carries the stdio transport. Outputs that name no
// known writer, such as ["none"], give a logger that writes nothing.
func NewLoggerFromConfig(cfg LoggingConfig) *Logger {
	level := cfg.Level
	if level == "" {
		level = "info"
	}

	outputs := cfg.Outputs
	if len(outputs) == 0 {
		outputs = []string{"console"}
	}

	var ws []writers.IWriter
	for _, out := range outputs {
		switch out {
		case "console":
			ws = append(ws, writers.ConsoleWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeConsole,
				TimeFormat: logTimeFormat,
			}))
		case "file":
			filePath := cfg.FilePath
			if filePath == "" {
				filePath = "logs/socialdata-mcp.log"
			}
			maxSize := int64(cfg.MaxSizeMB) * 1024 * 1024
			if maxSize <= 0 {
				maxSize = 500 * 1024
			}
			maxBackups := cfg.MaxBackups
			if maxBackups <= 0 {
				maxBackups = 20
			}
			ws = append(ws, writers.FileWriter(models.WriterConfiguration{
				Type:       models.LogWriterTypeFile,
				FileName:   filePath,
				MaxSize:    maxSize,
				MaxBackups: maxBackups,
				TimeFormat: logTimeFormat,
			}))
		}
	}

	return NewLogger(level, ws...)
}

// NewLogger returns a logger that writes only to ws. arbor falls back to its
// global writer registry when a logger has no writers of its own, so an
// empty ws is replaced by a writer that drops everything.
func NewLogger(level string, ws ...writers.IWriter) *Logger {
	if len(ws) == 0 {
		ws = []writers.IWriter{discardWriter{}}
	}
	return &Logger{ILogger: arbor.NewLogger().WithWriters(ws).WithLevelFromString(level)}
}

// WithCorrelationId returns a new Logger with a correlation ID set.
func (l *Logger) WithCorrelationId(id string) *Logger {
	return &Logger{ILogger: l.ILogger.WithCorrelationId(id)}
}
