package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/bobmcallan/socialdata-mcp/internal/common"
	"github.com/bobmcallan/socialdata-mcp/internal/config"
	"github.com/bobmcallan/socialdata-mcp/internal/mcp"
	"github.com/bobmcallan/socialdata-mcp/internal/server"
	"github.com/bobmcallan/socialdata-mcp/internal/socialdata"
	"github.com/bobmcallan/socialdata-mcp/internal/tools"
)

// configPaths is a custom flag type that allows multiple -config flags.
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	configFiles configPaths
	useHTTP     = flag.Bool("http", false, "Serve streamable HTTP instead of stdio")
	serverPort  = flag.Int("port", 0, "HTTP port (overrides config)")
	serverPortP = flag.Int("p", 0, "HTTP port (shorthand)")
	serverHost  = flag.String("host", "", "HTTP host (overrides config)")
	showVersion = flag.Bool("version", false, "Print version information")
)

func init() {
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func main() {
	flag.Parse()

	common.LoadVersionFromFile()

	if *showVersion {
		fmt.Printf("socialdata-mcp version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	// .env is optional; variables already set in the environment win.
	_ = godotenv.Load()

	finalPort := *serverPort
	if *serverPortP != 0 {
		finalPort = *serverPortP
	}

	if len(configFiles) == 0 {
		for _, path := range configSearchPaths() {
			if _, err := os.Stat(path); err == nil {
				configFiles = append(configFiles, path)
				break
			}
		}
	}

	cfg, err := config.LoadFromFiles(configFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	config.ApplyFlagOverrides(cfg, finalPort, *serverHost)

	if err := cfg.Validate(); err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			for _, issue := range cfgErr.Issues {
				fmt.Fprintln(os.Stderr, issue)
			}
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)

	logger.Info().
		Str("base_url", cfg.Upstream.BaseURL).
		Str("timeout", cfg.Upstream.GetTimeout().String()).
		Str("config_files", fmt.Sprintf("%v", configFiles)).
		Msg("configuration loaded")

	client := socialdata.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.APIKey, cfg.Upstream.GetTimeout(), logger)
	dispatcher := tools.NewDispatcher(tools.DefaultRegistry(), client, logger)
	mcpServer := mcp.NewServer(cfg.Server.Name, dispatcher, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !*useHTTP {
		if err := mcp.ServeStdio(ctx, mcpServer, os.Stdin, os.Stdout, logger); err != nil {
			logger.Error().Str("error", err.Error()).Msg("stdio server failed")
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	srv := server.New(cfg, mcp.NewHandler(mcpServer, logger), dispatcher.Registry().Len(), logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	select {
	case err := <-errChan:
		if err != nil {
			logger.Error().Str("error", err.Error()).Msg("server failed to start")
			os.Exit(1)
		}
		return
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Str("error", err.Error()).Msg("server shutdown failed")
	}

	logger.Info().Msg("server stopped")
}

// configSearchPaths returns TOML files to auto-discover (first match wins).
// Binary-relative paths are tried first, with CWD fallbacks after.
func configSearchPaths() []string {
	candidates := []string{
		"socialdata-mcp.toml",
		"config/socialdata-mcp.toml",
	}

	exe, err := os.Executable()
	if err != nil {
		return candidates
	}
	binDir := filepath.Dir(exe)

	paths := []string{
		filepath.Join(binDir, "socialdata-mcp.toml"),
		filepath.Join(binDir, "config", "socialdata-mcp.toml"),
	}
	paths = append(paths, candidates...)

	seen := make(map[string]bool, len(paths))
	deduped := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		if seen[abs] {
			continue
		}
		seen[abs] = true
		deduped = append(deduped, p)
	}
	return deduped
}
