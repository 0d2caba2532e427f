package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/bobmcallan/socialdata-mcp/internal/common"
)

// Config represents the application configuration.
type Config struct {
	Server   ServerConfig         `toml:"server"`
	Upstream UpstreamConfig       `toml:"upstream"`
	Logging  common.LoggingConfig `toml:"logging"`
}

// ServerConfig contains MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// UpstreamConfig contains SocialData API settings.
type UpstreamConfig struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	Timeout string `toml:"timeout"`
}

// GetTimeout parses the configured timeout. An empty or invalid value yields
// zero, which leaves the http.Client default (no timeout) in place.
func (c *UpstreamConfig) GetTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// ConfigurationError reports mandatory settings that are missing or invalid.
// It is fatal at start-up.
type ConfigurationError struct {
	Issues []string
}

func (e *ConfigurationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Issues, "; ")
}

// LoadFromFiles loads configuration from multiple files with priority:
// defaults -> file1 -> file2 -> ... -> env.
// Missing files are skipped so a bare environment is enough to run.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies SOCIALDATA_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	if key := os.Getenv("SOCIALDATA_API_KEY"); key != "" {
		config.Upstream.APIKey = key
	}
	if baseURL := os.Getenv("SOCIALDATA_BASE_URL"); baseURL != "" {
		config.Upstream.BaseURL = baseURL
	}
	if timeout := os.Getenv("SOCIALDATA_TIMEOUT"); timeout != "" {
		config.Upstream.Timeout = timeout
	}
	if port := os.Getenv("SOCIALDATA_MCP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("SOCIALDATA_MCP_HOST"); host != "" {
		config.Server.Host = host
	}
	if level := os.Getenv("SOCIALDATA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides to config.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port > 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks mandatory fields. It returns a *ConfigurationError listing
// every problem, or nil.
func (c *Config) Validate() error {
	var issues []string
	if strings.TrimSpace(c.Upstream.APIKey) == "" {
		issues = append(issues, "SOCIALDATA_API_KEY environment variable is required")
	}
	if c.Upstream.BaseURL == "" {
		issues = append(issues, "upstream.base_url must not be empty")
	} else if !strings.HasPrefix(c.Upstream.BaseURL, "http://") && !strings.HasPrefix(c.Upstream.BaseURL, "https://") {
		issues = append(issues, fmt.Sprintf("upstream.base_url %q must start with http:// or https://", c.Upstream.BaseURL))
	}
	if c.Upstream.Timeout != "" {
		if _, err := time.ParseDuration(c.Upstream.Timeout); err != nil {
			issues = append(issues, fmt.Sprintf("upstream.timeout %q is not a valid duration", c.Upstream.Timeout))
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		issues = append(issues, fmt.Sprintf("server.port %d is out of range", c.Server.Port))
	}
	if len(issues) > 0 {
		return &ConfigurationError{Issues: issues}
	}
	return nil
}
