package config

import "github.com/bobmcallan/socialdata-mcp/internal/common"

// DefaultBaseURL is the SocialData API host every tool path is relative to.
const DefaultBaseURL = "https://api.socialdata.tools"

// NewDefaultConfig creates a configuration with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "socialdata-api",
			Host: "localhost",
			Port: 4250,
		},
		Upstream: UpstreamConfig{
			BaseURL: DefaultBaseURL,
		},
		Logging: common.LoggingConfig{
			Level:   "info",
			Outputs: []string{"console"},
		},
	}
}
