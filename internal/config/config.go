// Package config loads runtime settings for the Mirror CLI.
package config

import "time"

// Config holds runtime settings for the Mirror CLI.
//
// Fields:
//   - ServerBaseURL: root of the account API, including the version prefix.
//   - RequestTimeout: per-request timeout applied to the HTTP client.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "https://dev.refinemirror.com/api/v1/"
	c.RequestTimeout = 15 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
