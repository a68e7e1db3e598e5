// Package config assembles runtime settings for the sharebox CLI from
// defaults, an optional JSON file, and command-line flags, in that order of
// precedence (later sources win).
package config

import "time"

// Config holds runtime settings for the sharebox CLI.
type Config struct {
	// ServerBaseURL is the root of the file-sharing service, e.g.
	// "http://localhost:8080".
	ServerBaseURL string

	// RequestTimeout bounds every HTTP exchange.
	RequestTimeout time.Duration

	// CacheDBPath locates the local sqlite cache (session, upload history).
	CacheDBPath string

	// PageLimit is the initial dashboard page size.
	PageLimit int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080"
	c.RequestTimeout = 15 * time.Second
	c.CacheDBPath = "sharebox.db"
	c.PageLimit = 20
}

// Load constructs a Config: defaults, then the JSON overlay (if a config
// file was named), then flags.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
