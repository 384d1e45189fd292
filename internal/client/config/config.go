// Package config loads client settings from defaults, an optional JSON file
// and command-line flags, in that order of precedence.
package config

import "time"

// Config holds runtime settings for the newscheck client.
//
// Fields:
//   - ServerBaseURL: root URL of the analysis service.
//   - SessionDBPath: sqlite file persisting the login session.
//   - RequestTimeout: per-request HTTP timeout.
//   - MaxTextLength: upper bound on submitted text, in characters.
//   - BannerVisibleFor / BannerFadeFor: error banner timing.
type Config struct {
	ServerBaseURL    string
	SessionDBPath    string
	RequestTimeout   time.Duration
	MaxTextLength    int
	BannerVisibleFor time.Duration
	BannerFadeFor    time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:5000"
	c.SessionDBPath = "newscheck.db"
	c.RequestTimeout = 30 * time.Second
	c.MaxTextLength = 1000
	c.BannerVisibleFor = 3 * time.Second
	c.BannerFadeFor = 500 * time.Millisecond
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
