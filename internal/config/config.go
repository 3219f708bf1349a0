package config

import "time"

// Config holds runtime settings for the Slack Connect CLI.
//
// Fields:
//   - BaseURL: base URL of the backend REST API, including the /api prefix.
//   - RequestTimeout: per-request HTTP timeout; generous by default to
//     tolerate a cold-started backend.
//   - DatabasePath: path of the client-local SQLite database.
//   - TokenCheckInterval: how often the Slack credential validity is probed
//     in the background.
//   - NoPersist: keep the bearer token in memory only.
type Config struct {
	BaseURL            string
	RequestTimeout     time.Duration
	DatabasePath       string
	TokenCheckInterval time.Duration
	NoPersist          bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://localhost:3001/api"
	c.RequestTimeout = 30 * time.Second
	c.DatabasePath = "slackconnect.db"
	c.TokenCheckInterval = 5 * time.Minute
	c.NoPersist = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
