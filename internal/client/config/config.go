package config

import "time"

// Config holds runtime settings for the CLI.
//
// Fields:
//   - BackendBaseURL: base URL of the backend of record, including the API
//     prefix (e.g. "http://localhost:8080/api/v1").
//   - BrokerBaseURL: base URL of the upload-ticket broker. Calls to it carry
//     no session credential; presigned-URL signatures are the only authority.
//   - AvatarOutputSize: side length, in pixels, of the square avatar produced
//     by the crop step.
//   - ViewURLCacheTTL: how long resolved view URLs stay usable in the local
//     cache. Should be shorter than the broker's signature expiry.
//   - RequestTimeout: per-request timeout for backend and broker calls.
//   - CacheDSN: sqlite DSN for the local cache database.
type Config struct {
	BackendBaseURL   string
	BrokerBaseURL    string
	AvatarOutputSize int
	ViewURLCacheTTL  time.Duration
	RequestTimeout   time.Duration
	CacheDSN         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendBaseURL = "http://localhost:8080/api/v1"
	c.BrokerBaseURL = "http://localhost:9000"
	c.AvatarOutputSize = 512
	c.ViewURLCacheTTL = 10 * time.Minute
	c.RequestTimeout = 15 * time.Second
	c.CacheDSN = "social.db"
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
