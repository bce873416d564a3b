package config

import (
	"encoding/json"
	"os"

	"socialctl/internal/flagx"
	"socialctl/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. Durations can
// be given either as strings like "10m" or as integer nanoseconds.
type JSONConfig struct {
	BackendBaseURL   string         `json:"backend_base_url"`
	BrokerBaseURL    string         `json:"broker_base_url"`
	AvatarOutputSize int            `json:"avatar_output_size"`
	ViewURLCacheTTL  timex.Duration `json:"view_url_cache_ttl"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	CacheDSN         string         `json:"cache_dsn"`
}

// parseJSON overlays Config with values loaded from a JSON file selected via
// the -c/-config flags. Missing flag means no JSON is loaded. Zero-valued
// fields in the file leave the current Config value untouched, so a partial
// file only overrides what it names.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JSONConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BackendBaseURL != "" {
		cfg.BackendBaseURL = jc.BackendBaseURL
	}
	if jc.BrokerBaseURL != "" {
		cfg.BrokerBaseURL = jc.BrokerBaseURL
	}
	if jc.AvatarOutputSize != 0 {
		cfg.AvatarOutputSize = jc.AvatarOutputSize
	}
	if jc.ViewURLCacheTTL.Duration != 0 {
		cfg.ViewURLCacheTTL = jc.ViewURLCacheTTL.Duration
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
}
