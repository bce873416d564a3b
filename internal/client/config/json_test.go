package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON_OverlaysOnlyNamedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"backend_base_url": "https://api.example.com/api/v1",
		"view_url_cache_ttl": "5m"
	}`), 0o600))

	origArgs := os.Args
	os.Args = []string{"cli", "-c", path}
	t.Cleanup(func() { os.Args = origArgs })

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)

	assert.Equal(t, "https://api.example.com/api/v1", cfg.BackendBaseURL)
	assert.Equal(t, 5*time.Minute, cfg.ViewURLCacheTTL)
	// Untouched by the partial file.
	assert.Equal(t, "http://localhost:9000", cfg.BrokerBaseURL)
	assert.Equal(t, 512, cfg.AvatarOutputSize)
}

func TestParseJSON_NoFlagNoFile(t *testing.T) {
	origArgs := os.Args
	os.Args = []string{"cli"}
	t.Cleanup(func() { os.Args = origArgs })

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)

	assert.Equal(t, "http://localhost:8080/api/v1", cfg.BackendBaseURL)
}
