package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJson_OverlaysOnlyPresentFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"store_endpoint_url": "https://wall.example.org/api",
		"request_timeout": "3s",
		"latitude": -1.2921,
		"longitude": 36.8219
	}`), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cli", "-c", path}

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, "https://wall.example.org/api", cfg.StoreEndpointURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.HasPosition)

	// fields absent from the file keep their defaults
	assert.Equal(t, "tributewall.db", cfg.DatabasePath)
	assert.Equal(t, 5*time.Second, cfg.GeoTimeout)
}

func TestParseJson_NoConfigFlagLeavesDefaults(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cli"}

	var cfg Config
	cfg.LoadDefaults()
	parseJson(&cfg)

	assert.Equal(t, "http://127.0.0.1:8787/tributes", cfg.StoreEndpointURL)
}

func TestParseJson_InvalidFilePanics(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cli", "-c", path}

	var cfg Config
	cfg.LoadDefaults()
	assert.Panics(t, func() { parseJson(&cfg) })
}
