package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8787/tributes", c.StoreEndpointURL)
	assert.Equal(t, "tributewall.db", c.DatabasePath)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 5*time.Second, c.GeoTimeout)
	assert.False(t, c.HasPosition)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cli"}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://127.0.0.1:8787/tributes", cfg.StoreEndpointURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cli", "-e", "https://wall.example.org/api", "-t", "3", "-lat=-1.2921", "-lon=36.8219"}

	cfg := LoadConfig()

	assert.Equal(t, "https://wall.example.org/api", cfg.StoreEndpointURL)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.True(t, cfg.HasPosition)
	assert.InDelta(t, -1.2921, cfg.Latitude, 1e-9)
	assert.InDelta(t, 36.8219, cfg.Longitude, 1e-9)
}
