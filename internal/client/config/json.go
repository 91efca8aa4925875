package config

import (
	"encoding/json"
	"os"

	"github.com/dmuchiri/tributewall/internal/flagx"
	"github.com/dmuchiri/tributewall/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify timeouts either as strings like "10s"
// or as integer nanoseconds.
type JsonConfig struct {
	StoreEndpointURL string         `json:"store_endpoint_url"`
	GeoEndpointURL   string         `json:"geo_endpoint_url"`
	DatabasePath     string         `json:"database_path"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	GeoTimeout       timex.Duration `json:"geo_timeout"`
	Latitude         *float64       `json:"latitude"`
	Longitude        *float64       `json:"longitude"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flag. Absent file means no overlay; unreadable or invalid
// JSON panics, as a broken explicit config should not be silently ignored.
// Only fields present in the file override defaults.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.StoreEndpointURL != "" {
		cfg.StoreEndpointURL = jc.StoreEndpointURL
	}
	if jc.GeoEndpointURL != "" {
		cfg.GeoEndpointURL = jc.GeoEndpointURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Std()
	}
	if jc.GeoTimeout != 0 {
		cfg.GeoTimeout = jc.GeoTimeout.Std()
	}
	if jc.Latitude != nil && jc.Longitude != nil {
		cfg.Latitude = *jc.Latitude
		cfg.Longitude = *jc.Longitude
		cfg.HasPosition = true
	}
}
