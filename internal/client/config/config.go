package config

import "time"

// Config holds runtime settings for the tribute wall CLI.
//
// Fields:
//   - StoreEndpointURL: base URL of the remote tribute store.
//   - GeoEndpointURL: reverse-geocoding endpoint used for default locations.
//   - DatabasePath: SQLite file holding the identity and cache slots.
//   - RequestTimeout: per-call bound for store requests.
//   - GeoTimeout: bound for the whole geolocation attempt.
//   - Latitude/Longitude/HasPosition: optional fixed device coordinates.
type Config struct {
	StoreEndpointURL string
	GeoEndpointURL   string
	DatabasePath     string
	RequestTimeout   time.Duration
	GeoTimeout       time.Duration
	Latitude         float64
	Longitude        float64
	HasPosition      bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreEndpointURL = "http://127.0.0.1:8787/tributes"
	c.GeoEndpointURL = "https://api.bigdatacloud.net/data/reverse-geocode-client"
	c.DatabasePath = "tributewall.db"
	c.RequestTimeout = 10 * time.Second
	c.GeoTimeout = 5 * time.Second
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
