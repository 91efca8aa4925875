// Package config loads the reference store's runtime configuration from
// defaults, an optional JSON file and command-line flags, in that order.
package config

// Config holds runtime settings for the tribute store server.
type Config struct {
	// Addr is the listen address, e.g. ":8787".
	Addr string

	// DatabaseDSN is the SQLite file holding the tribute records.
	DatabaseDSN string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.Addr = ":8787"
	c.DatabaseDSN = "tributestore.db"
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
