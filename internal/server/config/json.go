package config

import (
	"encoding/json"
	"os"

	"github.com/dmuchiri/tributewall/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	Addr        string `json:"addr"`
	DatabaseDSN string `json:"database_dsn"`
}

// parseJson overlays cfg with values from the JSON file named by the
// -c/-config flag. Absent file means no overlay; unreadable or invalid
// JSON panics, as a broken explicit config should not be silently ignored.
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

	if jc.Addr != "" {
		cfg.Addr = jc.Addr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
}
