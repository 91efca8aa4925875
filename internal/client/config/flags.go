package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmuchiri/tributewall/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-e string   remote tribute store endpoint URL
//	-g string   reverse-geocoding endpoint URL
//	-d string   path to the local slots database
//	-t int      store request timeout in seconds
//	-lat, -lon  fixed device coordinates for geolocation
//
// os.Args is filtered via flagx.FilterArgs so flags owned by other
// components do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-g", "-d", "-t", "-lat", "-lon"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreEndpointURL, "e", cfg.StoreEndpointURL, "remote tribute store endpoint URL")
	fs.StringVar(&cfg.GeoEndpointURL, "g", cfg.GeoEndpointURL, "reverse-geocoding endpoint URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local database")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "store request timeout (in seconds)")
	lat := fs.Float64("lat", cfg.Latitude, "device latitude")
	lon := fs.Float64("lon", cfg.Longitude, "device longitude")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second

	positionSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "lat" || f.Name == "lon" {
			positionSet = true
		}
	})
	if positionSet {
		cfg.Latitude = *lat
		cfg.Longitude = *lon
		cfg.HasPosition = true
	}
}
