package geo

import (
	"context"
	"errors"
)

// StaticSource supplies fixed coordinates from configuration. It stands in
// for a positioning device on hosts that have none; leaving it unconfigured
// simply makes resolution unavailable.
type StaticSource struct {
	Lat, Lon   float64
	Configured bool
}

func (s StaticSource) Position(ctx context.Context) (float64, float64, error) {
	if !s.Configured {
		return 0, 0, errors.New("no position configured")
	}
	return s.Lat, s.Lon, nil
}
