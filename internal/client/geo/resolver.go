// Package geo resolves a best-effort "City, Country" string for new
// tributes. It is a side channel: any failure becomes an unavailable
// result with a reason, never an error, and must never hold up a
// submission.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmuchiri/tributewall/internal/logging"
)

// Result is the outcome of a resolution attempt. When Available is false,
// Reason holds a human-readable explanation kept for display.
type Result struct {
	Place     string
	Available bool
	Reason    string
}

// unavailable builds a degraded Result.
func unavailable(reason string) Result {
	return Result{Available: false, Reason: reason}
}

// PositionSource supplies device coordinates, subject to user permission.
type PositionSource interface {
	Position(ctx context.Context) (lat, lon float64, err error)
}

// genericPlace is returned when the geocoder answers but names no place.
const genericPlace = "Location detected"

// Resolver turns device coordinates into a place string via a single
// reverse-geocoding lookup. The result is computed once and reused:
// resolution may race with page load and pending submissions, and a late
// answer must never overwrite what a user already typed — callers consult
// the resolver only when their own input is empty.
type Resolver struct {
	source   PositionSource
	endpoint string
	hc       *http.Client
	timeout  time.Duration
	logger   logging.Logger

	once   sync.Once
	result Result
}

func NewResolver(source PositionSource, endpoint string, timeout time.Duration, logger logging.Logger) *Resolver {
	return &Resolver{
		source:   source,
		endpoint: endpoint,
		hc:       &http.Client{Timeout: timeout},
		timeout:  timeout,
		logger:   logger,
	}
}

// Prefetch starts resolution in the background so a later Resolve call
// can return immediately.
func (r *Resolver) Prefetch(ctx context.Context) {
	go func() {
		_ = r.Resolve(ctx)
	}()
}

// Resolve returns the place for this device, waiting at most the
// configured timeout. It never fails; every error path yields an
// unavailable Result carrying the reason.
func (r *Resolver) Resolve(ctx context.Context) Result {
	r.once.Do(func() {
		r.result = r.resolve(ctx)
		if !r.result.Available {
			r.logger.Debug(ctx, "geolocation unavailable", "reason", r.result.Reason)
		}
	})
	return r.result
}

func (r *Resolver) resolve(ctx context.Context) Result {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	lat, lon, err := r.source.Position(ctx)
	if err != nil {
		return unavailable(fmt.Sprintf("position unavailable: %v", err))
	}

	place, err := r.reverseGeocode(ctx, lat, lon)
	if err != nil {
		return unavailable(fmt.Sprintf("reverse geocoding failed: %v", err))
	}

	return Result{Place: place, Available: true}
}

// geocodeResponse is the reverse-geocoder's answer shape.
type geocodeResponse struct {
	City        string `json:"city"`
	CountryName string `json:"countryName"`
}

func (r *Resolver) reverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.6f", lat))
	q.Set("longitude", fmt.Sprintf("%.6f", lon))
	q.Set("localityLanguage", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := r.hc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned %s", resp.Status)
	}

	var payload geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	parts := make([]string, 0, 2)
	if payload.City != "" {
		parts = append(parts, payload.City)
	}
	if payload.CountryName != "" {
		parts = append(parts, payload.CountryName)
	}
	if len(parts) == 0 {
		return genericPlace, nil
	}
	return strings.Join(parts, ", "), nil
}
