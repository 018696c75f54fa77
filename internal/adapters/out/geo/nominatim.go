// Package geo resolves free-text delivery addresses to coordinates using a
// Nominatim-compatible HTTP search endpoint.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"gasexpress/internal/core/domain/model/kernel"
)

// DefaultTimeout bounds a single geocoding lookup.
const DefaultTimeout = 5 * time.Second

// NominatimGeocoder resolves addresses against a Nominatim-style /search
// endpoint. Lookups are best-effort: any failure falls back to a jittered
// coordinate near the configured city center, so order intake never stalls
// or fails on a bad address.
type NominatimGeocoder struct {
	baseURL        string
	client         *http.Client
	fallbackCenter kernel.Coordinate
	logger         *slog.Logger
}

// searchResult is the subset of the Nominatim response the engine reads.
// Nominatim returns coordinates as strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// NewNominatimGeocoder creates a geocoder against the given base URL.
func NewNominatimGeocoder(baseURL string, fallbackCenter kernel.Coordinate, logger *slog.Logger) *NominatimGeocoder {
	return &NominatimGeocoder{
		baseURL:        baseURL,
		client:         &http.Client{Timeout: DefaultTimeout},
		fallbackCenter: fallbackCenter,
		logger:         logger.With("component", "geocoder"),
	}
}

// Resolve geocodes an address, taking the first candidate of the result set.
// Never returns an error; unresolvable addresses land near the city center.
func (g *NominatimGeocoder) Resolve(ctx context.Context, address string) kernel.Coordinate {
	coordinate, err := g.lookup(ctx, address)
	if err != nil {
		g.logger.Warn("geocoding failed, using jittered fallback",
			"address", address, "error", err)
		return g.fallback()
	}
	return coordinate
}

func (g *NominatimGeocoder) lookup(ctx context.Context, address string) (kernel.Coordinate, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1",
		g.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return kernel.Coordinate{}, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return kernel.Coordinate{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return kernel.Coordinate{}, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var results []searchResult
	if err = json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return kernel.Coordinate{}, err
	}
	if len(results) == 0 {
		return kernel.Coordinate{}, fmt.Errorf("no geocoding candidates for %q", address)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return kernel.Coordinate{}, fmt.Errorf("malformed latitude %q: %w", results[0].Lat, err)
	}

	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return kernel.Coordinate{}, fmt.Errorf("malformed longitude %q: %w", results[0].Lon, err)
	}

	return kernel.NewCoordinate(lat, lng)
}

func (g *NominatimGeocoder) fallback() kernel.Coordinate {
	coordinate, err := kernel.NewJitteredCoordinate(g.fallbackCenter, kernel.DefaultJitterSpread)
	if err != nil {
		// The configured center is validated at startup; this cannot
		// happen outside of a misconfigured test.
		return g.fallbackCenter
	}
	return coordinate
}
