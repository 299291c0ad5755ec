package geo

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// GoogleGeocoder is an alternative Geocoder backed by the Google Geocoding API,
// selected via ROADTRIP_GEOCODER=google.
type GoogleGeocoder struct {
	client *maps.Client
}

// NewGoogleGeocoder creates a GoogleGeocoder with the given API key.
func NewGoogleGeocoder(apiKey string) (*GoogleGeocoder, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("google geocoder: create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client}, nil
}

// Geocode implements Geocoder.
func (g *GoogleGeocoder) Geocode(ctx context.Context, query string) (*Place, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: query})
	if err != nil {
		return nil, fmt.Errorf("google geocoder: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoMatch
	}

	best := results[0]
	return &Place{
		Lat:         best.Geometry.Location.Lat,
		Lon:         best.Geometry.Location.Lng,
		DisplayName: best.FormattedAddress,
	}, nil
}
