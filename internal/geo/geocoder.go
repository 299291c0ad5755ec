// README: Geocoder contract and shared result type.
package geo

import (
	"context"
	"errors"
)

// ErrNoMatch means the provider answered but found no place for the query.
// Callers distinguish this from transport failures only for logging; both
// drop the marker.
var ErrNoMatch = errors.New("geo: no match for query")

// Place is the best-match resolution of a free-text place name.
type Place struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	DisplayName string  `json:"displayName"`
}

// Geocoder resolves a free-text place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Place, error)
}
