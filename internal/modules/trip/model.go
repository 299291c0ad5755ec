// README: Current-trip state: plan, resolved markers, route geometry.
package trip

import (
	"roadtrip/internal/ai"
	"roadtrip/internal/types"
)

// Marker is one successfully geocoded entry of the plan's visit order.
// Entries that fail to geocode are dropped, so there are never more markers
// than names in the order.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// Snapshot is the atomically published state of the current trip. A re-plan
// replaces it wholesale; the presentation layer only ever reads it.
type Snapshot struct {
	Plan          *ai.TripPlan  `json:"plan"`
	Markers       []Marker      `json:"markers"`
	RouteGeometry []types.Point `json:"routeGeometry"`
	// DistanceKm is the approximate great-circle length of the route
	// geometry; zero when no geometry is available.
	DistanceKm float64 `json:"distanceKm"`
	Active     bool    `json:"active"`
}
