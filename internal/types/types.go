// README: Common value types shared across modules.
package types

// ID identifies an alert or a stop within the current session.
type ID string

// Point is a geographic coordinate in decimal degrees, lat-then-lon
// (the map convention; external routing APIs that speak lon-then-lat
// are swapped at the client boundary).
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}
