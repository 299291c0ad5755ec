package route

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"roadtrip/internal/types"
)

// GoogleRouter is an alternative Router backed by the Google Directions API,
// selected via ROADTRIP_ROUTER=google. It requests toll-free routes to match
// the directions the plan generator produces.
type GoogleRouter struct {
	client *maps.Client
}

// NewGoogleRouter creates a GoogleRouter with the given API key.
func NewGoogleRouter(apiKey string) (*GoogleRouter, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("google router: create maps client: %w", err)
	}
	return &GoogleRouter{client: client}, nil
}

// RouteGeometry implements Router.
func (g *GoogleRouter) RouteGeometry(ctx context.Context, points []types.Point) ([]types.Point, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}

	fmtPoint := func(p types.Point) string {
		return fmt.Sprintf("%f,%f", p.Lat, p.Lon)
	}
	waypoints := make([]string, 0, len(points)-2)
	for _, p := range points[1 : len(points)-1] {
		waypoints = append(waypoints, fmtPoint(p))
	}

	r := &maps.DirectionsRequest{
		Origin:      fmtPoint(points[0]),
		Destination: fmtPoint(points[len(points)-1]),
		Waypoints:   waypoints,
		Mode:        maps.TravelModeDriving,
		Avoid:       []maps.Avoid{maps.AvoidTolls},
	}

	routes, _, err := g.client.Directions(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("google router: %w", err)
	}
	if len(routes) == 0 {
		return nil, fmt.Errorf("google router: no route found")
	}

	decoded, err := routes[0].OverviewPolyline.Decode()
	if err != nil {
		return nil, fmt.Errorf("google router: decode polyline: %w", err)
	}

	geometry := make([]types.Point, len(decoded))
	for i, ll := range decoded {
		geometry[i] = types.Point{Lat: ll.Lat, Lon: ll.Lng}
	}
	return geometry, nil
}
