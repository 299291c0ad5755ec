package route

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"roadtrip/internal/types"
)

// OSRMClient fetches route geometry from the public OSRM routing API.
type OSRMClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOSRMClient creates a client for the given base URL
// (e.g. https://router.project-osrm.org).
func NewOSRMClient(baseURL string) *OSRMClient {
	return &OSRMClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// osrmResponse mirrors the subset of the route response we consume.
// Geometry coordinates arrive [lon, lat] per the GeoJSON convention.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// RouteGeometry implements Router. The returned polyline is swapped to
// lat-then-lon before it leaves this package.
func (c *OSRMClient) RouteGeometry(ctx context.Context, points []types.Point) ([]types.Point, error) {
	if len(points) < 2 {
		return nil, ErrTooFewPoints
	}

	coords := make([]string, len(points))
	for i, p := range points {
		// OSRM expects lon,lat pairs.
		coords[i] = fmt.Sprintf("%f,%f", p.Lon, p.Lat)
	}
	u := fmt.Sprintf("%s/route/v1/driving/%s?overview=full&geometries=geojson",
		c.baseURL, strings.Join(coords, ";"))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("osrm: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("osrm: %w", err)
	}
	defer resp.Body.Close()

	var body osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("osrm: decode response: %w", err)
	}
	if body.Code != "Ok" || len(body.Routes) == 0 {
		return nil, fmt.Errorf("osrm: no route (code %q)", body.Code)
	}

	raw := body.Routes[0].Geometry.Coordinates
	geometry := make([]types.Point, 0, len(raw))
	for _, pair := range raw {
		if len(pair) < 2 {
			continue
		}
		// [lon, lat] becomes lat-then-lon.
		geometry = append(geometry, types.Point{Lat: pair[1], Lon: pair[0]})
	}
	return geometry, nil
}
