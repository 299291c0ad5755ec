// README: Router contract for fetching drivable route geometry.
package route

import (
	"context"
	"errors"

	"roadtrip/internal/types"
)

// ErrTooFewPoints means fewer than two coordinates were supplied; a route
// needs at least a start and an end.
var ErrTooFewPoints = errors.New("route: need at least two points")

// Router resolves an ordered coordinate sequence into a drivable polyline,
// lat-then-lon.
type Router interface {
	RouteGeometry(ctx context.Context, points []types.Point) ([]types.Point, error)
}
