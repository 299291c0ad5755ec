// README: Trip orchestrator; sequences generation, geocoding, and routing,
// and owns the current-trip state.
package trip

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"roadtrip/internal/ai"
	"roadtrip/internal/geo"
	"roadtrip/internal/route"
	"roadtrip/internal/types"
)

var (
	ErrMissingEndpoints = errors.New("origin and destination are required")
	ErrPlanGeneration   = errors.New("trip plan generation failed")
	ErrNoPlan           = errors.New("no trip plan to start")
)

// Monitor is the live-alert side of the system as seen by the orchestrator:
// started when a trip goes active, stopped and cleared when trip state resets.
type Monitor interface {
	Activate(order []string)
	Deactivate()
	Clear()
}

// Service owns the single current-trip state and is the only component
// allowed to mutate it.
type Service struct {
	gen      ai.TripGenerator
	geocoder geo.Geocoder
	router   route.Router
	monitor  Monitor

	mu      sync.Mutex
	attempt uint64
	state   Snapshot
}

func NewService(gen ai.TripGenerator, geocoder geo.Geocoder, router route.Router, monitor Monitor) *Service {
	return &Service{gen: gen, geocoder: geocoder, router: router, monitor: monitor}
}

type PlanCommand struct {
	Origin      string
	Destination string
	Stops       []string
}

// Plan runs the full pipeline: validate, generate, geocode each ordered name
// sequentially, then fetch route geometry. Geocode and routing failures
// degrade (fewer markers, empty geometry); only validation and generation
// failures abort. State is reset eagerly before the first external call, and
// a superseded attempt never overwrites a newer one.
func (s *Service) Plan(ctx context.Context, cmd PlanCommand) (*Snapshot, error) {
	origin := strings.TrimSpace(cmd.Origin)
	destination := strings.TrimSpace(cmd.Destination)
	if origin == "" || destination == "" {
		return nil, ErrMissingEndpoints
	}

	attemptID := s.beginAttempt()
	s.monitor.Deactivate()
	s.monitor.Clear()

	stops := make([]string, 0, len(cmd.Stops))
	for _, stop := range cmd.Stops {
		if v := strings.TrimSpace(stop); v != "" {
			stops = append(stops, v)
		}
	}

	plan, err := s.gen.GenerateTripPlan(ctx, origin, destination, stops)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlanGeneration, err)
	}

	// One lookup at a time, in plan order. The free geocoding endpoint
	// rate-limits bursts.
	markers := make([]Marker, 0, len(plan.OptimizedOrder))
	for _, name := range plan.OptimizedOrder {
		place, err := s.geocoder.Geocode(ctx, name)
		if err != nil {
			log.Printf("trip: geocode %q: %v (dropping marker)", name, err)
			continue
		}
		markers = append(markers, Marker{Lat: place.Lat, Lon: place.Lon, Label: name})
	}

	var geometry []types.Point
	if len(markers) >= 2 {
		points := make([]types.Point, len(markers))
		for i, m := range markers {
			points[i] = types.Point{Lat: m.Lat, Lon: m.Lon}
		}
		geometry, err = s.router.RouteGeometry(ctx, points)
		if err != nil {
			log.Printf("trip: route geometry: %v (continuing without)", err)
			geometry = nil
		}
	}

	result := Snapshot{
		Plan:          plan,
		Markers:       markers,
		RouteGeometry: geometry,
		DistanceKm:    geo.PolylineLengthKm(geometry),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.attempt != attemptID {
		// A newer attempt reset the state while this one was in flight;
		// hand the result to the caller but do not publish it.
		return &result, nil
	}
	s.state = result
	return &result, nil
}

// beginAttempt bumps the attempt counter and resets all trip state to its
// initial empty condition. Runs before any external work so stale UI never
// mixes an old active trip with a new pending plan.
func (s *Service) beginAttempt() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempt++
	s.state = Snapshot{}
	return s.attempt
}

// Start marks the trip active and begins live-alert polling. Only possible
// when a plan exists.
func (s *Service) Start() error {
	s.mu.Lock()
	if s.state.Plan == nil {
		s.mu.Unlock()
		return ErrNoPlan
	}
	s.state.Active = true
	order := make([]string, len(s.state.Plan.OptimizedOrder))
	copy(order, s.state.Plan.OptimizedOrder)
	s.mu.Unlock()

	s.monitor.Activate(order)
	return nil
}

// Stop clears the active flag and cancels polling. The alert feed is left
// intact; it is cleared on the next planning attempt. Idempotent.
func (s *Service) Stop() {
	s.mu.Lock()
	s.state.Active = false
	s.mu.Unlock()

	s.monitor.Deactivate()
}

// Snapshot returns a copy of the current trip state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.state
	out.Markers = append([]Marker(nil), s.state.Markers...)
	out.RouteGeometry = append([]types.Point(nil), s.state.RouteGeometry...)
	return out
}
