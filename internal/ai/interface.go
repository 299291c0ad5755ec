package ai

import (
	"context"
)

// TripGenerator defines the contract for the structured-generation backend.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.)
// and for faking the backend in tests.
type TripGenerator interface {
	// GenerateTripPlan asks the model for a complete structured trip plan:
	// optimized visit order, weather and traffic narratives, gas-station
	// suggestions, destination parking with simulated reviews, and
	// toll-avoiding directions. A failure here is fatal to the planning step.
	GenerateTripPlan(ctx context.Context, origin, destination string, stops []string) (*TripPlan, error)

	// CheckRouteAlerts asks the model for 0-2 realistic live alerts along the
	// given visit order. Callers treat any error as "no new alerts".
	CheckRouteAlerts(ctx context.Context, order []string) ([]RouteAlert, error)
}
