package ai

// ParkingLocation is one parking recommendation at the destination.
// Reviews are simulated by the model.
type ParkingLocation struct {
	Name           string `json:"name"`
	EstimatedCost  string `json:"estimatedCost"`
	OperatingHours string `json:"operatingHours"`
	// Rating is out of 5.
	Rating  float64  `json:"rating"`
	Reviews []string `json:"reviews"`
}

// TripPlan captures the structured output of one plan generation.
// It is immutable once produced; a re-plan replaces it wholesale.
type TripPlan struct {
	// OptimizedOrder lists the exact place names to visit, origin first,
	// destination last, intermediate stops in the most efficient order.
	OptimizedOrder []string          `json:"optimizedOrder"`
	Weather        string            `json:"weather"`
	Traffic        string            `json:"traffic"`
	GasStations    []string          `json:"gasStations"`
	Parking        []ParkingLocation `json:"parking"`
	Directions     []string          `json:"directions"`
}

// RouteAlert is one live alert as returned by the model. IDs and timestamps
// are assigned downstream when the alert enters the feed.
type RouteAlert struct {
	// Type is one of "weather", "traffic", "closure".
	Type    string `json:"type"`
	Message string `json:"message"`
}
