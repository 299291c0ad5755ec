package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"roadtrip/internal/ai"
)

func main() {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Fatal("GEMINI_API_KEY environment variable not set")
	}

	ctx := context.Background()
	provider, err := ai.NewGeminiProvider(ctx, apiKey)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	origin := "New York, NY"
	destination := "Washington, DC"
	stops := []string{"Philadelphia, PA"}
	fmt.Printf("Planning: %s -> %s (via %s)\n", origin, destination, strings.Join(stops, ", "))

	plan, err := provider.GenerateTripPlan(ctx, origin, destination, stops)
	if err != nil {
		log.Fatalf("Error generating plan: %v", err)
	}

	fmt.Printf("Order: %s\n", strings.Join(plan.OptimizedOrder, " -> "))
	fmt.Printf("Weather: %s\n", plan.Weather)
	fmt.Printf("Traffic: %s\n", plan.Traffic)
	for _, p := range plan.Parking {
		fmt.Printf("Parking: %s (%.1f★, %s, %s)\n", p.Name, p.Rating, p.EstimatedCost, p.OperatingHours)
	}
	for i, d := range plan.Directions {
		fmt.Printf("%2d. %s\n", i+1, d)
	}

	alerts, err := provider.CheckRouteAlerts(ctx, plan.OptimizedOrder)
	if err != nil {
		log.Fatalf("Error checking alerts: %v", err)
	}
	for _, a := range alerts {
		fmt.Printf("[%s] %s\n", a.Type, a.Message)
	}
}
