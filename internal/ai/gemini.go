package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const geminiModel = "gemini-2.0-flash"

// ErrEmptyResponse indicates the model returned no usable text.
var ErrEmptyResponse = errors.New("gemini: empty response")

// GeminiProvider implements TripGenerator using Google's Gemini models.
// It holds two configured model handles over one client: a low-temperature
// one for plan generation and a higher-temperature one for alert checks.
type GeminiProvider struct {
	client     *genai.Client
	planModel  *genai.GenerativeModel
	alertModel *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	planModel := client.GenerativeModel(geminiModel)
	planModel.ResponseMIMEType = "application/json"
	planModel.ResponseSchema = tripPlanSchema
	// Low temperature: the plan must stay close to the requested structure.
	planModel.SetTemperature(0.2)

	alertModel := client.GenerativeModel(geminiModel)
	alertModel.ResponseMIMEType = "application/json"
	alertModel.ResponseSchema = alertListSchema
	// Alerts are meant to be varied, so sample more freely.
	alertModel.SetTemperature(0.7)

	return &GeminiProvider{
		client:     client,
		planModel:  planModel,
		alertModel: alertModel,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// tripPlanSchema constrains the plan response to the exact shape TripPlan decodes.
var tripPlanSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"optimizedOrder": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "The optimized order of locations to visit, starting with the origin, then the intermediate stops in the most efficient order, ending with the destination. Use the exact names provided.",
		},
		"weather": {
			Type:        genai.TypeString,
			Description: "Weather forecast and any alerts along the route.",
		},
		"traffic": {
			Type:        genai.TypeString,
			Description: "Current traffic conditions and potential issues along the route.",
		},
		"gasStations": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "Recommended gas stations or rest stops along the way.",
		},
		"parking": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":           {Type: genai.TypeString},
					"estimatedCost":  {Type: genai.TypeString},
					"operatingHours": {Type: genai.TypeString},
					"rating":         {Type: genai.TypeNumber, Description: "Rating out of 5"},
					"reviews": {
						Type:        genai.TypeArray,
						Items:       &genai.Schema{Type: genai.TypeString},
						Description: "A couple of short user reviews",
					},
				},
				Required: []string{"name", "estimatedCost", "operatingHours", "rating", "reviews"},
			},
			Description: "Parking recommendations at the final destination with details.",
		},
		"directions": {
			Type:        genai.TypeArray,
			Items:       &genai.Schema{Type: genai.TypeString},
			Description: "High-level turn-by-turn driving directions avoiding tolls.",
		},
	},
	Required: []string{"optimizedOrder", "weather", "traffic", "gasStations", "parking", "directions"},
}

// alertListSchema constrains the alert response to an array of typed messages.
var alertListSchema = &genai.Schema{
	Type: genai.TypeArray,
	Items: &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"type":    {Type: genai.TypeString, Description: "weather, traffic, or closure"},
			"message": {Type: genai.TypeString},
		},
		Required: []string{"type", "message"},
	},
}

// GenerateTripPlan implements TripGenerator.
func (p *GeminiProvider) GenerateTripPlan(ctx context.Context, origin, destination string, stops []string) (*TripPlan, error) {
	prompt := buildPlanPrompt(origin, destination, stops)

	text, err := generateText(ctx, p.planModel, prompt)
	if err != nil {
		return nil, fmt.Errorf("gemini: trip plan: %w", err)
	}

	var plan TripPlan
	if err := json.Unmarshal([]byte(cleanJSONString(text)), &plan); err != nil {
		return nil, fmt.Errorf("gemini: trip plan: decode response: %w", err)
	}
	return &plan, nil
}

// CheckRouteAlerts implements TripGenerator.
func (p *GeminiProvider) CheckRouteAlerts(ctx context.Context, order []string) ([]RouteAlert, error) {
	prompt := buildAlertPrompt(order)

	text, err := generateText(ctx, p.alertModel, prompt)
	if err != nil {
		return nil, fmt.Errorf("gemini: route alerts: %w", err)
	}

	var alerts []RouteAlert
	if err := json.Unmarshal([]byte(cleanJSONString(text)), &alerts); err != nil {
		return nil, fmt.Errorf("gemini: route alerts: decode response: %w", err)
	}
	return alerts, nil
}

// generateText issues one request and flattens the first candidate into text.
func generateText(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}

func buildPlanPrompt(origin, destination string, stops []string) string {
	var sb strings.Builder
	sb.WriteString("I am planning a road trip.\n")
	fmt.Fprintf(&sb, "Origin: %s\n", origin)
	fmt.Fprintf(&sb, "Destination: %s\n", destination)
	if len(stops) > 0 {
		fmt.Fprintf(&sb, "Intermediate Stops: %s\n", strings.Join(stops, ", "))
	}
	sb.WriteString(`
Please provide:
1. The most efficient route order (Traveling Salesperson Problem), starting at Origin, visiting all stops, and ending at Destination.
2. Weather along the route including any alerts.
3. Current traffic issues.
4. Recommended gas stations along the way.
5. Detailed parking options at the destination including cost, hours, and simulated user reviews.
6. High-level turn-by-turn driving directions, STRICTLY AVOIDING TOLLS.
`)
	return sb.String()
}

func buildAlertPrompt(order []string) string {
	return fmt.Sprintf(`I am currently driving along this route: %s.
Generate 0 to 2 realistic real-time alerts for this route right now.
Types can be 'weather', 'traffic', or 'closure'.
Return an empty array if everything is clear.`, strings.Join(order, " -> "))
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
