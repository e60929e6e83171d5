package domain

import (
	"context"
	"time"
)

// Prompt is a single-turn instruction for a text-generation provider.
type Prompt struct {
	System string
	User   string
}

type ItineraryGenerator interface {
	// Name identifies the provider in logs and metrics.
	Name() string
	// Generate returns the model's text. Failures should be *GenerationError.
	Generate(ctx context.Context, p Prompt) (string, error)
}

// Plan is the combined result of one planning action.
type Plan struct {
	ID          string
	GeneratedAt time.Time
	Request     TripRequest
	Estimate    CostEstimate
	Itinerary   string
	Failure     *GenerationError // nil when Itinerary is set
}
