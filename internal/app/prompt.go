package app

import (
	"fmt"

	"tripplanner/internal/domain"
)

const (
	systemTemplate = "You are a futuristic AI travel assistant. Create a %d-day itinerary for %s " +
		"based on %s with a %s budget in %s. " +
		"Provide a concise, futuristic-styled itinerary."
	userMessage = "Plan my trip"
)

// ItineraryPrompt embeds the request fields verbatim; nothing is escaped or trimmed.
func ItineraryPrompt(city, interests string, days int, tier domain.Tier, region domain.Region) domain.Prompt {
	return domain.Prompt{
		System: fmt.Sprintf(systemTemplate, days, city, interests, tier, region),
		User:   userMessage,
	}
}
