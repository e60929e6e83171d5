// Package llm selects the text-generation provider from configuration.
package llm

import (
	"fmt"

	"tripplanner/internal/adapters/llm/gemini"
	"tripplanner/internal/adapters/llm/groq"
	"tripplanner/internal/domain"
	"tripplanner/internal/shared"
)

func FromConfig(cfg shared.Config) (domain.ItineraryGenerator, error) {
	switch cfg.LLMProvider {
	case "", "groq":
		return groq.New(cfg.GroqBase, cfg.GroqKey, cfg.GroqModel, cfg.LLMRPS, cfg.LLMTimeout), nil
	case "gemini":
		return gemini.New(cfg.GeminiKey, cfg.GeminiModel, cfg.LLMTimeout), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q (want groq or gemini)", cfg.LLMProvider)
	}
}
