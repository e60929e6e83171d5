package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidInput marks requests rejected before any cost is computed.
var ErrInvalidInput = errors.New("invalid input")

type FailureKind string

const (
	FailureAuth        FailureKind = "auth"        // credential missing or rejected
	FailureUnavailable FailureKind = "unavailable" // network, timeout, upstream status
	FailureMalformed   FailureKind = "malformed"   // undecodable or empty response
)

// GenerationError is the named failure of an itinerary request.
type GenerationError struct {
	Kind     FailureKind
	Provider string
	Err      error
}

func NewGenerationError(kind FailureKind, provider string, err error) *GenerationError {
	return &GenerationError{Kind: kind, Provider: provider, Err: err}
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: itinerary generation failed (%s): %v", e.Provider, e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// UserMessage is what the presentation layer shows instead of an itinerary.
func (e *GenerationError) UserMessage() string {
	switch e.Kind {
	case FailureAuth:
		return "The itinerary service rejected our credentials. Check that the API key is configured."
	case FailureMalformed:
		return "The itinerary service returned an empty or unreadable answer. Please try again."
	default:
		return "The itinerary service is unavailable right now. Please try again later."
	}
}
