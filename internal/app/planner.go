package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"tripplanner/internal/domain"
)

type PlannerService struct {
	gen domain.ItineraryGenerator
	now func() time.Time
}

func NewPlannerService(g domain.ItineraryGenerator, now func() time.Time) *PlannerService {
	if now == nil {
		now = time.Now
	}
	return &PlannerService{gen: g, now: now}
}

// Provider reports which generator backs the service.
func (s *PlannerService) Provider() string { return s.gen.Name() }

// Estimate prices a request for the given calendar month. The caller binds the month.
func (s *PlannerService) Estimate(req domain.TripRequest, month int) (domain.CostEstimate, error) {
	return domain.Estimate(req.Days, req.Tier, req.Region, month)
}

// RequestItinerary sends the templated prompt to the generator and returns its text.
// Every failure comes back as *domain.GenerationError.
func (s *PlannerService) RequestItinerary(ctx context.Context, city, interests string, days int, tier domain.Tier, region domain.Region) (string, error) {
	prompt := ItineraryPrompt(city, interests, days, tier, region)

	text, err := s.gen.Generate(ctx, prompt)
	if err != nil {
		return "", s.classify(err)
	}
	if strings.TrimSpace(text) == "" {
		return "", domain.NewGenerationError(domain.FailureMalformed, s.gen.Name(), errors.New("empty itinerary text"))
	}
	return text, nil
}

// Plan validates the request, prices it, then asks for the itinerary.
// Invalid input returns an error before the generator is called. A generation
// failure does not fail the plan; it is reported in Plan.Failure next to the estimate.
func (s *PlannerService) Plan(ctx context.Context, req domain.TripRequest, month int) (domain.Plan, error) {
	if err := req.Validate(); err != nil {
		return domain.Plan{}, err
	}
	est, err := s.Estimate(req, month)
	if err != nil {
		return domain.Plan{}, err
	}

	p := domain.Plan{
		ID:          uuid.NewString(),
		GeneratedAt: s.now(),
		Request:     req,
		Estimate:    est,
	}

	text, err := s.RequestItinerary(ctx, req.Destination, req.Interests, req.Days, req.Tier, req.Region)
	if err != nil {
		var gerr *domain.GenerationError
		errors.As(err, &gerr)
		p.Failure = gerr
		log.Warn().
			Str("plan_id", p.ID).
			Str("provider", gerr.Provider).
			Str("kind", string(gerr.Kind)).
			Err(gerr.Err).
			Msg("itinerary generation failed")
		return p, nil
	}
	p.Itinerary = text

	log.Info().
		Str("plan_id", p.ID).
		Str("tier", string(req.Tier)).
		Str("region", string(req.Region)).
		Int("days", req.Days).
		Str("total", est.Total.StringFixed(2)).
		Msg("plan ready")
	return p, nil
}

func (s *PlannerService) classify(err error) *domain.GenerationError {
	var gerr *domain.GenerationError
	if errors.As(err, &gerr) {
		return gerr
	}
	// context cancellation, deadline or anything the adapter left untyped
	return domain.NewGenerationError(domain.FailureUnavailable, s.gen.Name(), err)
}
