package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"tripplanner/internal/app"
	"tripplanner/internal/domain"
)

// ---- fakes ----

type fakeGen struct {
	text  string
	err   error
	calls int
	last  domain.Prompt
}

func (f *fakeGen) Name() string { return "fake" }
func (f *fakeGen) Generate(ctx context.Context, p domain.Prompt) (string, error) {
	f.calls++
	f.last = p
	return f.text, f.err
}

func fixedNow() time.Time { return time.Date(2026, 7, 14, 9, 0, 0, 0, time.UTC) }

func req() domain.TripRequest {
	return domain.TripRequest{
		Destination: "Bangkok",
		Interests:   "street food, temples",
		Days:        5,
		Tier:        domain.TierBudget,
		Region:      "Southeast Asia",
	}
}

// ---- tests ----

func TestItineraryPrompt_EmbedsFieldsVerbatim(t *testing.T) {
	p := app.ItineraryPrompt("Paris", "Museums, Food", 3, domain.TierLuxury, "Western Europe")
	want := "You are a futuristic AI travel assistant. Create a 3-day itinerary for Paris " +
		"based on Museums, Food with a Luxury budget in Western Europe. " +
		"Provide a concise, futuristic-styled itinerary."
	if p.System != want {
		t.Fatalf("system prompt:\n got %q\nwant %q", p.System, want)
	}
	if p.User != "Plan my trip" {
		t.Fatalf("user message: %q", p.User)
	}
}

func TestPlan_Success(t *testing.T) {
	gen := &fakeGen{text: "  Day 1: temples\nDay 2: markets  "}
	svc := app.NewPlannerService(gen, fixedNow)

	plan, err := svc.Plan(context.Background(), req(), 7)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if !plan.Estimate.Total.Equal(decimal.NewFromInt(273)) {
		t.Fatalf("total = %s, want 273", plan.Estimate.Total)
	}
	if plan.Itinerary != "  Day 1: temples\nDay 2: markets  " {
		t.Fatalf("itinerary text altered: %q", plan.Itinerary)
	}
	if plan.Failure != nil {
		t.Fatalf("unexpected failure: %v", plan.Failure)
	}
	if plan.ID == "" || !plan.GeneratedAt.Equal(fixedNow()) {
		t.Fatalf("plan metadata: %+v", plan)
	}
	if !strings.Contains(gen.last.System, "5-day itinerary for Bangkok") {
		t.Fatalf("prompt not built from request: %q", gen.last.System)
	}
}

func TestPlan_InvalidInputSkipsGenerator(t *testing.T) {
	gen := &fakeGen{text: "never"}
	svc := app.NewPlannerService(gen, fixedNow)

	bad := req()
	bad.Tier = "Premium"
	if _, err := svc.Plan(context.Background(), bad, 7); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	bad = req()
	bad.Days = 0
	if _, err := svc.Plan(context.Background(), bad, 7); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Plan(context.Background(), req(), 13); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for month, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("generator called %d times on invalid input", gen.calls)
	}
}

func TestPlan_GenerationFailureKeepsEstimate(t *testing.T) {
	tests := []struct {
		name string
		err  error
		text string
		want domain.FailureKind
	}{
		{"typed auth failure", domain.NewGenerationError(domain.FailureAuth, "fake", errors.New("no key")), "", domain.FailureAuth},
		{"untyped error is unavailable", context.DeadlineExceeded, "", domain.FailureUnavailable},
		{"blank text is malformed", nil, "   \n", domain.FailureMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := app.NewPlannerService(&fakeGen{text: tt.text, err: tt.err}, fixedNow)
			plan, err := svc.Plan(context.Background(), req(), 7)
			if err != nil {
				t.Fatalf("plan should not fail: %v", err)
			}
			if plan.Failure == nil || plan.Failure.Kind != tt.want {
				t.Fatalf("failure = %+v, want kind %s", plan.Failure, tt.want)
			}
			if plan.Itinerary != "" {
				t.Fatalf("itinerary should be empty, got %q", plan.Itinerary)
			}
			if !plan.Estimate.Total.Equal(decimal.NewFromInt(273)) {
				t.Fatalf("estimate lost: %s", plan.Estimate.Total)
			}
		})
	}
}

func TestRequestItinerary_WrapsUntypedErrors(t *testing.T) {
	cause := errors.New("connection refused")
	svc := app.NewPlannerService(&fakeGen{err: cause}, fixedNow)

	_, err := svc.RequestItinerary(context.Background(), "Oslo", "fjords", 2, domain.TierMidRange, "Northern Europe")
	var gerr *domain.GenerationError
	if !errors.As(err, &gerr) {
		t.Fatalf("expected *GenerationError, got %T", err)
	}
	if gerr.Provider != "fake" || !errors.Is(err, cause) {
		t.Fatalf("unexpected wrap: %+v", gerr)
	}
}
