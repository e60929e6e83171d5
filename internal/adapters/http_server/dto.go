package httpserver

import (
	"time"

	"tripplanner/internal/domain"
)

// Money is serialised as fixed two-decimal strings so clients never see float drift.

type componentsJSON struct {
	Lodging     string `json:"lodging"`
	Food        string `json:"food"`
	Transport   string `json:"transport"`
	Attractions string `json:"attractions"`
	Misc        string `json:"misc"`
}

type estimateJSON struct {
	Tier           string         `json:"tier"`
	Region         string         `json:"region"`
	RegionFactor   string         `json:"region_factor"`
	RegionFallback bool           `json:"region_fallback"`
	Month          int            `json:"month"`
	Season         string         `json:"season"`
	SeasonFactor   string         `json:"season_factor"`
	Days           int            `json:"days"`
	Components     componentsJSON `json:"components"`
	DailyBase      string         `json:"daily_base"`
	DailyCost      string         `json:"daily_cost"`
	Total          string         `json:"total"`
}

type failureJSON struct {
	Kind     string `json:"kind"`
	Provider string `json:"provider"`
	Message  string `json:"message"`
}

type planJSON struct {
	ID          string             `json:"id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Request     domain.TripRequest `json:"request"`
	Estimate    estimateJSON       `json:"estimate"`
	Itinerary   string             `json:"itinerary,omitempty"`
	Error       *failureJSON       `json:"itinerary_error,omitempty"`
}

type tierJSON struct {
	Name       string         `json:"name"`
	Components componentsJSON `json:"components"`
	DailyBase  string         `json:"daily_base"`
}

type factorJSON struct {
	Name   string `json:"name"`
	Factor string `json:"factor"`
}

type catalogJSON struct {
	Tiers   []tierJSON   `json:"tiers"`
	Regions []factorJSON `json:"regions"`
	Seasons []factorJSON `json:"seasons"`
	MinDays int          `json:"min_days"`
	MaxDays int          `json:"max_days"`
}

func toComponents(c domain.DailyCosts) componentsJSON {
	return componentsJSON{
		Lodging:     c.Lodging.StringFixed(2),
		Food:        c.Food.StringFixed(2),
		Transport:   c.Transport.StringFixed(2),
		Attractions: c.Attractions.StringFixed(2),
		Misc:        c.Misc.StringFixed(2),
	}
}

func toEstimate(e domain.CostEstimate) estimateJSON {
	return estimateJSON{
		Tier:           string(e.Tier),
		Region:         string(e.Region),
		RegionFactor:   e.RegionFactor.String(),
		RegionFallback: e.RegionFallback,
		Month:          e.Month,
		Season:         string(e.Season),
		SeasonFactor:   e.SeasonFactor.String(),
		Days:           e.Days,
		Components:     toComponents(e.Components),
		DailyBase:      e.DailyBase.StringFixed(2),
		DailyCost:      e.DailyCost.StringFixed(2),
		Total:          e.Total.StringFixed(2),
	}
}

func toPlan(p domain.Plan) planJSON {
	out := planJSON{
		ID:          p.ID,
		GeneratedAt: p.GeneratedAt,
		Request:     p.Request,
		Estimate:    toEstimate(p.Estimate),
		Itinerary:   p.Itinerary,
	}
	if p.Failure != nil {
		out.Error = &failureJSON{Kind: string(p.Failure.Kind), Provider: p.Failure.Provider, Message: p.Failure.UserMessage()}
	}
	return out
}

func catalog() catalogJSON {
	out := catalogJSON{MinDays: domain.MinDays, MaxDays: domain.MaxDays}
	for _, t := range domain.Tiers() {
		c, _ := t.DailyCosts()
		out.Tiers = append(out.Tiers, tierJSON{Name: string(t), Components: toComponents(c), DailyBase: c.Sum().StringFixed(2)})
	}
	for _, r := range domain.Regions() {
		f, _ := r.Factor()
		out.Regions = append(out.Regions, factorJSON{Name: string(r), Factor: f.String()})
	}
	for _, s := range domain.Seasons() {
		out.Seasons = append(out.Seasons, factorJSON{Name: string(s), Factor: s.Factor().String()})
	}
	return out
}
