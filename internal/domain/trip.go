package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Day-count bounds offered by the form slider.
const (
	MinDays     = 1
	MaxDays     = 14
	DefaultDays = 5
)

type Tier string

const (
	TierBudget   Tier = "Budget"
	TierMidRange Tier = "Mid-Range"
	TierLuxury   Tier = "Luxury"
)

// DailyCosts are the five per-day cost components of a tier.
type DailyCosts struct {
	Lodging     decimal.Decimal `json:"lodging"`
	Food        decimal.Decimal `json:"food"`
	Transport   decimal.Decimal `json:"transport"`
	Attractions decimal.Decimal `json:"attractions"`
	Misc        decimal.Decimal `json:"misc"`
}

// Sum is the daily base cost before any multiplier.
func (c DailyCosts) Sum() decimal.Decimal {
	return decimal.Sum(c.Lodging, c.Food, c.Transport, c.Attractions, c.Misc)
}

func costs(lodging, food, transport, attractions, misc int64) DailyCosts {
	return DailyCosts{
		Lodging:     decimal.NewFromInt(lodging),
		Food:        decimal.NewFromInt(food),
		Transport:   decimal.NewFromInt(transport),
		Attractions: decimal.NewFromInt(attractions),
		Misc:        decimal.NewFromInt(misc),
	}
}

// read-only after init; exposed through value-returning accessors only
var tierCosts = map[Tier]DailyCosts{
	TierBudget:   costs(30, 10, 5, 10, 5),
	TierMidRange: costs(80, 25, 15, 25, 15),
	TierLuxury:   costs(200, 50, 50, 50, 50),
}

// Tiers lists the known tiers from cheapest to most expensive.
func Tiers() []Tier { return []Tier{TierBudget, TierMidRange, TierLuxury} }

func (t Tier) DailyCosts() (DailyCosts, bool) {
	c, ok := tierCosts[t]
	return c, ok
}

func (t Tier) Valid() bool {
	_, ok := tierCosts[t]
	return ok
}

// ParseTier accepts only the exact tier names.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.TrimSpace(s))
	if !t.Valid() {
		return "", fmt.Errorf("%w: unknown tier %q", ErrInvalidInput, s)
	}
	return t, nil
}

type Region string

type regionFactor struct {
	region Region
	factor decimal.Decimal
}

// form order
var regionFactors = []regionFactor{
	{"Southeast Asia", decimal.RequireFromString("0.7")},
	{"Western Europe", decimal.RequireFromString("1.1")},
	{"North America", decimal.RequireFromString("1.3")},
	{"Eastern Europe", decimal.RequireFromString("0.9")},
	{"South Asia", decimal.RequireFromString("0.6")},
}

// NeutralFactor is applied to regions missing from the table.
func NeutralFactor() decimal.Decimal { return decimal.NewFromInt(1) }

func Regions() []Region {
	out := make([]Region, len(regionFactors))
	for i, rf := range regionFactors {
		out[i] = rf.region
	}
	return out
}

// Factor returns the region multiplier and whether the region is listed.
// Unlisted regions get NeutralFactor.
func (r Region) Factor() (decimal.Decimal, bool) {
	for _, rf := range regionFactors {
		if rf.region == r {
			return rf.factor, true
		}
	}
	return NeutralFactor(), false
}

// TripRequest is the per-invocation input of the planner.
type TripRequest struct {
	Destination string `json:"destination"`
	Interests   string `json:"interests"`
	Days        int    `json:"days"`
	Tier        Tier   `json:"tier"`
	Region      Region `json:"region"`
}

// Validate rejects what the estimator cannot price. Free-text fields are not checked.
func (r TripRequest) Validate() error {
	if r.Days < MinDays || r.Days > MaxDays {
		return fmt.Errorf("%w: days must be between %d and %d, got %d", ErrInvalidInput, MinDays, MaxDays, r.Days)
	}
	if !r.Tier.Valid() {
		return fmt.Errorf("%w: unknown tier %q", ErrInvalidInput, r.Tier)
	}
	return nil
}
