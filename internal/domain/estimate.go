package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CostEstimate is the total trip cost together with the numbers that produced it.
type CostEstimate struct {
	Tier           Tier            `json:"tier"`
	Components     DailyCosts      `json:"components"`
	DailyBase      decimal.Decimal `json:"daily_base"`
	Region         Region          `json:"region"`
	RegionFactor   decimal.Decimal `json:"region_factor"`
	RegionFallback bool            `json:"region_fallback"`
	Month          int             `json:"month"`
	Season         Season          `json:"season"`
	SeasonFactor   decimal.Decimal `json:"season_factor"`
	Days           int             `json:"days"`
	DailyCost      decimal.Decimal `json:"daily_cost"`
	Total          decimal.Decimal `json:"total"`
}

// Estimate prices a trip:
//
//	total = round(dailyBase(tier) * factor(region) * factor(season(month)) * days, 2)
//
// An unknown tier, a day count outside MinDays..MaxDays or a month outside
// 1..12 is ErrInvalidInput. An unknown region is priced with NeutralFactor.
func Estimate(days int, tier Tier, region Region, month int) (CostEstimate, error) {
	components, ok := tier.DailyCosts()
	if !ok {
		return CostEstimate{}, fmt.Errorf("%w: unknown tier %q", ErrInvalidInput, tier)
	}
	if days < MinDays || days > MaxDays {
		return CostEstimate{}, fmt.Errorf("%w: days must be between %d and %d, got %d", ErrInvalidInput, MinDays, MaxDays, days)
	}
	season, err := SeasonFor(month)
	if err != nil {
		return CostEstimate{}, err
	}
	regionFactor, listed := region.Factor()

	base := components.Sum()
	daily := base.Mul(regionFactor).Mul(season.Factor())
	total := daily.Mul(decimal.NewFromInt(int64(days))).Round(2)

	return CostEstimate{
		Tier:           tier,
		Components:     components,
		DailyBase:      base,
		Region:         region,
		RegionFactor:   regionFactor,
		RegionFallback: !listed,
		Month:          month,
		Season:         season,
		SeasonFactor:   season.Factor(),
		Days:           days,
		DailyCost:      daily.Round(2),
		Total:          total,
	}, nil
}

// FormatAmount renders an amount the way the result page shows it.
func FormatAmount(d decimal.Decimal) string { return "$" + d.StringFixed(2) }
