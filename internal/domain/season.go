package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Season string

const (
	SeasonLow  Season = "low"
	SeasonMid  Season = "mid"
	SeasonHigh Season = "high"
)

var seasonFactors = map[Season]decimal.Decimal{
	SeasonLow:  decimal.RequireFromString("0.8"),
	SeasonMid:  decimal.NewFromInt(1),
	SeasonHigh: decimal.RequireFromString("1.3"),
}

func Seasons() []Season { return []Season{SeasonLow, SeasonMid, SeasonHigh} }

func (s Season) Factor() decimal.Decimal { return seasonFactors[s] }

// SeasonFor buckets a calendar month (1-12) into a demand season.
func SeasonFor(month int) (Season, error) {
	switch month {
	case 1, 2, 11:
		return SeasonLow, nil
	case 6, 7, 8, 12:
		return SeasonHigh, nil
	case 3, 4, 5, 9, 10:
		return SeasonMid, nil
	}
	return "", fmt.Errorf("%w: month must be between 1 and 12, got %d", ErrInvalidInput, month)
}
