package types

import (
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Granularity is the time span covered by a single bar.
type Granularity string

const (
	GranularityOneMinute      Granularity = "1m"
	GranularityThreeMinutes   Granularity = "3m"
	GranularityFiveMinutes    Granularity = "5m"
	GranularityFifteenMinutes Granularity = "15m"
	GranularityThirtyMinutes  Granularity = "30m"
	GranularityOneHour        Granularity = "1h"
	GranularityTwoHours       Granularity = "2h"
	GranularityFourHours      Granularity = "4h"
	GranularityOneDay         Granularity = "1d"
	GranularityOneWeek        Granularity = "1w"
	GranularityOneMonth       Granularity = "1M"
	GranularityOneYear        Granularity = "1y"
)

const tradingDaysPerYear = 252

// Granularities lists every supported granularity, finest first.
func Granularities() []Granularity {
	return []Granularity{
		GranularityOneMinute, GranularityThreeMinutes, GranularityFiveMinutes,
		GranularityFifteenMinutes, GranularityThirtyMinutes, GranularityOneHour,
		GranularityTwoHours, GranularityFourHours, GranularityOneDay,
		GranularityOneWeek, GranularityOneMonth, GranularityOneYear,
	}
}

// Minutes returns the bar length in minutes for intraday granularities and 0 otherwise.
func (g Granularity) Minutes() int {
	switch g {
	case GranularityOneMinute:
		return 1
	case GranularityThreeMinutes:
		return 3
	case GranularityFiveMinutes:
		return 5
	case GranularityFifteenMinutes:
		return 15
	case GranularityThirtyMinutes:
		return 30
	case GranularityOneHour:
		return 60
	case GranularityTwoHours:
		return 120
	case GranularityFourHours:
		return 240
	default:
		return 0
	}
}

// IsIntraday reports whether several bars make up one trading day.
func (g Granularity) IsIntraday() bool {
	return g.Minutes() > 0
}

// Validate returns a configuration error for unknown granularities.
func (g Granularity) Validate() error {
	for _, known := range Granularities() {
		if g == known {
			return nil
		}
	}

	return errors.Newf(errors.ErrCodeInvalidGranularity, "unsupported granularity %q", string(g))
}

// AnnualizationFactor returns the number of bars per year used to annualize
// the Sharpe ratio. minutesPerDay is the length of the market's trading
// session and only matters for intraday bars; at least one bar per day is assumed.
func (g Granularity) AnnualizationFactor(minutesPerDay int) float64 {
	switch g {
	case GranularityOneDay:
		return tradingDaysPerYear
	case GranularityOneWeek:
		return 52
	case GranularityOneMonth:
		return 12
	case GranularityOneYear:
		return 1
	}

	minutes := g.Minutes()
	if minutes == 0 {
		return tradingDaysPerYear
	}

	barsPerDay := float64(minutesPerDay) / float64(minutes)
	if barsPerDay < 1 {
		barsPerDay = 1
	}

	return tradingDaysPerYear * barsPerDay
}
