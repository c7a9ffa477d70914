// Package indicator holds incrementally updated technical indicators.
//
// Every indicator consumes one value per bar through Update and keeps only the
// state it needs (ring buffers, running sums, previous averages), so an update
// is O(1) amortized regardless of how many bars have been seen.
package indicator

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Indicator is a technical indicator fed one value per bar.
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Update feeds the next value of the series
	Update(value float64)
	// Ready reports whether enough values were observed to produce a result
	Ready() bool
	// Value returns the primary output. It is 0 until Ready.
	Value() float64
	// WarmupPeriod is the number of values needed before Ready becomes true
	WarmupPeriod() int
	// Reset clears all state
	Reset()
}

func validatePeriod(name string, period int) error {
	if period <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "%s period must be a positive integer, got %d", name, period)
	}

	return nil
}

var (
	_ Indicator = (*MA)(nil)
	_ Indicator = (*EMA)(nil)
	_ Indicator = (*RSI)(nil)
	_ Indicator = (*MACD)(nil)
	_ Indicator = (*BollingerBands)(nil)
)
