package indicator

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// degenerateVariance is the relative variance below which the bands are
// considered to have zero width.
const degenerateVariance = 1e-12

// BollingerBands keeps a moving average and sample standard deviation over
// period values. The bands sit multiplier standard deviations around the average.
type BollingerBands struct {
	period     int
	multiplier float64
	window     *Window
}

// NewBollingerBands creates Bollinger Bands with the given period and multiplier.
func NewBollingerBands(period int, multiplier float64) (*BollingerBands, error) {
	if err := validatePeriod("Bollinger Bands", period); err != nil {
		return nil, err
	}

	if period < 2 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "Bollinger Bands need a period of at least 2 for a sample deviation, got %d", period)
	}

	if multiplier <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidMultiplier, "Bollinger Bands multiplier must be positive, got %f", multiplier)
	}

	return &BollingerBands{period: period, multiplier: multiplier, window: NewWindow(period)}, nil
}

func (bb *BollingerBands) Name() types.IndicatorType {
	return types.IndicatorTypeBollingerBands
}

func (bb *BollingerBands) Update(value float64) {
	bb.window.Push(value)
}

func (bb *BollingerBands) Ready() bool {
	return bb.window.Full()
}

// Value returns the middle band.
func (bb *BollingerBands) Value() float64 {
	return bb.Middle()
}

func (bb *BollingerBands) Middle() float64 {
	if !bb.Ready() {
		return 0
	}

	return bb.window.Mean()
}

// StdDev returns the sample standard deviation, 0 when the bands are degenerate.
func (bb *BollingerBands) StdDev() float64 {
	if !bb.Ready() || bb.Degenerate() {
		return 0
	}

	return bb.window.SampleStdDev()
}

func (bb *BollingerBands) Upper() float64 {
	return bb.Middle() + bb.multiplier*bb.StdDev()
}

func (bb *BollingerBands) Lower() float64 {
	return bb.Middle() - bb.multiplier*bb.StdDev()
}

// Degenerate reports whether the window variance is indistinguishable from
// zero, as in a flat price series.
func (bb *BollingerBands) Degenerate() bool {
	mean := bb.window.Mean()

	return bb.window.SampleVariance() <= degenerateVariance*mean*mean
}

func (bb *BollingerBands) WarmupPeriod() int {
	return bb.period
}

func (bb *BollingerBands) Reset() {
	bb.window.Reset()
}
