package indicator

import "github.com/rxtech-lab/argo-backtest/internal/types"

// EMA is an exponential moving average with alpha = 2/(period+1).
// The first value is the simple average of the first period inputs, later
// values follow EMA = price*alpha + EMA_prev*(1-alpha).
type EMA struct {
	period  int
	alpha   float64
	count   int
	seedSum float64
	value   float64
}

// NewEMA creates an exponential moving average.
func NewEMA(period int) (*EMA, error) {
	if err := validatePeriod("EMA", period); err != nil {
		return nil, err
	}

	return &EMA{period: period, alpha: 2.0 / float64(period+1)}, nil
}

func (e *EMA) Name() types.IndicatorType {
	return types.IndicatorTypeEMA
}

func (e *EMA) Update(value float64) {
	if e.count < e.period {
		e.count++
		e.seedSum += value

		if e.count == e.period {
			e.value = e.seedSum / float64(e.period)
		}

		return
	}

	e.value = value*e.alpha + e.value*(1-e.alpha)
}

func (e *EMA) Ready() bool {
	return e.count >= e.period
}

func (e *EMA) Value() float64 {
	if !e.Ready() {
		return 0
	}

	return e.value
}

func (e *EMA) WarmupPeriod() int {
	return e.period
}

func (e *EMA) Reset() {
	e.count = 0
	e.seedSum = 0
	e.value = 0
}
