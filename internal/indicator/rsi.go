package indicator

import "github.com/rxtech-lab/argo-backtest/internal/types"

// RSI is the Relative Strength Index with Wilder smoothing.
//
// The first averages are the plain mean of the first period gains and losses,
// afterwards avg = (avg*(period-1) + current)/period. Because a change needs
// two prices, RSI is ready after period+1 values.
type RSI struct {
	period    int
	prev      float64
	hasPrev   bool
	changes   int
	gainSum   float64
	lossSum   float64
	avgGain   float64
	avgLoss   float64
	lastValue float64
}

// NewRSI creates a Relative Strength Index indicator.
func NewRSI(period int) (*RSI, error) {
	if err := validatePeriod("RSI", period); err != nil {
		return nil, err
	}

	return &RSI{period: period}, nil
}

func (r *RSI) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

func (r *RSI) Update(value float64) {
	if !r.hasPrev {
		r.prev = value
		r.hasPrev = true

		return
	}

	change := value - r.prev
	r.prev = value

	gain, loss := 0.0, 0.0
	if change > 0 {
		gain = change
	} else {
		loss = -change
	}

	p := float64(r.period)

	switch {
	case r.changes < r.period:
		r.changes++
		r.gainSum += gain
		r.lossSum += loss

		if r.changes == r.period {
			r.avgGain = r.gainSum / p
			r.avgLoss = r.lossSum / p
		}
	default:
		r.avgGain = (r.avgGain*(p-1) + gain) / p
		r.avgLoss = (r.avgLoss*(p-1) + loss) / p
	}

	if r.Ready() {
		r.lastValue = r.compute()
	}
}

func (r *RSI) compute() float64 {
	// A zero average loss means RS is infinite.
	if r.avgLoss == 0 {
		return 100
	}

	rs := r.avgGain / r.avgLoss

	return 100 - 100/(1+rs)
}

func (r *RSI) Ready() bool {
	return r.changes >= r.period
}

func (r *RSI) Value() float64 {
	if !r.Ready() {
		return 0
	}

	return r.lastValue
}

// AverageLoss returns the current Wilder average loss.
func (r *RSI) AverageLoss() float64 {
	return r.avgLoss
}

// AverageGain returns the current Wilder average gain.
func (r *RSI) AverageGain() float64 {
	return r.avgGain
}

func (r *RSI) WarmupPeriod() int {
	return r.period + 1
}

func (r *RSI) Reset() {
	*r = RSI{period: r.period}
}
