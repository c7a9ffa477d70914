package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

const (
	maUpperBand = 1.02
	maLowerBand = 0.98
)

// MAGenerator compares the close against a band of 2% around its moving average.
//
// Level mode: BUY while close > MA*1.02, SELL while close < MA*0.98.
// Cross mode: BUY when close crosses up through MA*1.02, SELL when it crosses down through MA*0.98.
type MAGenerator struct {
	generator
	ma    *indicator.MA
	upper crossover
	lower crossover
}

// NewMAGenerator creates the moving average threshold strategy.
func NewMAGenerator(config Config) (SignalGenerator, error) {
	ma, err := indicator.NewMA(config.short())
	if err != nil {
		return nil, err
	}

	return &MAGenerator{
		generator: generator{
			name:         fmt.Sprintf("MA(%d)", config.short()),
			strategyType: types.StrategyTypeMA,
			mode:         config.SignalMode,
		},
		ma: ma,
	}, nil
}

func (g *MAGenerator) Update(bar types.Bar) types.Signal {
	g.ma.Update(bar.Close)

	if !g.ma.Ready() {
		return g.none(bar)
	}

	average := g.ma.Value()
	upper := average * maUpperBand
	lower := average * maLowerBand

	if g.mode == types.SignalModeCross {
		crossedUpper := g.upper.observe(bar.Close, upper)
		crossedLower := g.lower.observe(bar.Close, lower)

		switch {
		case crossedUpper == crossUp:
			return g.signal(bar, types.SignalTypeBuy, average, fmt.Sprintf("close %.4f crossed above MA band %.4f", bar.Close, upper))
		case crossedLower == crossDown:
			return g.signal(bar, types.SignalTypeSell, average, fmt.Sprintf("close %.4f crossed below MA band %.4f", bar.Close, lower))
		}

		return g.none(bar)
	}

	switch {
	case compare(bar.Close, upper) == relationAbove:
		return g.signal(bar, types.SignalTypeBuy, average, fmt.Sprintf("close %.4f above MA band %.4f", bar.Close, upper))
	case compare(bar.Close, lower) == relationBelow:
		return g.signal(bar, types.SignalTypeSell, average, fmt.Sprintf("close %.4f below MA band %.4f", bar.Close, lower))
	}

	return g.none(bar)
}

func (g *MAGenerator) WarmupPeriod() int {
	return g.ma.WarmupPeriod()
}

func (g *MAGenerator) Reset() {
	g.ma.Reset()
	g.upper.reset()
	g.lower.reset()
}
