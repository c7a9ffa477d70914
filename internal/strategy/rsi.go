package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// RSIGenerator trades the Relative Strength Index against oversold and overbought bounds.
//
// Level mode: BUY while RSI < oversold, SELL while RSI > overbought.
// Cross mode: BUY when RSI moves from <= oversold to > oversold, SELL when it
// moves from >= overbought to < overbought.
// A bar whose average loss is zero (RSI 100) never produces a signal.
type RSIGenerator struct {
	generator
	rsi             *indicator.RSI
	oversold        float64
	overbought      float64
	oversoldCross   crossover
	overboughtCross crossover
}

// NewRSIGenerator creates the RSI strategy. ShortPeriod is the RSI period.
func NewRSIGenerator(config Config) (SignalGenerator, error) {
	rsi, err := indicator.NewRSI(config.short())
	if err != nil {
		return nil, err
	}

	return &RSIGenerator{
		generator: generator{
			name:         fmt.Sprintf("RSI(%d,%g,%g)", config.short(), config.oversold(), config.overbought()),
			strategyType: types.StrategyTypeRSI,
			mode:         config.SignalMode,
		},
		rsi:        rsi,
		oversold:   config.oversold(),
		overbought: config.overbought(),
	}, nil
}

func (g *RSIGenerator) Update(bar types.Bar) types.Signal {
	g.rsi.Update(bar.Close)

	if !g.rsi.Ready() {
		return g.none(bar)
	}

	value := g.rsi.Value()
	if g.rsi.AverageLoss() == 0 {
		g.oversoldCross.observe(value, g.oversold)
		g.overboughtCross.observe(value, g.overbought)

		return g.none(bar)
	}

	if g.mode == types.SignalModeCross {
		buy := g.oversoldCross.observe(value, g.oversold) == crossUp
		sell := g.overboughtCross.observe(value, g.overbought) == crossDown

		switch {
		case buy:
			return g.signal(bar, types.SignalTypeBuy, value, fmt.Sprintf("RSI %.2f crossed up through oversold %.2f", value, g.oversold))
		case sell:
			return g.signal(bar, types.SignalTypeSell, value, fmt.Sprintf("RSI %.2f crossed down through overbought %.2f", value, g.overbought))
		}

		return g.none(bar)
	}

	switch {
	case value < g.oversold:
		return g.signal(bar, types.SignalTypeBuy, value, fmt.Sprintf("RSI %.2f below oversold %.2f", value, g.oversold))
	case value > g.overbought:
		return g.signal(bar, types.SignalTypeSell, value, fmt.Sprintf("RSI %.2f above overbought %.2f", value, g.overbought))
	}

	return g.none(bar)
}

func (g *RSIGenerator) WarmupPeriod() int {
	return g.rsi.WarmupPeriod()
}

func (g *RSIGenerator) Reset() {
	g.rsi.Reset()
	g.oversoldCross.reset()
	g.overboughtCross.reset()
}
