package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

const (
	dualMABuyGap  = 1.01
	dualMASellGap = 0.99
)

// DualMAGenerator compares a short and a long moving average. MA_CROSS uses
// simple averages, DOUBLE_MA exponential ones.
//
// Cross mode: BUY when the short average moves from <= long to > long, SELL on
// the opposite move. The first bar with both averages populated counts as a
// cross. Level mode: BUY while short > long*1.01, SELL while short < long*0.99.
type DualMAGenerator struct {
	generator
	short indicator.Indicator
	long  indicator.Indicator
	cross crossover
}

// NewMACrossGenerator creates the simple moving average cross strategy.
func NewMACrossGenerator(config Config) (SignalGenerator, error) {
	short, err := indicator.NewMA(config.short())
	if err != nil {
		return nil, err
	}

	long, err := indicator.NewMA(config.long())
	if err != nil {
		return nil, err
	}

	return newDualMAGenerator(types.StrategyTypeMACross, config, short, long), nil
}

// NewDoubleMAGenerator creates the exponential moving average cross strategy.
func NewDoubleMAGenerator(config Config) (SignalGenerator, error) {
	short, err := indicator.NewEMA(config.short())
	if err != nil {
		return nil, err
	}

	long, err := indicator.NewEMA(config.long())
	if err != nil {
		return nil, err
	}

	return newDualMAGenerator(types.StrategyTypeDoubleMA, config, short, long), nil
}

func newDualMAGenerator(strategyType types.StrategyType, config Config, short, long indicator.Indicator) *DualMAGenerator {
	return &DualMAGenerator{
		generator: generator{
			name:         fmt.Sprintf("%s(%d,%d)", strategyType, config.short(), config.long()),
			strategyType: strategyType,
			mode:         config.SignalMode,
		},
		short: short,
		long:  long,
		cross: crossover{unknownCrosses: true},
	}
}

func (g *DualMAGenerator) Update(bar types.Bar) types.Signal {
	g.short.Update(bar.Close)
	g.long.Update(bar.Close)

	if !g.short.Ready() || !g.long.Ready() {
		return g.none(bar)
	}

	short := g.short.Value()
	long := g.long.Value()

	if g.mode == types.SignalModeLevel {
		switch {
		case compare(short, long*dualMABuyGap) == relationAbove:
			return g.signal(bar, types.SignalTypeBuy, short-long, fmt.Sprintf("short average %.4f above long average %.4f by more than 1%%", short, long))
		case compare(short, long*dualMASellGap) == relationBelow:
			return g.signal(bar, types.SignalTypeSell, short-long, fmt.Sprintf("short average %.4f below long average %.4f by more than 1%%", short, long))
		}

		return g.none(bar)
	}

	switch g.cross.observe(short, long) {
	case crossUp:
		return g.signal(bar, types.SignalTypeBuy, short-long, fmt.Sprintf("short average %.4f crossed above long average %.4f", short, long))
	case crossDown:
		return g.signal(bar, types.SignalTypeSell, short-long, fmt.Sprintf("short average %.4f crossed below long average %.4f", short, long))
	}

	return g.none(bar)
}

func (g *DualMAGenerator) WarmupPeriod() int {
	return max(g.short.WarmupPeriod(), g.long.WarmupPeriod())
}

func (g *DualMAGenerator) Reset() {
	g.short.Reset()
	g.long.Reset()
	g.cross.reset()
}
