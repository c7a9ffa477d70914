package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// MACDGenerator trades the MACD line against its signal line.
// Cross mode: BUY on an observed cross up, SELL on a cross down.
// Level mode: BUY while the histogram is positive, SELL while it is negative.
type MACDGenerator struct {
	generator
	macd  *indicator.MACD
	cross crossover
}

// NewMACDGenerator creates the MACD strategy. ShortPeriod and LongPeriod are
// the fast and slow EMA periods.
func NewMACDGenerator(config Config) (SignalGenerator, error) {
	macd, err := indicator.NewMACD(config.short(), config.long(), config.signalPeriod())
	if err != nil {
		return nil, err
	}

	return &MACDGenerator{
		generator: generator{
			name:         fmt.Sprintf("MACD(%d,%d,%d)", config.short(), config.long(), config.signalPeriod()),
			strategyType: types.StrategyTypeMACD,
			mode:         config.SignalMode,
		},
		macd: macd,
	}, nil
}

func (g *MACDGenerator) Update(bar types.Bar) types.Signal {
	g.macd.Update(bar.Close)

	if !g.macd.Ready() {
		return g.none(bar)
	}

	line := g.macd.Value()
	signal := g.macd.Signal()

	direction := g.cross.observe(line, signal)
	if g.mode == types.SignalModeLevel {
		switch compare(line, signal) {
		case relationAbove:
			direction = crossUp
		case relationBelow:
			direction = crossDown
		default:
			direction = crossNone
		}
	}

	switch direction {
	case crossUp:
		return g.signal(bar, types.SignalTypeBuy, g.macd.Histogram(), fmt.Sprintf("MACD %.4f above signal %.4f", line, signal))
	case crossDown:
		return g.signal(bar, types.SignalTypeSell, g.macd.Histogram(), fmt.Sprintf("MACD %.4f below signal %.4f", line, signal))
	}

	return g.none(bar)
}

func (g *MACDGenerator) WarmupPeriod() int {
	return g.macd.WarmupPeriod()
}

func (g *MACDGenerator) Reset() {
	g.macd.Reset()
	g.cross.reset()
}
