package strategy

import (
	"fmt"

	"github.com/rxtech-lab/argo-backtest/internal/indicator"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// BollingerBandsGenerator trades re-entries into the bands.
//
// Cross mode: BUY when the close moves from <= lower band to > lower band,
// SELL when it moves from >= upper band to < upper band.
// Level mode: BUY while close < lower band, SELL while close > upper band.
// Bands with zero width produce no signal.
type BollingerBandsGenerator struct {
	generator
	bands *indicator.BollingerBands
	lower crossover
	upper crossover
}

// NewBollingerBandsGenerator creates the Bollinger Bands strategy. ShortPeriod
// is the band period and KMultiplier the band width in standard deviations.
func NewBollingerBandsGenerator(config Config) (SignalGenerator, error) {
	bands, err := indicator.NewBollingerBands(config.short(), config.multiplier())
	if err != nil {
		return nil, err
	}

	return &BollingerBandsGenerator{
		generator: generator{
			name:         fmt.Sprintf("BOLL(%d,%g)", config.short(), config.multiplier()),
			strategyType: types.StrategyTypeBoll,
			mode:         config.SignalMode,
		},
		bands: bands,
	}, nil
}

func (g *BollingerBandsGenerator) Update(bar types.Bar) types.Signal {
	g.bands.Update(bar.Close)

	if !g.bands.Ready() {
		return g.none(bar)
	}

	if g.bands.Degenerate() {
		g.lower.reset()
		g.upper.reset()

		return g.none(bar)
	}

	lower := g.bands.Lower()
	upper := g.bands.Upper()

	if g.mode == types.SignalModeLevel {
		switch {
		case compare(bar.Close, lower) == relationBelow:
			return g.signal(bar, types.SignalTypeBuy, lower, fmt.Sprintf("close %.4f below lower band %.4f", bar.Close, lower))
		case compare(bar.Close, upper) == relationAbove:
			return g.signal(bar, types.SignalTypeSell, upper, fmt.Sprintf("close %.4f above upper band %.4f", bar.Close, upper))
		}

		return g.none(bar)
	}

	buy := g.lower.observe(bar.Close, lower) == crossUp
	sell := g.upper.observe(bar.Close, upper) == crossDown

	switch {
	case buy:
		return g.signal(bar, types.SignalTypeBuy, lower, fmt.Sprintf("close %.4f moved back above lower band %.4f", bar.Close, lower))
	case sell:
		return g.signal(bar, types.SignalTypeSell, upper, fmt.Sprintf("close %.4f moved back below upper band %.4f", bar.Close, upper))
	}

	return g.none(bar)
}

func (g *BollingerBandsGenerator) WarmupPeriod() int {
	return g.bands.WarmupPeriod()
}

func (g *BollingerBandsGenerator) Reset() {
	g.bands.Reset()
	g.lower.reset()
	g.upper.reset()
}
