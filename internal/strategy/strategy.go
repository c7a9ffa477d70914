// Package strategy turns a stream of bars into discrete trade signals.
//
// Each strategy family is a SignalGenerator that owns its indicator state.
// Generators are not safe for concurrent use; every backtest run builds its own.
package strategy

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// SignalGenerator maps each new bar to BUY, SELL or NONE.
type SignalGenerator interface {
	// Name returns a display name including the parameters, e.g. MA_CROSS(5,20)
	Name() string
	// Type returns the strategy family
	Type() types.StrategyType
	// Update consumes the next bar and returns the signal for it.
	// Bars must arrive in ascending time order.
	Update(bar types.Bar) types.Signal
	// WarmupPeriod is the number of bars observed before a signal can fire
	WarmupPeriod() int
	// Reset clears all indicator state
	Reset()
}

// generator carries the bookkeeping shared by every strategy family.
type generator struct {
	name         string
	strategyType types.StrategyType
	mode         types.SignalMode
}

func (g *generator) Name() string {
	return g.name
}

func (g *generator) Type() types.StrategyType {
	return g.strategyType
}

func (g *generator) none(bar types.Bar) types.Signal {
	return types.Signal{
		Time:   bar.Time,
		Type:   types.SignalTypeNone,
		Name:   g.name,
		Symbol: bar.Symbol,
	}
}

func (g *generator) signal(bar types.Bar, signalType types.SignalType, rawValue float64, reason string) types.Signal {
	return types.Signal{
		Time:     bar.Time,
		Type:     signalType,
		Name:     g.name,
		Reason:   reason,
		RawValue: rawValue,
		Symbol:   bar.Symbol,
	}
}
