package engine

import (
	"math"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/stats"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type SimulatorState int

const (
	SimulatorStateIdle SimulatorState = iota
	SimulatorStateInitialized
	SimulatorStateRunning
	SimulatorStateFinalized
)

func (s SimulatorState) String() string {
	switch s {
	case SimulatorStateIdle:
		return "idle"
	case SimulatorStateInitialized:
		return "initialized"
	case SimulatorStateRunning:
		return "running"
	case SimulatorStateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// SimulatorParams holds everything a single run owns.
type SimulatorParams struct {
	Symbol         string
	Generator      strategy.SignalGenerator
	CostModel      commission_fee.CostModel
	InitialCapital decimal.Decimal
	Granularity    types.Granularity
	RiskFreeRate   float64
	Logger         *logger.Logger
}

// Simulator drives bars of one symbol through a signal generator and a cost
// model. It moves Idle -> Initialized -> Running -> Finalized; an empty run
// goes from Initialized straight to Finalized.
type Simulator struct {
	state        SimulatorState
	symbol       string
	granularity  types.Granularity
	riskFreeRate float64
	generator    strategy.SignalGenerator
	costModel    commission_fee.CostModel
	ledger       *BacktestState
	marker       *BacktestMarker
	log          *logger.Logger
	barIndex     int
	lastBar      types.Bar
	result       types.BacktestResult
}

func NewSimulator(params SimulatorParams) (*Simulator, error) {
	if params.Generator == nil {
		return nil, errors.New(errors.ErrCodeBacktestInitFailed, "signal generator is required")
	}

	if params.CostModel == nil {
		return nil, errors.New(errors.ErrCodeBacktestInitFailed, "cost model is required")
	}

	if !params.InitialCapital.IsPositive() {
		return nil, errors.Newf(errors.ErrCodeInvalidCapital, "initial capital must be positive, got %s", params.InitialCapital)
	}

	if err := params.Granularity.Validate(); err != nil {
		return nil, err
	}

	log := params.Logger
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Simulator{
		state:        SimulatorStateIdle,
		symbol:       params.Symbol,
		granularity:  params.Granularity,
		riskFreeRate: params.RiskFreeRate,
		generator:    params.Generator,
		costModel:    params.CostModel,
		ledger:       NewBacktestState(params.Symbol, params.InitialCapital),
		marker:       NewBacktestMarker(),
		log:          log,
	}, nil
}

func (s *Simulator) State() SimulatorState {
	return s.state
}

// Initialize resets the generator, the ledger and the journal so the run starts
// flat. A finalized simulator may be initialized again.
func (s *Simulator) Initialize() error {
	if s.state != SimulatorStateIdle && s.state != SimulatorStateFinalized {
		return s.transitionError(SimulatorStateInitialized)
	}

	s.generator.Reset()
	s.ledger.Initialize()
	s.marker.Cleanup()
	s.barIndex = 0
	s.lastBar = types.Bar{}
	s.result = types.BacktestResult{}
	s.state = SimulatorStateInitialized

	return nil
}

// Step processes one bar and returns the action taken: BUY or SELL when a
// trade executed, HOLD while a position stays open, NONE otherwise.
// Skipped trades are not errors.
func (s *Simulator) Step(bar types.Bar) (types.SignalType, error) {
	if s.state != SimulatorStateInitialized && s.state != SimulatorStateRunning {
		return types.SignalTypeNone, s.transitionError(SimulatorStateRunning)
	}

	if bar.Symbol != s.symbol {
		return types.SignalTypeNone, errors.Newf(errors.ErrCodeInvalidBarSequence, "bar symbol %s does not match run symbol %s", bar.Symbol, s.symbol)
	}

	if s.barIndex > 0 && !bar.Time.After(s.lastBar.Time) {
		return types.SignalTypeNone, errors.Newf(errors.ErrCodeInvalidBarSequence, "bar %d is not after the previous bar", s.barIndex)
	}

	if !(bar.Close > 0) || math.IsInf(bar.Close, 0) {
		return types.SignalTypeNone, errors.Newf(errors.ErrCodeInvalidBar, "bar %d has close %v", s.barIndex, bar.Close)
	}

	s.state = SimulatorStateRunning
	price := decimal.NewFromFloat(bar.Close)

	s.ledger.Mark(price)

	signal := s.generator.Update(bar)
	action := types.SignalTypeNone

	switch signal.Type {
	case types.SignalTypeBuy:
		action = s.buy(bar, price, signal)
	case types.SignalTypeSell:
		action = s.sell(bar, price, signal)
	}

	position := s.ledger.GetPosition()
	if action == types.SignalTypeNone && !position.IsFlat() {
		action = types.SignalTypeHold
	}

	s.ledger.RecordEquity(bar.Time)
	s.lastBar = bar
	s.barIndex++

	return action, nil
}

func (s *Simulator) buy(bar types.Bar, price decimal.Decimal, signal types.Signal) types.SignalType {
	position := s.ledger.GetPosition()
	if !position.IsFlat() {
		s.marker.Mark(bar, s.barIndex, signal, types.MarkOutcomeSkippedHolding)

		return types.SignalTypeNone
	}

	plan := s.costModel.PlanBuy(s.symbol, s.ledger.Cash(), price)
	if !plan.Executable {
		s.marker.Mark(bar, s.barIndex, signal, types.MarkOutcomeSkippedInsufficientCash)
		s.log.Debug("Skipped buy",
			zap.String("symbol", s.symbol),
			zap.Time("time", bar.Time),
			zap.Float64("price", bar.Close),
			zap.String("cash", s.ledger.Cash().String()),
		)

		return types.SignalTypeNone
	}

	trade := s.ledger.ExecuteBuy(bar, s.barIndex, plan, signal.Reason)
	s.marker.Mark(bar, s.barIndex, signal, types.MarkOutcomeExecuted)
	s.log.Debug("Executed buy",
		zap.String("symbol", s.symbol),
		zap.Time("time", bar.Time),
		zap.Float64("price", trade.Price),
		zap.Float64("quantity", trade.Quantity),
		zap.Float64("fee", trade.Fee),
	)

	return types.SignalTypeBuy
}

func (s *Simulator) sell(bar types.Bar, price decimal.Decimal, signal types.Signal) types.SignalType {
	position := s.ledger.GetPosition()
	if position.IsFlat() {
		s.marker.Mark(bar, s.barIndex, signal, types.MarkOutcomeSkippedFlat)

		return types.SignalTypeNone
	}

	plan := s.costModel.PlanSell(s.symbol, position.Quantity, price)
	if !plan.Executable {
		s.marker.Mark(bar, s.barIndex, signal, types.MarkOutcomeSkippedFlat)

		return types.SignalTypeNone
	}

	trade := s.ledger.ExecuteSell(bar, s.barIndex, plan, signal.Reason)
	s.marker.Mark(bar, s.barIndex, signal, types.MarkOutcomeExecuted)
	s.log.Debug("Executed sell",
		zap.String("symbol", s.symbol),
		zap.Time("time", bar.Time),
		zap.Float64("price", trade.Price),
		zap.Float64("quantity", trade.Quantity),
		zap.Float64("fee", trade.Fee),
		zap.Float64("realized_profit", trade.RealizedProfit),
	)

	return types.SignalTypeSell
}

// Finalize closes the run and reduces the ledger to a BacktestResult.
// An open position is valued at the last close and is not liquidated.
func (s *Simulator) Finalize() (types.BacktestResult, error) {
	if s.state != SimulatorStateInitialized && s.state != SimulatorStateRunning {
		return types.BacktestResult{}, s.transitionError(SimulatorStateFinalized)
	}

	initialCapital := s.ledger.InitialCapital().InexactFloat64()
	finalCapital := s.ledger.Equity().InexactFloat64()

	if s.barIndex == 0 {
		finalCapital = initialCapital
	}

	curve := s.ledger.GetEquityCurve()
	factor := s.granularity.AnnualizationFactor(s.costModel.MinutesPerDay())
	trades := s.ledger.GetAllTrades()

	s.result = types.BacktestResult{
		Symbol:         s.symbol,
		Strategy:       s.generator.Type(),
		MarketProfile:  s.costModel.Name(),
		Granularity:    s.granularity,
		InitialCapital: initialCapital,
		FinalCapital:   finalCapital,
		TotalReturn:    stats.TotalReturn(initialCapital, finalCapital),
		MaxDrawdown:    stats.MaxDrawdown(curve),
		SharpeRatio:    stats.SharpeRatio(curve, factor, s.riskFreeRate),
		WinRate:        stats.WinRate(trades),
		Trades:         trades,
		EquityCurve:    curve,
	}
	s.state = SimulatorStateFinalized

	return s.result, nil
}

// Result returns the result of the last finalized run.
func (s *Simulator) Result() types.BacktestResult {
	return s.result
}

// Marks returns the signal journal of the current or last run.
func (s *Simulator) Marks() []types.Mark {
	return s.marker.GetMarks()
}

// Position returns the open position.
func (s *Simulator) Position() types.Position {
	return s.ledger.GetPosition()
}

func (s *Simulator) transitionError(target SimulatorState) error {
	return errors.Newf(errors.ErrCodeBacktestStateTransition, "cannot move simulator from %s to %s", s.state, target)
}
