package engine

import (
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/shopspring/decimal"
)

// BacktestState is the ledger of one run: cash, the open position, the
// append-only trade list and the equity curve. It is owned by a single
// simulator and never shared between runs.
type BacktestState struct {
	symbol         string
	initialCapital decimal.Decimal
	cash           decimal.Decimal
	position       types.Position
	lastPrice      decimal.Decimal
	totalFees      decimal.Decimal
	trades         []types.TradeRecord
	equityCurve    []types.EquityPoint
}

func NewBacktestState(symbol string, initialCapital decimal.Decimal) *BacktestState {
	state := &BacktestState{
		symbol:         symbol,
		initialCapital: initialCapital,
	}
	state.Initialize()

	return state
}

// Initialize resets the ledger to the initial capital and a flat position.
func (b *BacktestState) Initialize() {
	b.cash = b.initialCapital
	b.position = types.NewPosition(b.symbol)
	b.lastPrice = decimal.Zero
	b.totalFees = decimal.Zero
	b.trades = nil
	b.equityCurve = nil
}

// Mark updates the position to the latest close.
func (b *BacktestState) Mark(price decimal.Decimal) {
	b.lastPrice = price
	b.position.Mark(price)
}

// ExecuteBuy applies an executable BUY plan: cash decreases by notional plus cost.
func (b *BacktestState) ExecuteBuy(bar types.Bar, barIndex int, plan commission_fee.TradePlan, reason string) types.TradeRecord {
	b.cash = b.cash.Add(plan.CashDelta())
	b.totalFees = b.totalFees.Add(plan.Cost)
	b.position.Buy(plan.Price, plan.Quantity, plan.Cost, bar.Time, barIndex)

	trade := types.TradeRecord{
		Symbol:         b.symbol,
		Timestamp:      bar.Time,
		Side:           types.PurchaseTypeBuy,
		Price:          plan.Price.InexactFloat64(),
		Quantity:       plan.Quantity.InexactFloat64(),
		Fee:            plan.Cost.InexactFloat64(),
		RealizedProfit: 0,
		BarIndex:       barIndex,
		Reason:         reason,
	}
	b.trades = append(b.trades, trade)

	return trade
}

// ExecuteSell liquidates the whole position: cash increases by notional minus cost
// and the realized profit is net of the costs of both legs.
func (b *BacktestState) ExecuteSell(bar types.Bar, barIndex int, plan commission_fee.TradePlan, reason string) types.TradeRecord {
	b.cash = b.cash.Add(plan.CashDelta())
	b.totalFees = b.totalFees.Add(plan.Cost)
	quantity, realized := b.position.Sell(plan.Price, plan.Cost)

	trade := types.TradeRecord{
		Symbol:         b.symbol,
		Timestamp:      bar.Time,
		Side:           types.PurchaseTypeSell,
		Price:          plan.Price.InexactFloat64(),
		Quantity:       quantity.InexactFloat64(),
		Fee:            plan.Cost.InexactFloat64(),
		RealizedProfit: realized.InexactFloat64(),
		BarIndex:       barIndex,
		Reason:         reason,
	}
	b.trades = append(b.trades, trade)

	return trade
}

// Equity is cash plus the open quantity valued at the last marked price.
func (b *BacktestState) Equity() decimal.Decimal {
	return b.cash.Add(b.position.MarketValue(b.lastPrice))
}

// RecordEquity appends the current equity to the curve.
func (b *BacktestState) RecordEquity(at time.Time) {
	b.equityCurve = append(b.equityCurve, types.EquityPoint{
		Timestamp: at,
		Equity:    b.Equity().InexactFloat64(),
	})
}

func (b *BacktestState) Cash() decimal.Decimal {
	return b.cash
}

func (b *BacktestState) InitialCapital() decimal.Decimal {
	return b.initialCapital
}

func (b *BacktestState) TotalFees() decimal.Decimal {
	return b.totalFees
}

// GetPosition returns a copy of the open position.
func (b *BacktestState) GetPosition() types.Position {
	return b.position
}

// GetAllTrades returns a copy of the trade list.
func (b *BacktestState) GetAllTrades() []types.TradeRecord {
	trades := make([]types.TradeRecord, len(b.trades))
	copy(trades, b.trades)

	return trades
}

// GetEquityCurve returns a copy of the equity curve.
func (b *BacktestState) GetEquityCurve() []types.EquityPoint {
	curve := make([]types.EquityPoint, len(b.equityCurve))
	copy(curve, b.equityCurve)

	return curve
}
