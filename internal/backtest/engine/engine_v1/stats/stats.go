// Package stats reduces the equity curve and trade list of a run to scalar metrics.
// Every function is total: degenerate inputs report 0 instead of NaN or Inf.
package stats

import (
	"math"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/samber/lo"
)

// DefaultRiskFreeRate is the annual risk free rate used by SharpeRatio unless configured.
const DefaultRiskFreeRate = 0.03

// TotalReturn is (final - initial) / initial. It is 0 when initial is not positive.
func TotalReturn(initialCapital, finalCapital float64) float64 {
	if initialCapital <= 0 {
		return 0
	}

	return finite((finalCapital - initialCapital) / initialCapital)
}

// MaxDrawdown is the largest (peak - value) / peak over the curve, where the
// running peak starts at the first point. The result is clamped to [0, 1].
func MaxDrawdown(curve []types.EquityPoint) float64 {
	if len(curve) == 0 {
		return 0
	}

	peak := curve[0].Equity
	maxDrawdown := 0.0

	for _, point := range curve {
		if point.Equity > peak {
			peak = point.Equity
		}

		if peak <= 0 {
			continue
		}

		drawdown := (peak - point.Equity) / peak
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	return math.Min(1, math.Max(0, finite(maxDrawdown)))
}

// WinRate is the share of SELL trades with a positive realized profit.
func WinRate(trades []types.TradeRecord) float64 {
	sells := sellTrades(trades)
	if len(sells) == 0 {
		return 0
	}

	winners := lo.CountBy(sells, func(trade types.TradeRecord) bool {
		return trade.RealizedProfit > 0
	})

	return float64(winners) / float64(len(sells))
}

// Returns computes the simple per-bar returns of the curve. A step whose
// previous equity is not positive contributes a zero return.
func Returns(curve []types.EquityPoint) []float64 {
	if len(curve) < 2 {
		return nil
	}

	returns := make([]float64, 0, len(curve)-1)

	for i := 1; i < len(curve); i++ {
		previous := curve[i-1].Equity
		if previous <= 0 {
			returns = append(returns, 0)

			continue
		}

		returns = append(returns, (curve[i].Equity-previous)/previous)
	}

	return returns
}

// SharpeRatio annualizes the mean excess per-bar return over the sample
// standard deviation of the returns:
//
//	(mean(r) - riskFree/factor) / stdev(r) * sqrt(factor)
//
// Fewer than two returns or a zero standard deviation give 0.
func SharpeRatio(curve []types.EquityPoint, annualizationFactor float64, annualRiskFreeRate float64) float64 {
	returns := Returns(curve)
	if len(returns) < 2 || annualizationFactor <= 0 {
		return 0
	}

	mean := lo.Sum(returns) / float64(len(returns))
	variance := lo.SumBy(returns, func(r float64) float64 {
		return (r - mean) * (r - mean)
	}) / float64(len(returns)-1)

	stdDev := math.Sqrt(variance)
	if stdDev == 0 || math.IsNaN(stdDev) {
		return 0
	}

	riskFreePerPeriod := annualRiskFreeRate / annualizationFactor

	return finite((mean - riskFreePerPeriod) / stdDev * math.Sqrt(annualizationFactor))
}

// TradeResult counts the fills and the winning and losing sells.
func TradeResult(trades []types.TradeRecord, maxDrawdown float64) types.TradeResult {
	sells := sellTrades(trades)
	winners := lo.CountBy(sells, func(trade types.TradeRecord) bool {
		return trade.RealizedProfit > 0
	})
	losers := lo.CountBy(sells, func(trade types.TradeRecord) bool {
		return trade.RealizedProfit < 0
	})

	return types.TradeResult{
		NumberOfTrades:        len(trades),
		NumberOfWinningTrades: winners,
		NumberOfLosingTrades:  losers,
		WinRate:               WinRate(trades),
		MaxDrawdown:           maxDrawdown,
	}
}

// HoldingTime pairs every SELL with the BUY that opened its position and
// measures the distance in bars.
func HoldingTime(trades []types.TradeRecord) types.TradeHoldingTime {
	var holdings []int

	openIndex := -1

	for _, trade := range trades {
		switch trade.Side {
		case types.PurchaseTypeBuy:
			if openIndex < 0 {
				openIndex = trade.BarIndex
			}
		case types.PurchaseTypeSell:
			if openIndex >= 0 {
				holdings = append(holdings, trade.BarIndex-openIndex)
				openIndex = -1
			}
		}
	}

	if len(holdings) == 0 {
		return types.TradeHoldingTime{}
	}

	return types.TradeHoldingTime{
		Min: lo.Min(holdings),
		Max: lo.Max(holdings),
		Avg: lo.Sum(holdings) / len(holdings),
	}
}

// TotalFees sums the transaction costs of every fill.
func TotalFees(trades []types.TradeRecord) float64 {
	return lo.SumBy(trades, func(trade types.TradeRecord) float64 {
		return trade.Fee
	})
}

// TradePnl splits the profit of the run into the realized part and the
// mark-to-market value of a position left open after the last bar.
func TradePnl(result types.BacktestResult) types.TradePnl {
	sells := sellTrades(result.Trades)
	realized := lo.SumBy(sells, func(trade types.TradeRecord) float64 {
		return trade.RealizedProfit
	})

	total := result.FinalCapital - result.InitialCapital
	pnl := types.TradePnl{
		RealizedPnL:   realized,
		UnrealizedPnL: total - realized,
		TotalPnL:      total,
	}

	if len(sells) > 0 {
		profits := lo.Map(sells, func(trade types.TradeRecord, _ int) float64 {
			return trade.RealizedProfit
		})
		pnl.MaximumLoss = math.Min(0, lo.Min(profits))
		pnl.MaximumProfit = math.Max(0, lo.Max(profits))
	}

	return pnl
}

// BuyAndHoldReturn is the return of holding from the first close to the last, before costs.
func BuyAndHoldReturn(bars []types.Bar) float64 {
	if len(bars) < 2 || bars[0].Close <= 0 {
		return 0
	}

	return finite((bars[len(bars)-1].Close - bars[0].Close) / bars[0].Close)
}

// Summarize builds the host facing summary of a result. Identity fields such
// as ID, Timestamp and file paths are left for the caller.
func Summarize(result types.BacktestResult, strategy types.StrategyInfo, bars []types.Bar) types.RunSummary {
	return types.RunSummary{
		Symbol:           result.Symbol,
		Strategy:         strategy,
		MarketProfile:    result.MarketProfile,
		Granularity:      result.Granularity,
		NumberOfBars:     len(bars),
		InitialCapital:   result.InitialCapital,
		FinalCapital:     result.FinalCapital,
		TotalReturn:      result.TotalReturn,
		SharpeRatio:      result.SharpeRatio,
		TradeResult:      TradeResult(result.Trades, result.MaxDrawdown),
		TotalFees:        TotalFees(result.Trades),
		TradeHoldingTime: HoldingTime(result.Trades),
		TradePnl:         TradePnl(result),
		BuyAndHoldReturn: BuyAndHoldReturn(bars),
	}
}

func sellTrades(trades []types.TradeRecord) []types.TradeRecord {
	return lo.Filter(trades, func(trade types.TradeRecord, _ int) bool {
		return trade.Side == types.PurchaseTypeSell
	})
}

func finite(value float64) float64 {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}

	return value
}
