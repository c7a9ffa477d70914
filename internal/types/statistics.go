package types

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// EquityPoint is the total equity after processing one bar.
type EquityPoint struct {
	Timestamp time.Time `yaml:"timestamp" json:"timestamp" csv:"timestamp"`
	Equity    float64   `yaml:"equity" json:"equity" csv:"equity"`
}

// BacktestResult is computed once at the end of a run and is read-only afterwards.
// It carries no wall-clock or random data so that identical inputs give identical results.
type BacktestResult struct {
	Symbol         string            `yaml:"symbol" json:"symbol"`
	Strategy       StrategyType      `yaml:"strategy" json:"strategy"`
	MarketProfile  MarketProfileName `yaml:"market_profile" json:"market_profile"`
	Granularity    Granularity       `yaml:"granularity" json:"granularity"`
	InitialCapital float64           `yaml:"initial_capital" json:"initial_capital"`
	FinalCapital   float64           `yaml:"final_capital" json:"final_capital"`
	TotalReturn    float64           `yaml:"total_return" json:"total_return"`
	MaxDrawdown    float64           `yaml:"max_drawdown" json:"max_drawdown"`
	SharpeRatio    float64           `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	WinRate        float64           `yaml:"win_rate" json:"win_rate"`
	Trades         []TradeRecord     `yaml:"trades" json:"trades"`
	EquityCurve    []EquityPoint     `yaml:"equity_curve" json:"equity_curve"`
}

// SellTrades returns the closing fills of the run.
func (r *BacktestResult) SellTrades() []TradeRecord {
	sells := make([]TradeRecord, 0, len(r.Trades)/2+1)

	for _, trade := range r.Trades {
		if trade.Side == PurchaseTypeSell {
			sells = append(sells, trade)
		}
	}

	return sells
}

type TradeHoldingTime struct {
	// Minimum holding time of a closed trade in bars
	Min int `yaml:"min" json:"min"`
	// Maximum holding time of a closed trade in bars
	Max int `yaml:"max" json:"max"`
	// Average holding time of a closed trade in bars
	Avg int `yaml:"avg" json:"avg"`
}

type TradeResult struct {
	// Count of all fills, buys and sells.
	NumberOfTrades int `yaml:"number_of_trades" json:"number_of_trades"`
	// Count of sells with positive realized profit.
	NumberOfWinningTrades int `yaml:"number_of_winning_trades" json:"number_of_winning_trades"`
	// Count of sells with negative realized profit.
	NumberOfLosingTrades int     `yaml:"number_of_losing_trades" json:"number_of_losing_trades"`
	WinRate              float64 `yaml:"win_rate" json:"win_rate"`
	MaxDrawdown          float64 `yaml:"max_drawdown" json:"max_drawdown"`
}

type TradePnl struct {
	// Sum of the realized profit of all sells.
	RealizedPnL float64 `yaml:"realized_pnl" json:"realized_pnl"`
	// Profit of the position still open after the last bar.
	UnrealizedPnL float64 `yaml:"unrealized_pnl" json:"unrealized_pnl"`
	TotalPnL      float64 `yaml:"total_pnl" json:"total_pnl"`
	MaximumLoss   float64 `yaml:"maximum_loss" json:"maximum_loss"`
	MaximumProfit float64 `yaml:"maximum_profit" json:"maximum_profit"`
}

// StrategyInfo describes the strategy that produced a run.
type StrategyInfo struct {
	Type       StrategyType `yaml:"type" json:"type"`
	Name       string       `yaml:"name" json:"name"`
	Parameters string       `yaml:"parameters" json:"parameters"`
}

// RunSummary is the host-facing report of one run written to stats.yaml.
type RunSummary struct {
	// ID is the unique identifier for this backtest run.
	ID string `yaml:"id" json:"id"`
	// Timestamp is when this backtest run was executed.
	Timestamp     time.Time         `yaml:"timestamp" json:"timestamp"`
	// EngineVersion is the version of the engine that wrote the run.
	EngineVersion string            `yaml:"engine_version" json:"engine_version"`
	Symbol        string            `yaml:"symbol" json:"symbol"`
	Strategy      StrategyInfo      `yaml:"strategy" json:"strategy"`
	MarketProfile MarketProfileName `yaml:"market_profile" json:"market_profile"`
	Granularity   Granularity       `yaml:"granularity" json:"granularity"`
	NumberOfBars  int               `yaml:"number_of_bars" json:"number_of_bars"`

	InitialCapital float64 `yaml:"initial_capital" json:"initial_capital"`
	FinalCapital   float64 `yaml:"final_capital" json:"final_capital"`
	TotalReturn    float64 `yaml:"total_return" json:"total_return"`
	SharpeRatio    float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`

	TradeResult      TradeResult      `yaml:"trade_result" json:"trade_result"`
	TotalFees        float64          `yaml:"total_fees" json:"total_fees"`
	TradeHoldingTime TradeHoldingTime `yaml:"trade_holding_time" json:"trade_holding_time"`
	TradePnl         TradePnl         `yaml:"trade_pnl" json:"trade_pnl"`
	// Return of buying at the first close and holding until the last close, before costs.
	BuyAndHoldReturn float64 `yaml:"buy_and_hold_return" json:"buy_and_hold_return"`

	TradesFilePath string `yaml:"trades_file_path" json:"trades_file_path"`
	EquityFilePath string `yaml:"equity_file_path" json:"equity_file_path"`
	MarksFilePath  string `yaml:"marks_file_path" json:"marks_file_path"`
	DataPath       string `yaml:"data_path" json:"data_path"`
}

func WriteRunSummaries(path string, summaries []RunSummary) error {
	data, err := yaml.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("failed to marshal run summaries to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run summaries to file: %w", err)
	}

	return nil
}

// ReadRunSummaries loads a stats file written by WriteRunSummaries.
func ReadRunSummaries(path string) ([]RunSummary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run summaries: %w", err)
	}

	var summaries []RunSummary
	if err := yaml.Unmarshal(data, &summaries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run summaries: %w", err)
	}

	return summaries, nil
}
