package engine

import (
	"context"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/datasource"
)

// Lifecycle callback types for backtest phases
// All callbacks with error return can abort execution if they return an error.
// When the engine runs jobs in parallel, callbacks may be invoked from several goroutines.

// OnBacktestStartCallback is called when the entire backtest begins.
type OnBacktestStartCallback func(totalJobs int, totalSymbols int, totalStrategies int) error

// OnBacktestEndCallback is called when the entire backtest completes (always called via defer).
type OnBacktestEndCallback func(err error)

// OnRunStartCallback is called when one symbol and strategy combination starts.
// runID is a unique identifier for this run, generated before processing starts.
type OnRunStartCallback func(runID string, jobIndex int, symbol string, strategyName string, totalBars int) error

// OnRunEndCallback is called when one symbol and strategy combination ends.
type OnRunEndCallback func(runID string, jobIndex int, symbol string, strategyName string, resultFolderPath string)

// OnProcessDataCallback is called for each bar processed.
type OnProcessDataCallback func(current int, total int) error

// LifecycleCallbacks holds all lifecycle callback functions for the backtest engine.
// All fields are pointers - nil means no callback will be invoked.
type LifecycleCallbacks struct {
	OnBacktestStart *OnBacktestStartCallback
	OnBacktestEnd   *OnBacktestEndCallback
	OnRunStart      *OnRunStartCallback
	OnRunEnd        *OnRunEndCallback
	OnProcessData   *OnProcessDataCallback
}

type Engine interface {
	// Initialize the engine with the given YAML configuration.
	Initialize(config string) error
	// SetSymbols sets the symbols every configured strategy is evaluated on.
	SetSymbols(symbols []string) error
	// SetResultsFolder sets the output directory for saving backtest results.
	// The results folder will be structured as: <strategy_name>/<symbol>
	SetResultsFolder(folder string) error
	// SetDataSource sets the bar source for the engine.
	SetDataSource(dataSource datasource.DataSource) error
	// Run evaluates every strategy on every symbol.
	// The context can be used to cancel the backtest before a run starts.
	// Use LifecycleCallbacks to receive notifications at different phases of the backtest.
	Run(ctx context.Context, callbacks LifecycleCallbacks) error
	// GetConfigSchema returns the schema of the engine configuration
	GetConfigSchema() (string, error)
}
