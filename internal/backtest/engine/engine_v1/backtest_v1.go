package engine

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/stats"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"
)

// Job is one independent backtest: a symbol evaluated with one strategy.
// When Bars is nil the bars are loaded from the engine's data source.
type Job struct {
	Symbol   string
	Strategy strategy.Config
	Bars     []types.Bar
}

// JobResult is the outcome of a Job.
type JobResult struct {
	RunID        string
	Job          Job
	Result       types.BacktestResult
	Summary      types.RunSummary
	Marks        []types.Mark
	ResultFolder string
}

var _ engine.Engine = (*BacktestEngineV1)(nil)

type BacktestEngineV1 struct {
	config        BacktestEngineV1Config
	registry      *strategy.Registry
	symbols       []string
	resultsFolder string
	log           *logger.Logger
	datasource    datasource.DataSource
	writer        *ResultWriter
}

// NewBacktestEngineV1 creates an engine with the default configuration and the
// built-in strategies. A nil logger disables logging.
func NewBacktestEngineV1(log *logger.Logger) *BacktestEngineV1 {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &BacktestEngineV1{
		config:        EmptyConfig(),
		registry:      strategy.DefaultRegistry(),
		symbols:       nil,
		resultsFolder: "",
		log:           log,
		datasource:    nil,
		writer:        NewResultWriter(log),
	}
}

// RunBacktest evaluates one strategy on bars of symbol with the default market
// profile and risk free rate. It performs no I/O and is deterministic.
func RunBacktest(symbol string, bars []types.Bar, config strategy.Config, initialCapital float64, granularity types.Granularity) (types.BacktestResult, error) {
	return NewBacktestEngineV1(nil).RunBacktest(symbol, bars, config, initialCapital, granularity)
}

// Initialize implements engine.Engine.
func (b *BacktestEngineV1) Initialize(config string) error {
	var parsed BacktestEngineV1Config

	if err := yaml.Unmarshal([]byte(config), &parsed); err != nil {
		b.log.Error("Failed to parse config", zap.Error(err))

		return errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to parse config", err)
	}

	parsed = parsed.WithDefaults()
	if err := parsed.Validate(b.registry); err != nil {
		b.log.Error("Invalid config", zap.Error(err))

		return err
	}

	b.config = parsed
	b.log.Debug("Backtest engine initialized",
		zap.Float64("initial_capital", parsed.InitialCapital),
		zap.String("market_profile", string(parsed.MarketProfile)),
		zap.String("granularity", string(parsed.Granularity)),
		zap.Int("strategies", len(parsed.Strategies)),
	)

	return nil
}

// SetConfig replaces the configuration after validating it.
func (b *BacktestEngineV1) SetConfig(config BacktestEngineV1Config) error {
	config = config.WithDefaults()
	if err := config.Validate(b.registry); err != nil {
		return err
	}

	b.config = config

	return nil
}

func (b *BacktestEngineV1) Config() BacktestEngineV1Config {
	return b.config
}

// SetRegistry replaces the strategy registry, for hosts that register their own families.
func (b *BacktestEngineV1) SetRegistry(registry *strategy.Registry) {
	b.registry = registry
}

// SetSymbols implements engine.Engine.
func (b *BacktestEngineV1) SetSymbols(symbols []string) error {
	b.symbols = symbols
	b.log.Debug("Symbols set", zap.Strings("symbols", symbols))

	return nil
}

// SetResultsFolder implements engine.Engine.
func (b *BacktestEngineV1) SetResultsFolder(folder string) error {
	b.resultsFolder = folder
	b.log.Debug("Results folder set",
		zap.String("folder", folder),
	)

	return nil
}

// SetDataSource implements engine.Engine.
func (b *BacktestEngineV1) SetDataSource(datasource datasource.DataSource) error {
	b.datasource = datasource

	return nil
}

// GetConfigSchema implements engine.Engine.
func (b *BacktestEngineV1) GetConfigSchema() (string, error) {
	config := b.config

	schema, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeBacktestConfigError, "failed to generate schema", err)
	}

	return schema, nil
}

// RunBacktest evaluates config on bars of symbol. Configuration problems are
// returned as errors; insufficient data, skipped trades and empty input are not.
func (b *BacktestEngineV1) RunBacktest(symbol string, bars []types.Bar, config strategy.Config, initialCapital float64, granularity types.Granularity) (types.BacktestResult, error) {
	simulator, err := b.newSimulator(symbol, bars, config, initialCapital, granularity)
	if err != nil {
		return types.BacktestResult{}, err
	}

	return simulate(simulator, bars, nil)
}

// Jobs builds one job per configured symbol and strategy.
func (b *BacktestEngineV1) Jobs() []Job {
	jobs := make([]Job, 0, len(b.symbols)*len(b.config.Strategies))

	for _, strategyConfig := range b.config.Strategies {
		for _, symbol := range b.symbols {
			jobs = append(jobs, Job{Symbol: symbol, Strategy: strategyConfig})
		}
	}

	return jobs
}

// Run implements engine.Engine. It evaluates every configured strategy on every
// symbol and writes the results under the results folder.
func (b *BacktestEngineV1) Run(ctx context.Context, callbacks engine.LifecycleCallbacks) (err error) {
	if callbacks.OnBacktestEnd != nil {
		defer func() {
			(*callbacks.OnBacktestEnd)(err)
		}()
	}

	if err := b.preRunCheck(); err != nil {
		return err
	}

	jobs := b.Jobs()

	if callbacks.OnBacktestStart != nil {
		if err := (*callbacks.OnBacktestStart)(len(jobs), len(b.symbols), len(b.config.Strategies)); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestCancelled, "backtest aborted by start callback", err)
		}
	}

	// stale results would be picked up by LoadRunSummaries
	if err := os.RemoveAll(b.resultsFolder); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to remove previous results", err)
	}

	if err := os.MkdirAll(b.resultsFolder, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create results folder", err)
	}

	_, err = b.RunBatch(ctx, jobs, callbacks)

	return err
}

// RunBatch runs independent jobs with at most Parallelism of them at a time.
// Results keep the order of jobs. The first failing job cancels the others.
func (b *BacktestEngineV1) RunBatch(ctx context.Context, jobs []Job, callbacks engine.LifecycleCallbacks) ([]JobResult, error) {
	results := make([]JobResult, len(jobs))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(max(1, b.config.Parallelism))

	for i, job := range jobs {
		group.Go(func() error {
			result, err := b.runJob(groupCtx, i, job, callbacks)
			if err != nil {
				return err
			}

			results[i] = result

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// RunJob runs a single job without lifecycle callbacks.
func (b *BacktestEngineV1) RunJob(ctx context.Context, job Job) (JobResult, error) {
	return b.runJob(ctx, 0, job, engine.LifecycleCallbacks{})
}

func (b *BacktestEngineV1) runJob(ctx context.Context, index int, job Job, callbacks engine.LifecycleCallbacks) (JobResult, error) {
	if err := ctx.Err(); err != nil {
		return JobResult{}, errors.Wrap(errors.ErrCodeBacktestCancelled, "backtest cancelled", err)
	}

	bars, err := b.loadBars(ctx, job)
	if err != nil {
		return JobResult{}, err
	}

	simulator, err := b.newSimulator(job.Symbol, bars, job.Strategy, b.config.InitialCapital, b.config.Granularity)
	if err != nil {
		return JobResult{}, err
	}

	resolved, err := b.registry.Resolve(job.Strategy)
	if err != nil {
		return JobResult{}, err
	}

	runID := uuid.New().String()
	strategyName := simulator.generator.Name()

	if callbacks.OnRunStart != nil {
		if err := (*callbacks.OnRunStart)(runID, index, job.Symbol, strategyName, len(bars)); err != nil {
			return JobResult{}, errors.Wrap(errors.ErrCodeBacktestCancelled, "run aborted by start callback", err)
		}
	}

	b.log.Info("Running backtest",
		zap.String("run_id", runID),
		zap.String("symbol", job.Symbol),
		zap.String("strategy", strategyName),
		zap.Int("bars", len(bars)),
	)

	result, err := simulate(simulator, bars, callbacks.OnProcessData)
	if err != nil {
		return JobResult{}, err
	}

	summary := stats.Summarize(result, types.StrategyInfo{
		Type:       simulator.generator.Type(),
		Name:       strategyName,
		Parameters: resolved.String(),
	}, bars)
	summary.ID = runID
	summary.Timestamp = time.Now()
	summary.EngineVersion = version.GetVersion()

	jobResult := JobResult{
		RunID:   runID,
		Job:     job,
		Result:  result,
		Summary: summary,
		Marks:   simulator.Marks(),
	}

	if b.resultsFolder != "" {
		folder := fmt.Sprintf("%s_%s", strategyName, resolved.SignalMode)
		jobResult.ResultFolder = getResultFolder(b.resultsFolder, folder, job.Symbol, b.config)

		summary, err = b.writer.Write(jobResult.ResultFolder, result, jobResult.Marks, summary)
		if err != nil {
			return JobResult{}, err
		}

		jobResult.Summary = summary
	}

	b.log.Info("Backtest finished",
		zap.String("run_id", runID),
		zap.String("symbol", job.Symbol),
		zap.String("strategy", strategyName),
		zap.Int("trades", len(result.Trades)),
		zap.Float64("total_return", result.TotalReturn),
	)

	if callbacks.OnRunEnd != nil {
		(*callbacks.OnRunEnd)(runID, index, job.Symbol, strategyName, jobResult.ResultFolder)
	}

	return jobResult, nil
}

func (b *BacktestEngineV1) loadBars(ctx context.Context, job Job) ([]types.Bar, error) {
	if job.Bars != nil {
		return job.Bars, nil
	}

	if b.datasource == nil {
		return nil, errors.New(errors.ErrCodeBacktestNoDatasource, "no datasource set")
	}

	return b.datasource.GetBars(ctx, job.Symbol, b.config.StartTime, b.config.EndTime, b.config.Granularity)
}

// newSimulator validates the inputs of a run and builds the state it owns:
// a fresh generator, the cost model of the market profile, and a ledger.
func (b *BacktestEngineV1) newSimulator(symbol string, bars []types.Bar, config strategy.Config, initialCapital float64, granularity types.Granularity) (*Simulator, error) {
	if !(initialCapital > 0) || math.IsInf(initialCapital, 0) {
		return nil, errors.Newf(errors.ErrCodeInvalidCapital, "initial capital must be positive, got %v", initialCapital)
	}

	if err := granularity.Validate(); err != nil {
		return nil, err
	}

	generator, err := b.registry.New(config)
	if err != nil {
		b.log.Error("Failed to create strategy", zap.String("type", string(config.Type)), zap.Error(err))

		return nil, err
	}

	profileName := config.MarketProfile
	if profileName == "" {
		profileName = b.config.MarketProfile
	}

	costModel, err := commission_fee.GetMarketProfile(profileName)
	if err != nil {
		return nil, err
	}

	if err := types.ValidateBarSequence(symbol, bars); err != nil {
		return nil, err
	}

	return NewSimulator(SimulatorParams{
		Symbol:         symbol,
		Generator:      generator,
		CostModel:      costModel,
		InitialCapital: decimal.NewFromFloat(initialCapital),
		Granularity:    granularity,
		RiskFreeRate:   b.config.RiskFreeRate,
		Logger:         b.log,
	})
}

// simulate runs the bar loop. onProcessData is the only host hook on the hot path.
func simulate(simulator *Simulator, bars []types.Bar, onProcessData *engine.OnProcessDataCallback) (types.BacktestResult, error) {
	if err := simulator.Initialize(); err != nil {
		return types.BacktestResult{}, err
	}

	for i, bar := range bars {
		if _, err := simulator.Step(bar); err != nil {
			return types.BacktestResult{}, err
		}

		if onProcessData != nil {
			if err := (*onProcessData)(i+1, len(bars)); err != nil {
				return types.BacktestResult{}, errors.Wrap(errors.ErrCodeBacktestCancelled, "run aborted by progress callback", err)
			}
		}
	}

	return simulator.Finalize()
}

func (b *BacktestEngineV1) preRunCheck() error {
	if len(b.config.Strategies) == 0 {
		b.log.Error("No strategies configured")

		return errors.New(errors.ErrCodeBacktestNoStrategies, "no strategies configured")
	}

	if len(b.symbols) == 0 {
		b.log.Error("No symbols set")

		return errors.New(errors.ErrCodeBacktestConfigError, "no symbols set")
	}

	if b.resultsFolder == "" {
		b.log.Error("No results folder set")

		return errors.New(errors.ErrCodeBacktestConfigError, "no results folder set")
	}

	if b.datasource == nil {
		b.log.Error("No datasource set")

		return errors.New(errors.ErrCodeBacktestNoDatasource, "no datasource set")
	}

	return nil
}
