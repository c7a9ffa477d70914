package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine"
	enginev1 "github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/datasource"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/rxtech-lab/argo-backtest/pkg/utils"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// runAction runs every configured strategy on every symbol of the data file
// and prints a summary table of the written results.
func runAction(ctx context.Context, cmd *cli.Command) error {
	level, err := logger.ParseLevel(cmd.String("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	log, err := logger.NewLoggerWithLevel(level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	config, err := os.ReadFile(cmd.String("config"))
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}

	backtester := enginev1.NewBacktestEngineV1(log)
	if err := backtester.Initialize(string(config)); err != nil {
		return err
	}

	if parallelism := cmd.Int("parallelism"); parallelism > 0 {
		engineConfig := backtester.Config()
		engineConfig.Parallelism = int(parallelism)

		if err := backtester.SetConfig(engineConfig); err != nil {
			return err
		}
	}

	source, err := datasource.NewDuckDBDataSource(cmd.String("data"), log)
	if err != nil {
		return err
	}
	defer source.Close()

	symbols := cmd.StringSlice("symbol")
	if len(symbols) == 0 {
		symbols, err = source.Symbols(ctx)
		if err != nil {
			return err
		}
	}

	resultsFolder := cmd.String("results")

	if err := backtester.SetSymbols(symbols); err != nil {
		return err
	}

	if err := backtester.SetResultsFolder(resultsFolder); err != nil {
		return err
	}

	if err := backtester.SetDataSource(source); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := backtester.Run(ctx, progressCallbacks(cmd.Root().ErrWriter, log)); err != nil {
		return err
	}

	summaries, err := enginev1.LoadRunSummaries(resultsFolder)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, renderSummaries(summaries, version.GetVersion()))

	return nil
}

// progressCallbacks reports finished runs on a progress bar written to w.
func progressCallbacks(w io.Writer, log *logger.Logger) engine.LifecycleCallbacks {
	var bar *progressbar.ProgressBar

	onStart := engine.OnBacktestStartCallback(func(totalJobs, totalSymbols, totalStrategies int) error {
		bar = progressbar.NewOptions(totalJobs,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(fmt.Sprintf("%d strategies x %d symbols", totalStrategies, totalSymbols)),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)

		return nil
	})
	onRunEnd := engine.OnRunEndCallback(func(runID string, jobIndex int, symbol, strategyName, resultFolderPath string) {
		bar.Add(1)
	})
	onEnd := engine.OnBacktestEndCallback(func(err error) {
		if bar != nil {
			bar.Finish()
		}

		if err != nil {
			log.Error("Backtest failed", zap.Error(err))
		}
	})

	return engine.LifecycleCallbacks{
		OnBacktestStart: &onStart,
		OnRunEnd:        &onRunEnd,
		OnBacktestEnd:   &onEnd,
	}
}

// reportAction prints the results stored in a results folder.
func reportAction(_ context.Context, cmd *cli.Command) error {
	summaries, err := enginev1.LoadRunSummaries(cmd.String("results"))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, renderSummaries(summaries, version.GetVersion()))

	return nil
}

// strategiesAction lists the built-in strategies with their default parameters.
func strategiesAction(_ context.Context, cmd *cli.Command) error {
	registry := strategy.DefaultRegistry()

	if cmd.Bool("schema") {
		schema, err := utils.GetSchemaFromConfig(strategy.Config{})
		if err != nil {
			return fmt.Errorf("failed to generate strategy schema: %w", err)
		}

		fmt.Fprintln(cmd.Root().Writer, schema)

		return nil
	}

	fmt.Fprintln(cmd.Root().Writer, renderStrategies(registry))

	return nil
}

func schemaAction(_ context.Context, cmd *cli.Command) error {
	schema, err := enginev1.NewBacktestEngineV1(nil).GetConfigSchema()
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.Root().Writer, schema)

	return nil
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "backtest",
		Usage:   "Evaluate technical-indicator strategies on historical bars",
		Version: version.GetVersion(),
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the configured strategies and write results",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "config",
						Aliases:  []string{"c"},
						Usage:    "Path to the backtest configuration YAML",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "Path to a parquet or CSV file with time, symbol, open, high, low, close and volume columns",
						Required: true,
					},
					&cli.StringSliceFlag{
						Name:    "symbol",
						Aliases: []string{"s"},
						Usage:   "Symbol to backtest, repeatable. Defaults to every symbol in the data file",
					},
					&cli.StringFlag{
						Name:    "results",
						Aliases: []string{"r"},
						Usage:   "Results folder, replaced on every run",
						Value:   "results",
					},
					&cli.IntFlag{
						Name:    "parallelism",
						Aliases: []string{"p"},
						Usage:   "Override the number of runs executed at the same time",
					},
					&cli.StringFlag{
						Name:  "log-level",
						Usage: "Log level: debug, info, warn or error",
						Value: "warn",
					},
				},
				Action: runAction,
			},
			{
				Name:  "report",
				Usage: "Print the results stored in a results folder",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "results",
						Aliases: []string{"r"},
						Usage:   "Results folder",
						Value:   "results",
					},
				},
				Action: reportAction,
			},
			{
				Name:  "strategies",
				Usage: "List the built-in strategies and their defaults",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "schema",
						Usage: "Print the JSON schema of a strategy entry instead",
					},
				},
				Action: strategiesAction,
			},
			{
				Name:   "schema",
				Usage:  "Print the JSON schema of the backtest configuration",
				Action: schemaAction,
			},
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
