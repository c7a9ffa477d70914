package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/version"
	"github.com/rxtech-lab/argo-backtest/mocks"
	"github.com/stretchr/testify/suite"
)

type BacktestCmdTestSuite struct {
	suite.Suite
	tempDir string
}

func TestBacktestCmdSuite(t *testing.T) {
	suite.Run(t, new(BacktestCmdTestSuite))
}

func (suite *BacktestCmdTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

// writeBarsCSV stores bars of every symbol in one CSV file.
func (suite *BacktestCmdTestSuite) writeBarsCSV(symbols ...string) string {
	var builder strings.Builder
	builder.WriteString("time,symbol,open,high,low,close,volume\n")

	for _, symbol := range symbols {
		config := mocks.DefaultConfig()
		config.Symbol = symbol
		config.Count = 200

		for _, bar := range mocks.NewDataGenerator(11).Generate(config) {
			fmt.Fprintf(&builder, "%s,%s,%g,%g,%g,%g,%g\n",
				bar.Time.Format("2006-01-02 15:04:05"), bar.Symbol, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
		}
	}

	path := filepath.Join(suite.tempDir, "bars.csv")
	suite.Require().NoError(os.WriteFile(path, []byte(builder.String()), 0644))

	return path
}

func (suite *BacktestCmdTestSuite) run(args ...string) (string, error) {
	var out bytes.Buffer

	app := newApp()
	app.Writer = &out
	app.ErrWriter = io.Discard

	err := app.Run(context.Background(), append([]string{"backtest"}, args...))

	return out.String(), err
}

func (suite *BacktestCmdTestSuite) TestRun() {
	data := suite.writeBarsCSV("AAPL", "MSFT")
	configPath := filepath.Join(suite.tempDir, "config.yaml")
	results := filepath.Join(suite.tempDir, "results")

	suite.Require().NoError(os.WriteFile(configPath, []byte(`
initial_capital: 100000
market_profile: ZERO
strategies:
  - type: MA_CROSS
  - type: RSI
`), 0644))

	out, err := suite.run("run", "-c", configPath, "-d", data, "-r", results, "-p", "2", "--log-level", "error")
	suite.Require().NoError(err)

	suite.Contains(out, "MA_CROSS(5,20)")
	suite.Contains(out, "RSI(14,30,70)")
	suite.Contains(out, "MSFT")
	suite.NotContains(out, "incompatible results")

	for _, folder := range []string{"MA_CROSS_5_20_cross", "RSI_14_30_70_level"} {
		for _, symbol := range []string{"AAPL", "MSFT"} {
			suite.FileExists(filepath.Join(results, folder, symbol, "stats.yaml"))
		}
	}

	report, err := suite.run("report", "-r", results)
	suite.Require().NoError(err)
	suite.Equal(out, report)
}

func (suite *BacktestCmdTestSuite) TestRunSelectedSymbol() {
	data := suite.writeBarsCSV("AAPL", "MSFT")
	configPath := filepath.Join(suite.tempDir, "config.yaml")
	results := filepath.Join(suite.tempDir, "results")

	suite.Require().NoError(os.WriteFile(configPath, []byte("initial_capital: 50000\nstrategies:\n  - type: BOLL\n"), 0644))

	out, err := suite.run("run", "-c", configPath, "-d", data, "-r", results, "-s", "MSFT", "--log-level", "error")
	suite.Require().NoError(err)

	suite.Contains(out, "BOLL(20,2)")
	suite.NotContains(out, "AAPL")
	suite.NoDirExists(filepath.Join(results, "BOLL_20_2_cross", "AAPL"))
}

func (suite *BacktestCmdTestSuite) TestRunInvalidConfig() {
	data := suite.writeBarsCSV("AAPL")
	configPath := filepath.Join(suite.tempDir, "config.yaml")
	suite.Require().NoError(os.WriteFile(configPath, []byte("initial_capital: 0\n"), 0644))

	_, err := suite.run("run", "-c", configPath, "-d", data, "-r", filepath.Join(suite.tempDir, "results"))
	suite.Error(err)

	_, err = suite.run("run", "-c", filepath.Join(suite.tempDir, "missing.yaml"), "-d", data)
	suite.ErrorContains(err, "failed to read config")
}

func (suite *BacktestCmdTestSuite) TestStrategies() {
	out, err := suite.run("strategies")
	suite.Require().NoError(err)

	for _, strategyType := range strategy.DefaultRegistry().List() {
		suite.Contains(out, string(strategyType))
	}

	suite.Contains(out, "fast=12 slow=26 signal=9 mode=cross")

	schema, err := suite.run("strategies", "--schema")
	suite.Require().NoError(err)
	suite.Contains(schema, "short_period")
	suite.Contains(schema, "k_multiplier")
}

func (suite *BacktestCmdTestSuite) TestSchema() {
	out, err := suite.run("schema")
	suite.Require().NoError(err)

	suite.Contains(out, "backtest-engine-v1-config")
	suite.Contains(out, "initial_capital")
}

func (suite *BacktestCmdTestSuite) TestRenderSummaries() {
	suite.Equal("no results", renderSummaries(nil, version.GetVersion()))

	summaries := []types.RunSummary{
		{
			EngineVersion: "v0.4.1",
			Symbol:        "AAPL",
			Strategy:      types.StrategyInfo{Name: "MA(20)"},
			MarketProfile: types.MarketProfileUS,
			TotalReturn:   0.1234,
			TradeResult:   types.TradeResult{NumberOfTrades: 6, WinRate: 0.5},
		},
		{
			EngineVersion: "v1.0.0",
			Symbol:        "MSFT",
			Strategy:      types.StrategyInfo{Name: "RSI(14,30,70)"},
			TotalReturn:   -0.05,
		},
	}

	out := renderSummaries(summaries, "v0.4.0")
	suite.Contains(out, "12.34%")
	suite.Contains(out, "-5.00%")
	suite.Contains(out, "50.00%")
	suite.Contains(out, "incompatible results")
	suite.Contains(out, "RSI(14,30,70) MSFT")
	suite.NotContains(out, "MA(20) AAPL:")
}
