package types

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type StatisticsTestSuite struct {
	suite.Suite
	tempDir string
}

func TestStatisticsSuite(t *testing.T) {
	suite.Run(t, new(StatisticsTestSuite))
}

func (suite *StatisticsTestSuite) SetupTest() {
	tempDir, err := os.MkdirTemp("", "statistics_test")
	suite.NoError(err)
	suite.tempDir = tempDir
}

func (suite *StatisticsTestSuite) TearDownTest() {
	os.RemoveAll(suite.tempDir)
}

func (suite *StatisticsTestSuite) TestWriteAndReadRunSummaries() {
	summaries := []RunSummary{
		{
			ID:            "run-1",
			Timestamp:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			Symbol:        "00700",
			Strategy:      StrategyInfo{Type: StrategyTypeRSI, Name: "RSI"},
			MarketProfile: MarketProfileHK,
			Granularity:   GranularityOneDay,
			TradeResult: TradeResult{
				NumberOfTrades:        4,
				NumberOfWinningTrades: 1,
				NumberOfLosingTrades:  1,
				WinRate:               0.5,
				MaxDrawdown:           0.12,
			},
			TotalFees:        42.5,
			TradeHoldingTime: TradeHoldingTime{Min: 2, Max: 10, Avg: 6},
			BuyAndHoldReturn: 0.08,
		},
	}

	filePath := filepath.Join(suite.tempDir, "stats.yaml")
	suite.NoError(WriteRunSummaries(filePath, summaries))

	loaded, err := ReadRunSummaries(filePath)
	suite.NoError(err)
	suite.Require().Len(loaded, 1)
	suite.Equal(summaries[0], loaded[0])
}

func (suite *StatisticsTestSuite) TestWriteRunSummariesInvalidPath() {
	err := WriteRunSummaries(filepath.Join(suite.tempDir, "missing", "stats.yaml"), nil)
	suite.Error(err)
}

func (suite *StatisticsTestSuite) TestSellTrades() {
	result := BacktestResult{
		Trades: []TradeRecord{
			{Side: PurchaseTypeBuy},
			{Side: PurchaseTypeSell, RealizedProfit: 5},
			{Side: PurchaseTypeBuy},
		},
	}

	sells := result.SellTrades()
	suite.Require().Len(sells, 1)
	suite.Equal(5.0, sells[0].RealizedProfit)
}
