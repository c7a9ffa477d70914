package engine

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

// UtilsTestSuite is a test suite for utils package
type UtilsTestSuite struct {
	suite.Suite
}

// TestUtilsSuite runs the test suite
func TestUtilsSuite(t *testing.T) {
	suite.Run(t, new(UtilsTestSuite))
}

func (suite *UtilsTestSuite) TestGetResultFolder() {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		strategyName string
		symbol       string
		startTime    optional.Option[time.Time]
		endTime      optional.Option[time.Time]
		expectedPath string
	}{
		{
			name:         "Basic case without time range",
			strategyName: "MA(20)",
			symbol:       "AAPL",
			startTime:    optional.None[time.Time](),
			endTime:      optional.None[time.Time](),
			expectedPath: filepath.Join("/results", "MA_20", "AAPL"),
		},
		{
			name:         "With start and end time",
			strategyName: "MA_CROSS(5,20)",
			symbol:       "00700",
			startTime:    optional.Some(start),
			endTime:      optional.Some(end),
			expectedPath: filepath.Join("/results", "MA_CROSS_5_20", "20230101_20231231", "00700"),
		},
		{
			name:         "Only start time",
			strategyName: "BOLL(20,2)",
			symbol:       "SPY",
			startTime:    optional.Some(start),
			endTime:      optional.None[time.Time](),
			expectedPath: filepath.Join("/results", "BOLL_20_2", "20230101_all", "SPY"),
		},
		{
			name:         "Only end time",
			strategyName: "RSI(14,30,70)",
			symbol:       "BRK/B",
			startTime:    optional.None[time.Time](),
			endTime:      optional.Some(end),
			expectedPath: filepath.Join("/results", "RSI_14_30_70", "all_20231231", "BRK_B"),
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			config := EmptyConfig()
			config.StartTime = tc.startTime
			config.EndTime = tc.endTime

			suite.Equal(tc.expectedPath, getResultFolder("/results", tc.strategyName, tc.symbol, config))
		})
	}
}
