package engine

import (
	"testing"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/mocks"
	"github.com/stretchr/testify/suite"
)

type BacktestMarkerTestSuite struct {
	suite.Suite
	marker *BacktestMarker
}

func TestBacktestMarkerSuite(t *testing.T) {
	suite.Run(t, new(BacktestMarkerTestSuite))
}

func (suite *BacktestMarkerTestSuite) SetupTest() {
	suite.marker = NewBacktestMarker()
}

func (suite *BacktestMarkerTestSuite) TestMarkAppearance() {
	bar := mocks.BarsFromCloses("AAPL", 42)[0]

	tests := []struct {
		name    string
		signal  types.SignalType
		outcome types.MarkOutcome
		color   types.MarkColor
		shape   types.MarkShape
	}{
		{"executed buy", types.SignalTypeBuy, types.MarkOutcomeExecuted, types.MarkColorGreen, types.MarkShapeTriangle},
		{"executed sell", types.SignalTypeSell, types.MarkOutcomeExecuted, types.MarkColorRed, types.MarkShapeTriangle},
		{"buy without cash", types.SignalTypeBuy, types.MarkOutcomeSkippedInsufficientCash, types.MarkColorOrange, types.MarkShapeCircle},
		{"buy while holding", types.SignalTypeBuy, types.MarkOutcomeSkippedHolding, types.MarkColorYellow, types.MarkShapeCircle},
		{"sell while flat", types.SignalTypeSell, types.MarkOutcomeSkippedFlat, types.MarkColorYellow, types.MarkShapeCircle},
	}

	for i, tc := range tests {
		suite.Run(tc.name, func() {
			suite.marker.Mark(bar, i, types.Signal{Type: tc.signal, Reason: "because"}, tc.outcome)

			marks := suite.marker.GetMarks()
			mark := marks[len(marks)-1]

			suite.Equal(i, mark.BarIndex)
			suite.Equal("AAPL", mark.Symbol)
			suite.Equal(42.0, mark.Price)
			suite.Equal(bar.Time, mark.Time)
			suite.Equal(tc.signal, mark.Signal)
			suite.Equal(tc.outcome, mark.Outcome)
			suite.Equal(tc.color, mark.Color)
			suite.Equal(tc.shape, mark.Shape)
			suite.Equal("because", mark.Message)
			suite.Contains(mark.Title, string(tc.outcome))
		})
	}

	suite.Len(suite.marker.GetMarks(), len(tests))
}

func (suite *BacktestMarkerTestSuite) TestCleanup() {
	bar := mocks.BarsFromCloses("AAPL", 1)[0]
	suite.marker.Mark(bar, 0, types.Signal{Type: types.SignalTypeBuy}, types.MarkOutcomeExecuted)

	marks := suite.marker.GetMarks()
	marks[0].Price = 100
	suite.Equal(1.0, suite.marker.GetMarks()[0].Price)

	suite.marker.Cleanup()
	suite.Empty(suite.marker.GetMarks())
}
