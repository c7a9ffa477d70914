package engine

import (
	"testing"

	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type BacktestStateTestSuite struct {
	suite.Suite
	state *BacktestState
}

func TestBacktestStateSuite(t *testing.T) {
	suite.Run(t, new(BacktestStateTestSuite))
}

func (suite *BacktestStateTestSuite) SetupTest() {
	suite.state = NewBacktestState("AAPL", decimal.NewFromInt(10000))
}

func buyPlan(price, quantity, cost int64) commission_fee.TradePlan {
	return commission_fee.TradePlan{
		Executable: true,
		Side:       types.PurchaseTypeBuy,
		Price:      decimal.NewFromInt(price),
		Quantity:   decimal.NewFromInt(quantity),
		Notional:   decimal.NewFromInt(price * quantity),
		Cost:       decimal.NewFromInt(cost),
	}
}

func sellPlan(price, quantity, cost int64) commission_fee.TradePlan {
	plan := buyPlan(price, quantity, cost)
	plan.Side = types.PurchaseTypeSell

	return plan
}

func (suite *BacktestStateTestSuite) TestInitialState() {
	suite.True(suite.state.Cash().Equal(decimal.NewFromInt(10000)))
	suite.True(suite.state.Equity().Equal(decimal.NewFromInt(10000)))
	suite.True(suite.state.TotalFees().IsZero())

	position := suite.state.GetPosition()
	suite.True(position.IsFlat())
	suite.Equal("AAPL", position.Symbol)
	suite.Empty(suite.state.GetAllTrades())
	suite.Empty(suite.state.GetEquityCurve())
}

func (suite *BacktestStateTestSuite) TestBuyThenSell() {
	bars := mocks.BarsFromCloses("AAPL", 100, 110)

	suite.state.Mark(decimal.NewFromInt(100))
	buy := suite.state.ExecuteBuy(bars[0], 0, buyPlan(100, 50, 2), "entry")
	suite.state.RecordEquity(bars[0].Time)

	suite.Equal(types.PurchaseTypeBuy, buy.Side)
	suite.Equal(50.0, buy.Quantity)
	suite.Equal(2.0, buy.Fee)
	suite.Equal("entry", buy.Reason)
	suite.True(suite.state.Cash().Equal(decimal.NewFromInt(4998)))
	suite.True(suite.state.Equity().Equal(decimal.NewFromInt(9998)))

	position := suite.state.GetPosition()
	suite.True(position.Quantity.Equal(decimal.NewFromInt(50)))
	suite.True(position.EntryFees.Equal(decimal.NewFromInt(2)))
	suite.Equal(0, position.OpenBarIndex)

	suite.state.Mark(decimal.NewFromInt(110))
	suite.True(suite.state.GetPosition().UnrealizedPnL.Equal(decimal.NewFromInt(500)))

	sell := suite.state.ExecuteSell(bars[1], 1, sellPlan(110, 50, 3), "exit")
	suite.state.RecordEquity(bars[1].Time)

	// (110 - 100) * 50 - 3 - 2
	suite.InDelta(495.0, sell.RealizedProfit, 1e-9)
	suite.Equal(1, sell.BarIndex)
	suite.True(suite.state.Cash().Equal(decimal.NewFromInt(10495)))
	suite.True(suite.state.TotalFees().Equal(decimal.NewFromInt(5)))
	position = suite.state.GetPosition()
	suite.True(position.IsFlat())

	curve := suite.state.GetEquityCurve()
	suite.Require().Len(curve, 2)
	suite.Equal(9998.0, curve[0].Equity)
	suite.Equal(10495.0, curve[1].Equity)
	suite.Len(suite.state.GetAllTrades(), 2)
}

func (suite *BacktestStateTestSuite) TestAccessorsReturnCopies() {
	bar := mocks.BarsFromCloses("AAPL", 100)[0]
	suite.state.Mark(decimal.NewFromInt(100))
	suite.state.ExecuteBuy(bar, 0, buyPlan(100, 1, 0), "")
	suite.state.RecordEquity(bar.Time)

	trades := suite.state.GetAllTrades()
	trades[0].Quantity = 999
	suite.Equal(1.0, suite.state.GetAllTrades()[0].Quantity)

	curve := suite.state.GetEquityCurve()
	curve[0].Equity = -1
	suite.Equal(10000.0, suite.state.GetEquityCurve()[0].Equity)
}

func (suite *BacktestStateTestSuite) TestInitializeResets() {
	bar := mocks.BarsFromCloses("AAPL", 100)[0]
	suite.state.Mark(decimal.NewFromInt(100))
	suite.state.ExecuteBuy(bar, 0, buyPlan(100, 10, 1), "")
	suite.state.RecordEquity(bar.Time)

	suite.state.Initialize()

	suite.True(suite.state.Cash().Equal(decimal.NewFromInt(10000)))
	suite.True(suite.state.TotalFees().IsZero())
	position := suite.state.GetPosition()
	suite.True(position.IsFlat())
	suite.Empty(suite.state.GetAllTrades())
	suite.Empty(suite.state.GetEquityCurve())
	suite.True(suite.state.InitialCapital().Equal(decimal.NewFromInt(10000)))
}
