package strategy

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type SignalGeneratorTestSuite struct {
	suite.Suite
	registry *Registry
}

func TestSignalGeneratorSuite(t *testing.T) {
	suite.Run(t, new(SignalGeneratorTestSuite))
}

func (suite *SignalGeneratorTestSuite) SetupTest() {
	suite.registry = DefaultRegistry()
}

func barsFromCloses(closes []float64) []types.Bar {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	bars := make([]types.Bar, len(closes))

	for i, c := range closes {
		bars[i] = types.Bar{
			Symbol: "AAPL",
			Time:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}

	return bars
}

func linear(n int, start, step float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = start + step*float64(i)
	}

	return closes
}

func repeat(n int, value float64) []float64 {
	return linear(n, value, 0)
}

// run feeds closes into g and returns the index of every BUY and SELL.
func run(g SignalGenerator, closes []float64) (buys, sells []int) {
	for i, bar := range barsFromCloses(closes) {
		switch g.Update(bar).Type {
		case types.SignalTypeBuy:
			buys = append(buys, i)
		case types.SignalTypeSell:
			sells = append(sells, i)
		}
	}

	return buys, sells
}

func (suite *SignalGeneratorTestSuite) newGenerator(config Config) SignalGenerator {
	g, err := suite.registry.New(config)
	suite.Require().NoError(err)

	return g
}

func (suite *SignalGeneratorTestSuite) TestNoSignalDuringWarmup() {
	closes := make([]float64, 200)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/3)
	}

	for _, strategyType := range suite.registry.List() {
		for _, mode := range []types.SignalMode{types.SignalModeCross, types.SignalModeLevel} {
			suite.Run(string(strategyType)+"/"+string(mode), func() {
				g := suite.newGenerator(Config{Type: strategyType, SignalMode: mode})
				warmup := g.WarmupPeriod()

				for i, bar := range barsFromCloses(closes[:warmup-1]) {
					signal := g.Update(bar)
					suite.Equal(types.SignalTypeNone, signal.Type, "bar %d", i)
					suite.Equal(g.Name(), signal.Name)
					suite.Equal(bar.Time, signal.Time)
				}
			})
		}
	}
}

func (suite *SignalGeneratorTestSuite) TestWarmupPeriods() {
	tests := map[types.StrategyType]int{
		types.StrategyTypeMA:       20,
		types.StrategyTypeMACross:  20,
		types.StrategyTypeDoubleMA: 20,
		types.StrategyTypeMACD:     34,
		types.StrategyTypeRSI:      15,
		types.StrategyTypeBoll:     20,
	}

	for strategyType, expected := range tests {
		g := suite.newGenerator(Config{Type: strategyType})
		suite.Equal(expected, g.WarmupPeriod(), string(strategyType))
		suite.Equal(strategyType, g.Type())
	}
}

func (suite *SignalGeneratorTestSuite) TestFlatSeriesNeverSignals() {
	closes := repeat(200, 10.1)

	for _, strategyType := range suite.registry.List() {
		for _, mode := range []types.SignalMode{types.SignalModeCross, types.SignalModeLevel} {
			suite.Run(string(strategyType)+"/"+string(mode), func() {
				buys, sells := run(suite.newGenerator(Config{Type: strategyType, SignalMode: mode}), closes)
				suite.Empty(buys)
				suite.Empty(sells)
			})
		}
	}
}

func (suite *SignalGeneratorTestSuite) TestDualMovingAverageRisingSeries() {
	closes := linear(40, 10, 0.5)

	for _, strategyType := range []types.StrategyType{types.StrategyTypeMACross, types.StrategyTypeDoubleMA} {
		suite.Run(string(strategyType), func() {
			g := suite.newGenerator(Config{Type: strategyType, ShortPeriod: lo.ToPtr(5), LongPeriod: lo.ToPtr(20)})
			buys, sells := run(g, closes)

			// One BUY on the first bar where both averages exist, then nothing
			suite.Equal([]int{19}, buys)
			suite.Empty(sells)
		})
	}
}

func (suite *SignalGeneratorTestSuite) TestDualMovingAverageCrossDown() {
	closes := append(linear(30, 10, 0.5), linear(30, 24, -0.5)...)
	g := suite.newGenerator(Config{Type: types.StrategyTypeMACross, ShortPeriod: lo.ToPtr(5), LongPeriod: lo.ToPtr(20)})

	buys, sells := run(g, closes)
	suite.Equal([]int{19}, buys)
	suite.Require().Len(sells, 1)
	suite.Greater(sells[0], 30)
}

func (suite *SignalGeneratorTestSuite) TestDualMovingAverageLevelMode() {
	closes := linear(40, 10, 0.5)
	g := suite.newGenerator(Config{Type: types.StrategyTypeMACross, SignalMode: types.SignalModeLevel})

	buys, sells := run(g, closes)

	// Short SMA leads long SMA by 3.75 which is above the 1% gap on every bar
	suite.Len(buys, 21)
	suite.Equal(19, buys[0])
	suite.Empty(sells)
}

func (suite *SignalGeneratorTestSuite) TestRSIMonotonicDecline() {
	closes := linear(40, 100, -1)
	g := suite.newGenerator(Config{Type: types.StrategyTypeRSI, ShortPeriod: lo.ToPtr(14), OversoldThreshold: lo.ToPtr(30.0), OverboughtThreshold: lo.ToPtr(70.0)})

	buys, sells := run(g, closes)
	suite.Require().NotEmpty(buys)
	suite.GreaterOrEqual(buys[0], 14)
	suite.Equal(14, buys[0])
	suite.Empty(sells)
}

func (suite *SignalGeneratorTestSuite) TestRSICrossMode() {
	closes := append(linear(20, 100, -1), linear(20, 82, 1)...)
	g := suite.newGenerator(Config{Type: types.StrategyTypeRSI, SignalMode: types.SignalModeCross})

	buys, sells := run(g, closes)
	suite.Require().Len(buys, 1)
	suite.Greater(buys[0], 19)
	suite.Empty(sells)
}

func (suite *SignalGeneratorTestSuite) TestRSIRisingSeriesNeverSells() {
	// Average loss stays zero so RSI is pinned at 100
	g := suite.newGenerator(Config{Type: types.StrategyTypeRSI})

	buys, sells := run(g, linear(50, 10, 1))
	suite.Empty(buys)
	suite.Empty(sells)
}

func (suite *SignalGeneratorTestSuite) TestMovingAverageThreshold() {
	closes := append(repeat(20, 10), 10.5, 10.6, 9.5)

	level := suite.newGenerator(Config{Type: types.StrategyTypeMA})
	buys, sells := run(level, closes)
	suite.Equal([]int{20, 21}, buys)
	suite.Equal([]int{22}, sells)

	cross := suite.newGenerator(Config{Type: types.StrategyTypeMA, SignalMode: types.SignalModeCross})
	buys, sells = run(cross, closes)
	suite.Equal([]int{20}, buys)
	suite.Equal([]int{22}, sells)
}

func (suite *SignalGeneratorTestSuite) TestMACDTurningPoint() {
	closes := append(linear(20, 50, -1), linear(20, 32, 1)...)
	g := suite.newGenerator(Config{Type: types.StrategyTypeMACD, ShortPeriod: lo.ToPtr(3), LongPeriod: lo.ToPtr(6), SignalPeriod: lo.ToPtr(3)})

	buys, sells := run(g, closes)
	suite.Require().Len(buys, 1)
	suite.GreaterOrEqual(buys[0], 20)
	suite.Empty(sells)
}

func (suite *SignalGeneratorTestSuite) TestBollingerBandsReentry() {
	closes := make([]float64, 0, 22)
	for i := 0; i < 20; i++ {
		closes = append(closes, 10+0.2*float64(i%2))
	}

	closes = append(closes, 9, 10.1)

	cross := suite.newGenerator(Config{Type: types.StrategyTypeBoll})
	buys, sells := run(cross, closes)
	suite.Equal([]int{21}, buys)
	suite.Empty(sells)

	level := suite.newGenerator(Config{Type: types.StrategyTypeBoll, SignalMode: types.SignalModeLevel})
	buys, sells = run(level, closes)
	suite.Equal([]int{20}, buys)
	suite.Empty(sells)
}

func (suite *SignalGeneratorTestSuite) TestActionableSignalsCarryReason() {
	g := suite.newGenerator(Config{Type: types.StrategyTypeMACross})

	for _, bar := range barsFromCloses(linear(25, 10, 1)) {
		signal := g.Update(bar)
		if signal.Type == types.SignalTypeBuy {
			suite.NotEmpty(signal.Reason)
			suite.Equal("AAPL", signal.Symbol)
			suite.Equal("MA_CROSS(5,20)", signal.Name)
			suite.Greater(signal.RawValue, 0.0)
		}
	}
}

func (suite *SignalGeneratorTestSuite) TestResetReplaysIdentically() {
	closes := make([]float64, 300)
	for i := range closes {
		closes[i] = 100 + 15*math.Sin(float64(i)/7) + 3*math.Cos(float64(i)/2)
	}

	for _, strategyType := range suite.registry.List() {
		suite.Run(string(strategyType), func() {
			g := suite.newGenerator(Config{Type: strategyType})
			firstBuys, firstSells := run(g, closes)

			g.Reset()
			secondBuys, secondSells := run(g, closes)

			suite.Equal(firstBuys, secondBuys)
			suite.Equal(firstSells, secondSells)
		})
	}
}
