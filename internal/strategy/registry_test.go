package strategy

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type RegistryTestSuite struct {
	suite.Suite
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistryTestSuite))
}

func (suite *RegistryTestSuite) SetupTest() {
	suite.registry = DefaultRegistry()
}

func (suite *RegistryTestSuite) TestList() {
	suite.Equal([]types.StrategyType{
		types.StrategyTypeBoll,
		types.StrategyTypeDoubleMA,
		types.StrategyTypeMA,
		types.StrategyTypeMACD,
		types.StrategyTypeMACross,
		types.StrategyTypeRSI,
	}, suite.registry.List())
}

func (suite *RegistryTestSuite) TestDefaults() {
	defaults, err := suite.registry.Defaults(types.StrategyTypeMACD)
	suite.NoError(err)
	suite.Equal(12, *defaults.ShortPeriod)
	suite.Equal(26, *defaults.LongPeriod)
	suite.Equal(9, *defaults.SignalPeriod)
	suite.Equal(types.SignalModeCross, defaults.SignalMode)

	defaults, err = suite.registry.Defaults("rsi")
	suite.NoError(err)
	suite.Equal(14, *defaults.ShortPeriod)
	suite.Equal(30.0, *defaults.OversoldThreshold)
	suite.Equal(70.0, *defaults.OverboughtThreshold)
	suite.Equal(types.SignalModeLevel, defaults.SignalMode)

	_, err = suite.registry.Defaults("KDJ")
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedStrategy))
}

func (suite *RegistryTestSuite) TestDefaultsAreCopies() {
	defaults, err := suite.registry.Defaults(types.StrategyTypeMA)
	suite.Require().NoError(err)
	*defaults.ShortPeriod = 3

	resolved, err := suite.registry.Resolve(Config{Type: types.StrategyTypeMA})
	suite.Require().NoError(err)
	suite.Equal(20, *resolved.ShortPeriod)

	*resolved.ShortPeriod = 4
	again, err := suite.registry.Defaults(types.StrategyTypeMA)
	suite.Require().NoError(err)
	suite.Equal(20, *again.ShortPeriod)
}

func (suite *RegistryTestSuite) TestResolveAppliesDefaults() {
	resolved, err := suite.registry.Resolve(Config{Type: "boll", KMultiplier: lo.ToPtr(2.5)})
	suite.NoError(err)
	suite.Equal(types.StrategyTypeBoll, resolved.Type)
	suite.Equal(20, *resolved.ShortPeriod)
	suite.Equal(2.5, *resolved.KMultiplier)
	suite.Equal(types.SignalModeCross, resolved.SignalMode)
	suite.Equal("period=20 k=2.5 mode=cross", resolved.String())
}

func (suite *RegistryTestSuite) TestNewConfigurationErrors() {
	tests := []struct {
		name   string
		config Config
		code   errors.ErrorCode
	}{
		{name: "unknown type", config: Config{Type: "KDJ"}, code: errors.ErrCodeUnsupportedStrategy},
		{name: "empty type", config: Config{}, code: errors.ErrCodeUnsupportedStrategy},
		{name: "short not below long", config: Config{Type: types.StrategyTypeMACross, ShortPeriod: lo.ToPtr(20), LongPeriod: lo.ToPtr(20)}, code: errors.ErrCodeInvalidPeriod},
		{name: "short above default long", config: Config{Type: types.StrategyTypeDoubleMA, ShortPeriod: lo.ToPtr(30)}, code: errors.ErrCodeInvalidPeriod},
		{name: "macd fast above slow", config: Config{Type: types.StrategyTypeMACD, ShortPeriod: lo.ToPtr(30)}, code: errors.ErrCodeInvalidPeriod},
		{name: "negative period", config: Config{Type: types.StrategyTypeMA, ShortPeriod: lo.ToPtr(-5)}, code: errors.ErrCodeInvalidPeriod},
		{name: "thresholds inverted", config: Config{Type: types.StrategyTypeRSI, OversoldThreshold: lo.ToPtr(80.0)}, code: errors.ErrCodeInvalidThreshold},
		{name: "threshold above 100", config: Config{Type: types.StrategyTypeRSI, OverboughtThreshold: lo.ToPtr(120.0)}, code: errors.ErrCodeInvalidThreshold},
		{name: "negative k", config: Config{Type: types.StrategyTypeBoll, KMultiplier: lo.ToPtr(-1.0)}, code: errors.ErrCodeInvalidMultiplier},
		{name: "explicit zero period", config: Config{Type: types.StrategyTypeMA, ShortPeriod: lo.ToPtr(0)}, code: errors.ErrCodeInvalidPeriod},
		{name: "explicit zero short period", config: Config{Type: types.StrategyTypeMACross, ShortPeriod: lo.ToPtr(0), LongPeriod: lo.ToPtr(20)}, code: errors.ErrCodeInvalidPeriod},
		{name: "explicit zero signal period", config: Config{Type: types.StrategyTypeMACD, SignalPeriod: lo.ToPtr(0)}, code: errors.ErrCodeInvalidPeriod},
		{name: "explicit zero oversold", config: Config{Type: types.StrategyTypeRSI, OversoldThreshold: lo.ToPtr(0.0), OverboughtThreshold: lo.ToPtr(70.0)}, code: errors.ErrCodeInvalidThreshold},
		{name: "explicit zero k", config: Config{Type: types.StrategyTypeBoll, KMultiplier: lo.ToPtr(0.0)}, code: errors.ErrCodeInvalidMultiplier},
		{name: "infinite k", config: Config{Type: types.StrategyTypeBoll, KMultiplier: lo.ToPtr(math.Inf(1))}, code: errors.ErrCodeInvalidMultiplier},
		{name: "bollinger period one", config: Config{Type: types.StrategyTypeBoll, ShortPeriod: lo.ToPtr(1)}, code: errors.ErrCodeInvalidPeriod},
		{name: "unknown signal mode", config: Config{Type: types.StrategyTypeMA, SignalMode: "sometimes"}, code: errors.ErrCodeStrategyConfigError},
		{name: "unknown market profile", config: Config{Type: types.StrategyTypeMA, MarketProfile: "JP"}, code: errors.ErrCodeStrategyConfigError},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			g, err := suite.registry.New(tt.config)
			suite.Nil(g)
			suite.Require().Error(err)
			suite.Equal(tt.code, errors.GetCode(err))
			suite.True(errors.IsConfigurationError(err))
		})
	}
}

func (suite *RegistryTestSuite) TestNewEveryBuiltin() {
	for _, strategyType := range suite.registry.List() {
		g, err := suite.registry.New(Config{Type: strategyType})
		suite.NoError(err)
		suite.Equal(strategyType, g.Type())
	}
}

func (suite *RegistryTestSuite) TestNewReturnsIndependentGenerators() {
	first, err := suite.registry.New(Config{Type: types.StrategyTypeMA, ShortPeriod: lo.ToPtr(2)})
	suite.Require().NoError(err)
	second, err := suite.registry.New(Config{Type: types.StrategyTypeMA, ShortPeriod: lo.ToPtr(2)})
	suite.Require().NoError(err)

	for _, bar := range barsFromCloses([]float64{10, 10, 11}) {
		first.Update(bar)
	}

	// second has seen nothing and is still warming up
	signal := second.Update(barsFromCloses([]float64{11})[0])
	suite.Equal(types.SignalTypeNone, signal.Type)
}

func (suite *RegistryTestSuite) TestRegisterAndRemove() {
	registry := NewRegistry()
	suite.Empty(registry.List())

	err := registry.Register(Config{Type: "custom_ma", ShortPeriod: lo.ToPtr(3), SignalMode: types.SignalModeLevel}, func(config Config) (SignalGenerator, error) {
		config.Type = types.StrategyTypeMA

		return NewMAGenerator(config)
	})
	suite.NoError(err)
	suite.Equal([]types.StrategyType{"CUSTOM_MA"}, registry.List())

	err = registry.Register(Config{Type: "CUSTOM_MA"}, NewMAGenerator)
	suite.True(errors.HasCode(err, errors.ErrCodeStrategyExists))

	err = registry.Register(Config{}, NewMAGenerator)
	suite.True(errors.HasCode(err, errors.ErrCodeInvalidParameter))

	suite.NoError(registry.Remove("CUSTOM_MA"))
	suite.Error(registry.Remove("CUSTOM_MA"))
	suite.Empty(registry.List())
}
