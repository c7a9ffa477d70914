package strategy

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/samber/lo"
)

// Config is the plain parameter record of a strategy. Fields a family does not
// use are ignored. Absent (nil) fields take the family defaults; explicit
// values, zero included, are validated as given.
//
// Single period families (MA, RSI, BOLL) read their period from ShortPeriod.
type Config struct {
	Type                types.StrategyType      `yaml:"type" json:"type" jsonschema:"title=Strategy type,enum=MA,enum=MA_CROSS,enum=MACD,enum=RSI,enum=DOUBLE_MA,enum=BOLL" validate:"required"`
	ShortPeriod         *int                    `yaml:"short_period,omitempty" json:"short_period,omitempty" jsonschema:"title=Short period,description=Period of MA/RSI/BOLL or the short average of MA_CROSS/DOUBLE_MA/MACD,minimum=1"`
	LongPeriod          *int                    `yaml:"long_period,omitempty" json:"long_period,omitempty" jsonschema:"title=Long period,minimum=1"`
	SignalPeriod        *int                    `yaml:"signal_period,omitempty" json:"signal_period,omitempty" jsonschema:"title=MACD signal period,minimum=1"`
	OversoldThreshold   *float64                `yaml:"oversold_threshold,omitempty" json:"oversold_threshold,omitempty" jsonschema:"title=RSI oversold threshold,exclusiveMinimum=0,exclusiveMaximum=100"`
	OverboughtThreshold *float64                `yaml:"overbought_threshold,omitempty" json:"overbought_threshold,omitempty" jsonschema:"title=RSI overbought threshold,exclusiveMinimum=0,exclusiveMaximum=100"`
	KMultiplier         *float64                `yaml:"k_multiplier,omitempty" json:"k_multiplier,omitempty" jsonschema:"title=Bollinger band multiplier,exclusiveMinimum=0"`
	MarketProfile       types.MarketProfileName `yaml:"market_profile,omitempty" json:"market_profile,omitempty" jsonschema:"title=Market profile override,enum=US,enum=HK,enum=ZERO" validate:"omitempty,oneof=US HK ZERO"`
	SignalMode          types.SignalMode        `yaml:"signal_mode,omitempty" json:"signal_mode,omitempty" jsonschema:"title=Signal mode,description=cross fires on a crossover between bars and level fires while a value is beyond a bound,enum=cross,enum=level" validate:"omitempty,oneof=cross level"`
}

var configValidator = validator.New()

// WithDefaults returns a copy of c where every absent field takes the value from defaults.
func (c Config) WithDefaults(defaults Config) Config {
	c.Type = types.StrategyType(strings.ToUpper(string(c.Type)))

	defaults = defaults.clone()

	c.ShortPeriod = lo.CoalesceOrEmpty(c.ShortPeriod, defaults.ShortPeriod)
	c.LongPeriod = lo.CoalesceOrEmpty(c.LongPeriod, defaults.LongPeriod)
	c.SignalPeriod = lo.CoalesceOrEmpty(c.SignalPeriod, defaults.SignalPeriod)
	c.OversoldThreshold = lo.CoalesceOrEmpty(c.OversoldThreshold, defaults.OversoldThreshold)
	c.OverboughtThreshold = lo.CoalesceOrEmpty(c.OverboughtThreshold, defaults.OverboughtThreshold)
	c.KMultiplier = lo.CoalesceOrEmpty(c.KMultiplier, defaults.KMultiplier)

	if c.SignalMode == types.SignalModeDefault {
		c.SignalMode = defaults.SignalMode
	}

	return c
}

// clone copies the parameter values so the copy shares no pointers with c.
func (c Config) clone() Config {
	c.ShortPeriod = copyPtr(c.ShortPeriod)
	c.LongPeriod = copyPtr(c.LongPeriod)
	c.SignalPeriod = copyPtr(c.SignalPeriod)
	c.OversoldThreshold = copyPtr(c.OversoldThreshold)
	c.OverboughtThreshold = copyPtr(c.OverboughtThreshold)
	c.KMultiplier = copyPtr(c.KMultiplier)

	return c
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}

	return lo.ToPtr(*p)
}

func (c Config) short() int {
	return lo.FromPtr(c.ShortPeriod)
}

func (c Config) long() int {
	return lo.FromPtr(c.LongPeriod)
}

func (c Config) signalPeriod() int {
	return lo.FromPtr(c.SignalPeriod)
}

func (c Config) oversold() float64 {
	return lo.FromPtr(c.OversoldThreshold)
}

func (c Config) overbought() float64 {
	return lo.FromPtr(c.OverboughtThreshold)
}

func (c Config) multiplier() float64 {
	return lo.FromPtr(c.KMultiplier)
}

// Validate checks field ranges and the cross-field rules of the strategy family.
// It expects defaults to be applied already; a field the family needs that is
// still absent counts as zero.
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "invalid strategy config", err)
	}

	switch c.Type {
	case types.StrategyTypeMA:
		return requirePositive("period", c.short())
	case types.StrategyTypeMACross, types.StrategyTypeDoubleMA:
		return validateShortLong(c.short(), c.long())
	case types.StrategyTypeMACD:
		if err := validateShortLong(c.short(), c.long()); err != nil {
			return err
		}

		return requirePositive("signal period", c.signalPeriod())
	case types.StrategyTypeRSI:
		if err := requirePositive("period", c.short()); err != nil {
			return err
		}

		if err := requirePercent("oversold threshold", c.oversold()); err != nil {
			return err
		}

		if err := requirePercent("overbought threshold", c.overbought()); err != nil {
			return err
		}

		if c.oversold() >= c.overbought() {
			return errors.Newf(errors.ErrCodeInvalidThreshold,
				"oversold threshold %.2f must be less than overbought threshold %.2f", c.oversold(), c.overbought())
		}

		return nil
	case types.StrategyTypeBoll:
		if c.short() < 2 {
			return errors.Newf(errors.ErrCodeInvalidPeriod, "Bollinger period must be at least 2, got %d", c.short())
		}

		if !(c.multiplier() > 0) || math.IsInf(c.multiplier(), 0) {
			return errors.Newf(errors.ErrCodeInvalidMultiplier, "k multiplier must be positive, got %g", c.multiplier())
		}

		return nil
	}

	return nil
}

// String renders the parameters the family actually uses.
func (c Config) String() string {
	switch c.Type {
	case types.StrategyTypeMA:
		return fmt.Sprintf("period=%d mode=%s", c.short(), c.SignalMode)
	case types.StrategyTypeMACross, types.StrategyTypeDoubleMA:
		return fmt.Sprintf("short=%d long=%d mode=%s", c.short(), c.long(), c.SignalMode)
	case types.StrategyTypeMACD:
		return fmt.Sprintf("fast=%d slow=%d signal=%d mode=%s", c.short(), c.long(), c.signalPeriod(), c.SignalMode)
	case types.StrategyTypeRSI:
		return fmt.Sprintf("period=%d oversold=%g overbought=%g mode=%s", c.short(), c.oversold(), c.overbought(), c.SignalMode)
	case types.StrategyTypeBoll:
		return fmt.Sprintf("period=%d k=%g mode=%s", c.short(), c.multiplier(), c.SignalMode)
	default:
		return string(c.Type)
	}
}

func requirePositive(name string, value int) error {
	if value <= 0 {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be a positive integer, got %d", name, value)
	}

	return nil
}

// requirePercent accepts values strictly between 0 and 100.
func requirePercent(name string, value float64) error {
	if !(value > 0 && value < 100) {
		return errors.Newf(errors.ErrCodeInvalidThreshold, "%s must be between 0 and 100 exclusive, got %g", name, value)
	}

	return nil
}

func validateShortLong(short, long int) error {
	if err := requirePositive("short period", short); err != nil {
		return err
	}

	if err := requirePositive("long period", long); err != nil {
		return err
	}

	if short >= long {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "short period %d must be less than long period %d", short, long)
	}

	return nil
}
