package engine

import (
	"encoding/json"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/commission_fee"
	"github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/stats"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

const (
	DefaultInitialCapital = 100000
	DefaultParallelism    = 1
)

type BacktestEngineV1Config struct {
	InitialCapital float64                    `yaml:"initial_capital" json:"initial_capital" jsonschema:"title=Initial Capital,description=Starting cash of every run,default=100000,exclusiveMinimum=0" validate:"gt=0"`
	MarketProfile  types.MarketProfileName    `yaml:"market_profile" json:"market_profile" jsonschema:"title=Market Profile,description=Lot size and transaction cost rules used unless a strategy overrides them" validate:"omitempty,oneof=US HK ZERO"`
	Granularity    types.Granularity          `yaml:"granularity" json:"granularity" jsonschema:"title=Granularity,description=Bar granularity used for annualizing the Sharpe ratio"`
	RiskFreeRate   float64                    `yaml:"risk_free_rate" json:"risk_free_rate" jsonschema:"title=Risk Free Rate,description=Annual risk free rate for the Sharpe ratio,default=0.03,minimum=0,maximum=1" validate:"gte=0,lte=1"`
	StartTime      optional.Option[time.Time] `yaml:"start_time" json:"start_time" jsonschema:"title=Start Time,description=Optional start time for the backtest period"`
	EndTime        optional.Option[time.Time] `yaml:"end_time" json:"end_time" jsonschema:"title=End Time,description=Optional end time for the backtest period"`
	Parallelism    int                        `yaml:"parallelism" json:"parallelism" jsonschema:"title=Parallelism,description=Maximum number of runs executed at the same time,minimum=1,default=1" validate:"gte=0"`
	Strategies     []strategy.Config          `yaml:"strategies" json:"strategies" jsonschema:"title=Strategies,description=Strategies evaluated on every symbol" validate:"dive"`
}

// UnmarshalYAML implements custom unmarshaling for BacktestEngineV1Config
func (c *BacktestEngineV1Config) UnmarshalYAML(unmarshal func(interface{}) error) error {
	type Config struct {
		InitialCapital *float64                `yaml:"initial_capital"`
		MarketProfile  types.MarketProfileName `yaml:"market_profile"`
		Granularity    types.Granularity       `yaml:"granularity"`
		RiskFreeRate   *float64                `yaml:"risk_free_rate"`
		StartTime      *time.Time              `yaml:"start_time"`
		EndTime        *time.Time              `yaml:"end_time"`
		Parallelism    int                     `yaml:"parallelism"`
		Strategies     []strategy.Config       `yaml:"strategies"`
	}

	var config Config
	if err := unmarshal(&config); err != nil {
		return err
	}

	*c = EmptyConfig()
	c.MarketProfile = config.MarketProfile
	c.Granularity = config.Granularity
	c.Parallelism = config.Parallelism
	c.Strategies = config.Strategies

	if config.InitialCapital != nil {
		c.InitialCapital = *config.InitialCapital
	}

	if config.RiskFreeRate != nil {
		c.RiskFreeRate = *config.RiskFreeRate
	}

	if config.StartTime != nil {
		c.StartTime = optional.Some(*config.StartTime)
	}

	if config.EndTime != nil {
		c.EndTime = optional.Some(*config.EndTime)
	}

	return nil
}

// WithDefaults fills the fields a YAML document may leave empty.
func (c BacktestEngineV1Config) WithDefaults() BacktestEngineV1Config {
	if c.MarketProfile == "" {
		c.MarketProfile = types.MarketProfileUS
	}

	if c.Granularity == "" {
		c.Granularity = types.GranularityOneDay
	}

	if c.Parallelism == 0 {
		c.Parallelism = DefaultParallelism
	}

	return c
}

var configValidator = validator.New()

// Validate checks the configuration and every strategy in it against registry.
func (c BacktestEngineV1Config) Validate(registry *strategy.Registry) error {
	if !(c.InitialCapital > 0) || math.IsInf(c.InitialCapital, 0) {
		return errors.Newf(errors.ErrCodeInvalidCapital, "initial capital must be positive, got %v", c.InitialCapital)
	}

	if err := configValidator.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeBacktestConfigError, "invalid backtest configuration", err)
	}

	if err := c.Granularity.Validate(); err != nil {
		return err
	}

	if _, err := commission_fee.GetMarketProfile(c.MarketProfile); err != nil {
		return err
	}

	if c.StartTime.IsSome() && c.EndTime.IsSome() && !c.StartTime.Unwrap().Before(c.EndTime.Unwrap()) {
		return errors.New(errors.ErrCodeBacktestConfigError, "start_time must be before end_time")
	}

	for i, strategyConfig := range c.Strategies {
		if _, err := registry.Resolve(strategyConfig); err != nil {
			return errors.Wrapf(errors.GetCode(err), err, "strategy %d", i)
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchema() (*jsonschema.Schema, error) {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  false,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t.String() == "optional.Option[time.Time]" {
				return &jsonschema.Schema{
					Type:   "string",
					Format: "date-time",
				}
			}

			if strings.Contains(t.String(), "types.MarketProfileName") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: commission_fee.AllMarketProfiles,
				}
			}

			if strings.Contains(t.String(), "types.Granularity") {
				return &jsonschema.Schema{
					Type: "string",
					Enum: enumOf(types.Granularities()),
				}
			}

			return nil
		},
	}

	// Generate schema from BacktestEngineV1Config struct
	schema := reflector.Reflect(c)

	// Set schema metadata
	schema.Title = "backtest-engine-v1-config"
	schema.Description = "Configuration schema for BacktestEngineV1"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates a JSON schema string for the BacktestEngineV1Config
func (c *BacktestEngineV1Config) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaBytes), nil
}

func enumOf[T ~string](values []T) []any {
	enum := make([]any, len(values))
	for i, value := range values {
		enum[i] = string(value)
	}

	return enum
}

// TestConfig returns a ready to run configuration with one strategy.
func TestConfig(startTime time.Time, endTime time.Time, profile types.MarketProfileName, strategies ...strategy.Config) BacktestEngineV1Config {
	config := EmptyConfig()
	config.InitialCapital = 10000
	config.MarketProfile = profile
	config.StartTime = optional.Some(startTime)
	config.EndTime = optional.Some(endTime)
	config.Strategies = strategies

	return config
}

// EmptyConfig returns a BacktestEngineV1Config with default values
func EmptyConfig() BacktestEngineV1Config {
	return BacktestEngineV1Config{
		InitialCapital: DefaultInitialCapital,
		MarketProfile:  types.MarketProfileUS,
		Granularity:    types.GranularityOneDay,
		RiskFreeRate:   stats.DefaultRiskFreeRate,
		StartTime:      optional.None[time.Time](),
		EndTime:        optional.None[time.Time](),
		Parallelism:    DefaultParallelism,
		Strategies:     nil,
	}
}
