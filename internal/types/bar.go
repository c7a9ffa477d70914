package types

import (
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// Bar is one OHLCV sample of a symbol at a fixed granularity.
type Bar struct {
	Symbol string    `yaml:"symbol" json:"symbol" csv:"symbol" validate:"required"`
	Time   time.Time `yaml:"time" json:"time" csv:"time" validate:"required"`
	Open   float64   `yaml:"open" json:"open" csv:"open" validate:"gte=0"`
	High   float64   `yaml:"high" json:"high" csv:"high" validate:"gte=0"`
	Low    float64   `yaml:"low" json:"low" csv:"low" validate:"gte=0"`
	Close  float64   `yaml:"close" json:"close" csv:"close" validate:"gt=0"`
	Volume float64   `yaml:"volume" json:"volume" csv:"volume" validate:"gte=0"`
}

// Validate checks the field constraints of a single bar.
func (b *Bar) Validate() error {
	if err := barValidator.Struct(b); err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidBar, err, "invalid bar for %s at %s", b.Symbol, b.Time.Format(time.RFC3339))
	}

	for _, value := range []float64{b.Open, b.High, b.Low, b.Close, b.Volume} {
		if math.IsInf(value, 0) || math.IsNaN(value) {
			return errors.Newf(errors.ErrCodeInvalidBar, "bar for %s at %s has a non-finite value", b.Symbol, b.Time.Format(time.RFC3339))
		}
	}

	return nil
}

var barValidator = validator.New()

// ValidateBarSequence checks that every bar belongs to symbol and that
// timestamps are strictly increasing.
func ValidateBarSequence(symbol string, bars []Bar) error {
	for i := range bars {
		if err := bars[i].Validate(); err != nil {
			return err
		}

		if bars[i].Symbol != symbol {
			return errors.Newf(errors.ErrCodeInvalidBarSequence, "bar %d has symbol %s, expected %s", i, bars[i].Symbol, symbol)
		}

		if i > 0 && !bars[i].Time.After(bars[i-1].Time) {
			return errors.Newf(errors.ErrCodeInvalidBarSequence,
				"bar %d at %s is not after bar %d at %s", i, bars[i].Time.Format(time.RFC3339), i-1, bars[i-1].Time.Format(time.RFC3339))
		}
	}

	return nil
}
