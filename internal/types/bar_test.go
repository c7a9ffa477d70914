package types

import (
	"math"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type BarTestSuite struct {
	suite.Suite
}

func TestBarSuite(t *testing.T) {
	suite.Run(t, new(BarTestSuite))
}

func bar(symbol string, at time.Time, close float64) Bar {
	return Bar{Symbol: symbol, Time: at, Open: close, High: close, Low: close, Close: close, Volume: 100}
}

func (suite *BarTestSuite) TestValidate() {
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	valid := bar("AAPL", now, 10)
	suite.NoError(valid.Validate())

	noSymbol := bar("", now, 10)
	suite.True(errors.HasCode(noSymbol.Validate(), errors.ErrCodeInvalidBar))

	zeroClose := bar("AAPL", now, 0)
	suite.True(errors.HasCode(zeroClose.Validate(), errors.ErrCodeInvalidBar))

	negativeVolume := bar("AAPL", now, 10)
	negativeVolume.Volume = -1
	suite.Error(negativeVolume.Validate())
}

func (suite *BarTestSuite) TestValidateRejectsNonFiniteValues() {
	now := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		modify func(b *Bar)
	}{
		{name: "infinite close", modify: func(b *Bar) { b.Close = math.Inf(1) }},
		{name: "nan close", modify: func(b *Bar) { b.Close = math.NaN() }},
		{name: "infinite high", modify: func(b *Bar) { b.High = math.Inf(1) }},
		{name: "nan open", modify: func(b *Bar) { b.Open = math.NaN() }},
		{name: "infinite volume", modify: func(b *Bar) { b.Volume = math.Inf(1) }},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			b := bar("AAPL", now, 10)
			tt.modify(&b)

			suite.True(errors.HasCode(b.Validate(), errors.ErrCodeInvalidBar))
			suite.True(errors.HasCode(ValidateBarSequence("AAPL", []Bar{b}), errors.ErrCodeInvalidBar))
		})
	}
}

func (suite *BarTestSuite) TestValidateBarSequence() {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		bars    []Bar
		wantErr bool
	}{
		{name: "empty", bars: nil},
		{name: "ordered", bars: []Bar{bar("AAPL", start, 1), bar("AAPL", start.Add(time.Hour), 2)}},
		{name: "duplicate timestamp", bars: []Bar{bar("AAPL", start, 1), bar("AAPL", start, 2)}, wantErr: true},
		{name: "descending", bars: []Bar{bar("AAPL", start.Add(time.Hour), 1), bar("AAPL", start, 2)}, wantErr: true},
		{name: "foreign symbol", bars: []Bar{bar("AAPL", start, 1), bar("MSFT", start.Add(time.Hour), 2)}, wantErr: true},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			err := ValidateBarSequence("AAPL", tt.bars)
			if tt.wantErr {
				suite.True(errors.IsConfigurationError(err))
			} else {
				suite.NoError(err)
			}
		})
	}
}
