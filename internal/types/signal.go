package types

import "time"

type SignalType string

const (
	// SignalTypeBuy opens a position when flat.
	SignalTypeBuy SignalType = "BUY"
	// SignalTypeSell liquidates the whole open position.
	SignalTypeSell SignalType = "SELL"
	// SignalTypeHold keeps an existing position, the bar is only marked to market.
	SignalTypeHold SignalType = "HOLD"
	// SignalTypeNone means no position and no action.
	SignalTypeNone SignalType = "NONE"
)

// IsActionable reports whether the signal may lead to a trade.
func (s SignalType) IsActionable() bool {
	return s == SignalTypeBuy || s == SignalTypeSell
}

type Signal struct {
	// Time is the time of the bar that produced the signal
	Time time.Time `yaml:"time" json:"time"`
	// Type is the type of the signal
	Type SignalType `yaml:"type" json:"type"`
	// Name is the name of the strategy that produced the signal
	Name string `yaml:"name" json:"name"`
	// Reason is a short human readable explanation. Only set on BUY/SELL.
	Reason string `yaml:"reason" json:"reason"`
	// RawValue is the indicator value the decision was based on
	RawValue float64 `yaml:"raw_value" json:"raw_value"`
	// Symbol is the symbol of the signal
	Symbol string `yaml:"symbol" json:"symbol"`
}
