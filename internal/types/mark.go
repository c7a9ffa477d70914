package types

import "time"

type MarkShape string

const (
	MarkShapeCircle   MarkShape = "circle"
	MarkShapeSquare   MarkShape = "square"
	MarkShapeTriangle MarkShape = "triangle"
)

type MarkColor string

const (
	MarkColorRed    MarkColor = "red"
	MarkColorGreen  MarkColor = "green"
	MarkColorYellow MarkColor = "yellow"
	MarkColorOrange MarkColor = "orange"
)

// MarkOutcome records what the simulator did with an actionable signal.
type MarkOutcome string

const (
	MarkOutcomeExecuted                MarkOutcome = "executed"
	MarkOutcomeSkippedInsufficientCash MarkOutcome = "skipped_insufficient_cash"
	MarkOutcomeSkippedFlat             MarkOutcome = "skipped_flat"
	MarkOutcomeSkippedHolding          MarkOutcome = "skipped_holding"
)

// Mark is one journal entry for a BUY or SELL signal.
type Mark struct {
	BarIndex int         `yaml:"bar_index" json:"bar_index"`
	Time     time.Time   `yaml:"time" json:"time"`
	Symbol   string      `yaml:"symbol" json:"symbol"`
	Signal   SignalType  `yaml:"signal" json:"signal"`
	Outcome  MarkOutcome `yaml:"outcome" json:"outcome"`
	Price    float64     `yaml:"price" json:"price"`
	Color    MarkColor   `yaml:"color" json:"color"`
	Shape    MarkShape   `yaml:"shape" json:"shape"`
	Title    string      `yaml:"title" json:"title"`
	Message  string      `yaml:"message" json:"message"`
}
