package types

type StrategyType string

const (
	StrategyTypeMA       StrategyType = "MA"
	StrategyTypeMACross  StrategyType = "MA_CROSS"
	StrategyTypeMACD     StrategyType = "MACD"
	StrategyTypeRSI      StrategyType = "RSI"
	StrategyTypeDoubleMA StrategyType = "DOUBLE_MA"
	StrategyTypeBoll     StrategyType = "BOLL"
)

// SignalMode selects between crossover and level based signal rules.
type SignalMode string

const (
	// SignalModeDefault lets each strategy family pick its reference rule.
	SignalModeDefault SignalMode = ""
	// SignalModeCross fires only when a value crosses a boundary between two bars.
	SignalModeCross SignalMode = "cross"
	// SignalModeLevel fires whenever a value sits beyond a boundary.
	SignalModeLevel SignalMode = "level"
)

type MarketProfileName string

const (
	MarketProfileUS   MarketProfileName = "US"
	MarketProfileHK   MarketProfileName = "HK"
	MarketProfileZero MarketProfileName = "ZERO"
)
