package indicator

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// MACD tracks the MACD line (fast EMA - slow EMA) and its signal EMA.
type MACD struct {
	fast   *EMA
	slow   *EMA
	signal *EMA
	line   float64
}

// NewMACD creates a MACD indicator. fastPeriod must be shorter than slowPeriod.
func NewMACD(fastPeriod, slowPeriod, signalPeriod int) (*MACD, error) {
	if fastPeriod >= slowPeriod && fastPeriod > 0 && slowPeriod > 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidPeriod, "MACD fast period %d must be less than slow period %d", fastPeriod, slowPeriod)
	}

	fast, err := NewEMA(fastPeriod)
	if err != nil {
		return nil, err
	}

	slow, err := NewEMA(slowPeriod)
	if err != nil {
		return nil, err
	}

	signal, err := NewEMA(signalPeriod)
	if err != nil {
		return nil, err
	}

	return &MACD{fast: fast, slow: slow, signal: signal}, nil
}

func (m *MACD) Name() types.IndicatorType {
	return types.IndicatorTypeMACD
}

func (m *MACD) Update(value float64) {
	m.fast.Update(value)
	m.slow.Update(value)

	if !m.slow.Ready() {
		return
	}

	m.line = m.fast.Value() - m.slow.Value()
	m.signal.Update(m.line)
}

// Ready is true once the signal line has been seeded, after
// slowPeriod + signalPeriod - 1 values.
func (m *MACD) Ready() bool {
	return m.signal.Ready()
}

// Value returns the MACD line.
func (m *MACD) Value() float64 {
	if !m.Ready() {
		return 0
	}

	return m.line
}

// Signal returns the signal line.
func (m *MACD) Signal() float64 {
	return m.signal.Value()
}

// Histogram returns MACD line minus signal line.
func (m *MACD) Histogram() float64 {
	if !m.Ready() {
		return 0
	}

	return m.line - m.signal.Value()
}

func (m *MACD) WarmupPeriod() int {
	return m.slow.WarmupPeriod() + m.signal.WarmupPeriod() - 1
}

func (m *MACD) Reset() {
	m.fast.Reset()
	m.slow.Reset()
	m.signal.Reset()
	m.line = 0
}
