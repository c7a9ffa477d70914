package indicator

import "github.com/rxtech-lab/argo-backtest/internal/types"

// MA is a simple moving average over the last period values.
type MA struct {
	period int
	window *Window
}

// NewMA creates a simple moving average.
func NewMA(period int) (*MA, error) {
	if err := validatePeriod("MA", period); err != nil {
		return nil, err
	}

	return &MA{period: period, window: NewWindow(period)}, nil
}

func (m *MA) Name() types.IndicatorType {
	return types.IndicatorTypeMA
}

func (m *MA) Update(value float64) {
	m.window.Push(value)
}

func (m *MA) Ready() bool {
	return m.window.Full()
}

func (m *MA) Value() float64 {
	if !m.Ready() {
		return 0
	}

	return m.window.Mean()
}

func (m *MA) WarmupPeriod() int {
	return m.period
}

func (m *MA) Reset() {
	m.window.Reset()
}
