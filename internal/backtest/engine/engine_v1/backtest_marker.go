package engine

import (
	"fmt"

	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// BacktestMarker journals every actionable signal of a run together with
// what the simulator did with it. Marks are kept in memory during the run
// and persisted by the ResultWriter afterwards.
type BacktestMarker struct {
	marks []types.Mark
}

func NewBacktestMarker() *BacktestMarker {
	return &BacktestMarker{}
}

// Mark records an actionable signal for bar at barIndex.
func (m *BacktestMarker) Mark(bar types.Bar, barIndex int, signal types.Signal, outcome types.MarkOutcome) {
	m.marks = append(m.marks, types.Mark{
		BarIndex: barIndex,
		Time:     bar.Time,
		Symbol:   bar.Symbol,
		Signal:   signal.Type,
		Outcome:  outcome,
		Price:    bar.Close,
		Color:    markColor(signal.Type, outcome),
		Shape:    markShape(outcome),
		Title:    fmt.Sprintf("%s %s", signal.Type, outcome),
		Message:  signal.Reason,
	})
}

// GetMarks returns a copy of the journal.
func (m *BacktestMarker) GetMarks() []types.Mark {
	marks := make([]types.Mark, len(m.marks))
	copy(marks, m.marks)

	return marks
}

// Cleanup empties the journal.
func (m *BacktestMarker) Cleanup() {
	m.marks = nil
}

func markColor(signal types.SignalType, outcome types.MarkOutcome) types.MarkColor {
	switch {
	case outcome == types.MarkOutcomeSkippedInsufficientCash:
		return types.MarkColorOrange
	case outcome != types.MarkOutcomeExecuted:
		return types.MarkColorYellow
	case signal == types.SignalTypeBuy:
		return types.MarkColorGreen
	default:
		return types.MarkColorRed
	}
}

func markShape(outcome types.MarkOutcome) types.MarkShape {
	if outcome == types.MarkOutcomeExecuted {
		return types.MarkShapeTriangle
	}

	return types.MarkShapeCircle
}
