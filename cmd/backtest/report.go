package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-backtest/internal/strategy"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/version"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	gainStyle   = cellStyle.Foreground(lipgloss.Color("10"))
	lossStyle   = cellStyle.Foreground(lipgloss.Color("9"))
	staleStyle  = lipgloss.NewStyle().Faint(true)
)

const returnColumn = 3

// renderSummaries formats one row per run. Runs written by an engine whose
// result layout differs from engineVersion are flagged below the table.
func renderSummaries(summaries []types.RunSummary, engineVersion string) string {
	if len(summaries) == 0 {
		return "no results"
	}

	rows := make([][]string, 0, len(summaries))
	var stale []string

	for _, summary := range summaries {
		rows = append(rows, []string{
			summary.Strategy.Name,
			summary.Symbol,
			string(summary.MarketProfile),
			formatPercent(summary.TotalReturn),
			formatPercent(summary.BuyAndHoldReturn),
			formatPercent(summary.TradeResult.MaxDrawdown),
			fmt.Sprintf("%.2f", summary.SharpeRatio),
			formatPercent(summary.TradeResult.WinRate),
			fmt.Sprintf("%d", summary.TradeResult.NumberOfTrades),
			fmt.Sprintf("%.2f", summary.TotalFees),
			fmt.Sprintf("%.2f", summary.FinalCapital),
		})

		if err := version.CheckResultsCompatibility(engineVersion, summary.EngineVersion); err != nil {
			stale = append(stale, fmt.Sprintf("%s %s: %v", summary.Strategy.Name, summary.Symbol, err))
		}
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Strategy", "Symbol", "Profile", "Return", "Buy&Hold", "Max DD", "Sharpe", "Win rate", "Trades", "Fees", "Final").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			if col == returnColumn && row >= 0 && row < len(summaries) {
				if summaries[row].TotalReturn > 0 {
					return gainStyle
				}

				if summaries[row].TotalReturn < 0 {
					return lossStyle
				}
			}

			return cellStyle
		})

	if len(stale) == 0 {
		return t.String()
	}

	return t.String() + "\n" + staleStyle.Render("incompatible results:\n"+strings.Join(stale, "\n"))
}

// renderStrategies lists the registered strategy families with their defaults.
func renderStrategies(registry *strategy.Registry) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Type", "Defaults").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}

			return cellStyle
		})

	for _, strategyType := range registry.List() {
		defaults, err := registry.Defaults(strategyType)
		if err != nil {
			continue
		}

		t.Row(string(strategyType), defaults.String())
	}

	return t.String()
}

func formatPercent(value float64) string {
	return fmt.Sprintf("%.2f%%", value*100)
}
