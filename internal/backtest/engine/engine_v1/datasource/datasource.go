package datasource

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
)

// DataSource supplies historical bars to the backtest engine.
type DataSource interface {
	// GetBars returns the bars of symbol with start <= time <= end in ascending
	// time order. A None bound is unbounded. The result may be empty.
	// Granularity describes the bars; sources do not resample.
	GetBars(ctx context.Context, symbol string, start optional.Option[time.Time], end optional.Option[time.Time], granularity types.Granularity) ([]types.Bar, error)
	// Symbols lists the symbols the source holds, sorted.
	Symbols(ctx context.Context) ([]string, error)
	// Close releases any resources held by the source
	Close() error
}
