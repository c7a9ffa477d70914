package datasource

import (
	"context"
	"sort"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
)

// InMemoryDataSource serves bars held in memory, indexed by symbol.
// It is read-only after construction and safe for concurrent use.
type InMemoryDataSource struct {
	// data[symbol] holds the bars of one symbol in ascending time order
	data map[string][]types.Bar
}

// NewInMemoryDataSource copies bars and groups them per symbol in time order.
func NewInMemoryDataSource(bars []types.Bar) *InMemoryDataSource {
	data := make(map[string][]types.Bar)
	for _, bar := range bars {
		data[bar.Symbol] = append(data[bar.Symbol], bar)
	}

	for symbol := range data {
		series := data[symbol]
		sort.SliceStable(series, func(i, j int) bool {
			return series[i].Time.Before(series[j].Time)
		})
	}

	return &InMemoryDataSource{data: data}
}

// GetBars implements DataSource.
func (ds *InMemoryDataSource) GetBars(ctx context.Context, symbol string, start optional.Option[time.Time], end optional.Option[time.Time], _ types.Granularity) ([]types.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestCancelled, "bar query cancelled", err)
	}

	series := ds.data[symbol]

	// Binary search the window bounds
	from := 0
	if start.IsSome() {
		startTime := start.Unwrap()
		from = sort.Search(len(series), func(i int) bool {
			return !series[i].Time.Before(startTime)
		})
	}

	to := len(series)
	if end.IsSome() {
		endTime := end.Unwrap()
		to = sort.Search(len(series), func(i int) bool {
			return series[i].Time.After(endTime)
		})
	}

	if from >= to {
		return []types.Bar{}, nil
	}

	result := make([]types.Bar, to-from)
	copy(result, series[from:to])

	return result, nil
}

// Symbols implements DataSource.
func (ds *InMemoryDataSource) Symbols(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBacktestCancelled, "symbol query cancelled", err)
	}

	symbols := make([]string, 0, len(ds.data))
	for symbol := range ds.data {
		symbols = append(symbols, symbol)
	}

	sort.Strings(symbols)

	return symbols, nil
}

// Close implements DataSource.
func (ds *InMemoryDataSource) Close() error {
	return nil
}
