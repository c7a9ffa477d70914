package engine

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-backtest/internal/logger"
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"go.uber.org/zap"
)

const (
	statsFileName  = "stats.yaml"
	tradesFileName = "trades.parquet"
	equityFileName = "equity.parquet"
	marksFileName  = "marks.parquet"

	// rows per INSERT statement
	insertBatchSize = 500
)

// ResultWriter persists a finished run into a result folder:
// stats.yaml, trades.parquet, equity.parquet and marks.parquet.
// Rows are staged in an in-memory DuckDB database and exported with COPY.
type ResultWriter struct {
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

func NewResultWriter(logger *logger.Logger) *ResultWriter {
	return &ResultWriter{
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}
}

// Write stores result, marks and summary under folder. The returned summary
// carries the paths of the written files.
func (w *ResultWriter) Write(folder string, result types.BacktestResult, marks []types.Mark, summary types.RunSummary) (types.RunSummary, error) {
	if err := os.MkdirAll(folder, 0755); err != nil {
		return summary, errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create result folder", err)
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return summary, errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to open database", err)
	}
	defer db.Close()

	if err := w.createTables(db); err != nil {
		return summary, err
	}

	if err := w.insertTrades(db, result.Trades); err != nil {
		return summary, err
	}

	if err := w.insertEquity(db, result.EquityCurve); err != nil {
		return summary, err
	}

	if err := w.insertMarks(db, marks); err != nil {
		return summary, err
	}

	summary.TradesFilePath = filepath.Join(folder, tradesFileName)
	summary.EquityFilePath = filepath.Join(folder, equityFileName)
	summary.MarksFilePath = filepath.Join(folder, marksFileName)

	exports := map[string]string{
		"trades": summary.TradesFilePath,
		"equity": summary.EquityFilePath,
		"marks":  summary.MarksFilePath,
	}

	for table, path := range exports {
		// Squirrel does not support COPY
		_, err := db.Exec(fmt.Sprintf(`COPY %s TO '%s' (FORMAT PARQUET)`, table, escapeLiteral(path)))
		if err != nil {
			return summary, errors.Wrapf(errors.ErrCodeBacktestWriteFailed, err, "failed to export %s to Parquet", table)
		}
	}

	if err := types.WriteRunSummaries(filepath.Join(folder, statsFileName), []types.RunSummary{summary}); err != nil {
		return summary, errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to write stats", err)
	}

	w.logger.Info("Successfully exported backtest results",
		zap.String("folder", folder),
		zap.Int("trades", len(result.Trades)),
		zap.Int("equity_points", len(result.EquityCurve)),
		zap.Int("marks", len(marks)),
	)

	return summary, nil
}

func (w *ResultWriter) createTables(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE trades (
			symbol TEXT,
			timestamp TIMESTAMP,
			side TEXT,
			price DOUBLE,
			quantity DOUBLE,
			fee DOUBLE,
			realized_profit DOUBLE,
			bar_index INTEGER,
			reason TEXT
		)`,
		`CREATE TABLE equity (
			timestamp TIMESTAMP,
			equity DOUBLE
		)`,
		`CREATE TABLE marks (
			bar_index INTEGER,
			time TIMESTAMP,
			symbol TEXT,
			signal TEXT,
			outcome TEXT,
			price DOUBLE,
			color TEXT,
			shape TEXT,
			title TEXT,
			message TEXT
		)`,
	}

	for _, statement := range statements {
		if _, err := db.Exec(statement); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to create result table", err)
		}
	}

	return nil
}

func (w *ResultWriter) insertTrades(db *sql.DB, trades []types.TradeRecord) error {
	for start := 0; start < len(trades); start += insertBatchSize {
		end := min(start+insertBatchSize, len(trades))

		query := w.sq.Insert("trades").
			Columns("symbol", "timestamp", "side", "price", "quantity", "fee", "realized_profit", "bar_index", "reason")

		for _, trade := range trades[start:end] {
			query = query.Values(trade.Symbol, trade.Timestamp, string(trade.Side), trade.Price, trade.Quantity,
				trade.Fee, trade.RealizedProfit, trade.BarIndex, trade.Reason)
		}

		if _, err := query.RunWith(db).Exec(); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to insert trades", err)
		}
	}

	return nil
}

func (w *ResultWriter) insertEquity(db *sql.DB, curve []types.EquityPoint) error {
	for start := 0; start < len(curve); start += insertBatchSize {
		end := min(start+insertBatchSize, len(curve))

		query := w.sq.Insert("equity").Columns("timestamp", "equity")
		for _, point := range curve[start:end] {
			query = query.Values(point.Timestamp, point.Equity)
		}

		if _, err := query.RunWith(db).Exec(); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to insert equity curve", err)
		}
	}

	return nil
}

func (w *ResultWriter) insertMarks(db *sql.DB, marks []types.Mark) error {
	for start := 0; start < len(marks); start += insertBatchSize {
		end := min(start+insertBatchSize, len(marks))

		query := w.sq.Insert("marks").
			Columns("bar_index", "time", "symbol", "signal", "outcome", "price", "color", "shape", "title", "message")

		for _, mark := range marks[start:end] {
			query = query.Values(mark.BarIndex, mark.Time, mark.Symbol, string(mark.Signal), string(mark.Outcome),
				mark.Price, string(mark.Color), string(mark.Shape), mark.Title, mark.Message)
		}

		if _, err := query.RunWith(db).Exec(); err != nil {
			return errors.Wrap(errors.ErrCodeBacktestWriteFailed, "failed to insert marks", err)
		}
	}

	return nil
}

// LoadRunSummaries reads every stats.yaml below resultsFolder, ordered by
// strategy name and symbol.
func LoadRunSummaries(resultsFolder string) ([]types.RunSummary, error) {
	var summaries []types.RunSummary

	err := filepath.WalkDir(resultsFolder, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if entry.IsDir() || entry.Name() != statsFileName {
			return nil
		}

		found, err := types.ReadRunSummaries(path)
		if err != nil {
			return err
		}

		summaries = append(summaries, found...)

		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to read results from %s", resultsFolder)
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].Strategy.Name != summaries[j].Strategy.Name {
			return summaries[i].Strategy.Name < summaries[j].Strategy.Name
		}

		return summaries[i].Symbol < summaries[j].Symbol
	})

	return summaries, nil
}

func escapeLiteral(value string) string {
	return strings.ReplaceAll(value, "'", "''")
}
