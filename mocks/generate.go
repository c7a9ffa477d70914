package mocks

//go:generate mockgen -destination=./mock_datasource.go -package=mocks github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/datasource DataSource
//go:generate mockgen -destination=./mock_signal_generator.go -package=mocks github.com/rxtech-lab/argo-backtest/internal/strategy SignalGenerator
//go:generate mockgen -destination=./mock_cost_model.go -package=mocks github.com/rxtech-lab/argo-backtest/internal/backtest/engine/engine_v1/commission_fee CostModel
