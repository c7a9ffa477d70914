package commission_fee

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/rxtech-lab/argo-backtest/internal/utils"
	"github.com/rxtech-lab/argo-backtest/pkg/errors"
	"github.com/shopspring/decimal"
)

// DefaultCapitalUsage is the share of available cash a BUY may spend.
var DefaultCapitalUsage = decimal.NewFromFloat(0.9)

// CostModel decides whether a signal can be executed, for how much, and at what cost.
type CostModel interface {
	// Name returns the market profile name
	Name() types.MarketProfileName
	// PlanBuy sizes a BUY of symbol at price with cash available.
	// price must be positive.
	PlanBuy(symbol string, cash, price decimal.Decimal) TradePlan
	// PlanSell prices the liquidation of quantity units of symbol at price.
	PlanSell(symbol string, quantity, price decimal.Decimal) TradePlan
	// MinutesPerDay is the length of one trading session
	MinutesPerDay() int
}

// TradePlan is the outcome of sizing a trade. Quantity is zero when not executable.
type TradePlan struct {
	Executable bool
	Side       types.PurchaseType
	Quantity   decimal.Decimal
	Price      decimal.Decimal
	Notional   decimal.Decimal
	Cost       decimal.Decimal
}

// CashDelta is the signed change of cash when the plan is executed.
func (p TradePlan) CashDelta() decimal.Decimal {
	if !p.Executable {
		return decimal.Zero
	}

	if p.Side == types.PurchaseTypeBuy {
		return p.Notional.Add(p.Cost).Neg()
	}

	return p.Notional.Sub(p.Cost)
}

var _ CostModel = (*MarketProfile)(nil)

// MarketProfile bundles the lot size and transaction cost rules of a market.
type MarketProfile struct {
	name           types.MarketProfileName
	lotSize        int64
	symbolLotSizes map[string]int64
	minutesPerDay  int
	capitalUsage   decimal.Decimal
	fee            CommissionFee
}

// MarketProfileParams configures a custom market profile.
type MarketProfileParams struct {
	Name           types.MarketProfileName
	LotSize        int64
	SymbolLotSizes map[string]int64
	MinutesPerDay  int
	// CapitalUsage defaults to DefaultCapitalUsage when zero
	CapitalUsage decimal.Decimal
	Fee          CommissionFee
}

// NewMarketProfile creates a market profile. The lot table is copied.
func NewMarketProfile(params MarketProfileParams) (*MarketProfile, error) {
	if params.LotSize <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidMarketProfile, "lot size must be positive, got %d", params.LotSize)
	}

	if params.Fee == nil {
		return nil, errors.New(errors.ErrCodeInvalidMarketProfile, "market profile needs a commission fee")
	}

	usage := params.CapitalUsage
	if usage.IsZero() {
		usage = DefaultCapitalUsage
	}

	if !usage.IsPositive() || usage.GreaterThan(decimal.NewFromInt(1)) {
		return nil, errors.Newf(errors.ErrCodeInvalidMarketProfile, "capital usage must be in (0, 1], got %s", usage)
	}

	minutes := params.MinutesPerDay
	if minutes <= 0 {
		minutes = 390
	}

	lots := make(map[string]int64, len(params.SymbolLotSizes))
	for symbol, size := range params.SymbolLotSizes {
		lots[symbol] = size
	}

	return &MarketProfile{
		name:           params.Name,
		lotSize:        params.LotSize,
		symbolLotSizes: lots,
		minutesPerDay:  minutes,
		capitalUsage:   usage,
		fee:            params.Fee,
	}, nil
}

// GetMarketProfile returns a fresh instance of a built-in market profile.
func GetMarketProfile(name types.MarketProfileName) (*MarketProfile, error) {
	switch name {
	case types.MarketProfileUS:
		return NewMarketProfile(MarketProfileParams{
			Name:          types.MarketProfileUS,
			LotSize:       100,
			MinutesPerDay: 390,
			Fee: NewPercentageCommissionFee(PercentageCommissionParams{
				Rate:    decimal.NewFromFloat(0.0025),
				Minimum: decimal.NewFromInt(1),
				FlatFee: decimal.NewFromInt(1),
			}),
		})
	case types.MarketProfileHK:
		return NewMarketProfile(MarketProfileParams{
			Name:    types.MarketProfileHK,
			LotSize: 100,
			SymbolLotSizes: map[string]int64{
				"00700": 100,
				"09988": 100,
				"03690": 100,
			},
			MinutesPerDay: 330,
			Fee: NewStampDutyCommissionFee(StampDutyCommissionParams{
				Rate:      decimal.NewFromFloat(0.0027),
				StampDuty: decimal.NewFromFloat(0.0013),
				FlatFee:   decimal.NewFromInt(3),
			}),
		})
	case types.MarketProfileZero:
		return NewMarketProfile(MarketProfileParams{
			Name:          types.MarketProfileZero,
			LotSize:       1,
			MinutesPerDay: 390,
			Fee:           NewZeroCommissionFee(),
		})
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidMarketProfile, "unsupported market profile %q", string(name))
	}
}

func (m *MarketProfile) Name() types.MarketProfileName {
	return m.name
}

func (m *MarketProfile) MinutesPerDay() int {
	return m.minutesPerDay
}

// LotSizeFor returns the per-symbol lot size, falling back to the market default.
func (m *MarketProfile) LotSizeFor(symbol string) int64 {
	if size, ok := m.symbolLotSizes[symbol]; ok && size > 0 {
		return size
	}

	return m.lotSize
}

// Fee calculates the transaction cost of one fill.
func (m *MarketProfile) Fee(side types.PurchaseType, price, quantity decimal.Decimal) decimal.Decimal {
	return m.fee.Calculate(side, price, quantity)
}

// PlanBuy buys the largest multiple of the lot size whose notional plus cost
// fits into cash * capital usage.
func (m *MarketProfile) PlanBuy(symbol string, cash, price decimal.Decimal) TradePlan {
	plan := TradePlan{Side: types.PurchaseTypeBuy, Price: price, Quantity: decimal.Zero, Notional: decimal.Zero, Cost: decimal.Zero}

	budget := cash.Mul(m.capitalUsage)
	lotSize := m.LotSizeFor(symbol)

	lots := utils.CalculateMaxLots(budget, price, lotSize, func(quantity decimal.Decimal) decimal.Decimal {
		return m.fee.Calculate(types.PurchaseTypeBuy, price, quantity)
	})
	if lots == 0 {
		return plan
	}

	quantity := decimal.NewFromInt(lots * lotSize)
	notional := price.Mul(quantity)
	cost := m.fee.Calculate(types.PurchaseTypeBuy, price, quantity)

	if notional.Add(cost).GreaterThan(cash) {
		return plan
	}

	plan.Quantity = quantity
	plan.Notional = notional
	plan.Cost = cost
	plan.Executable = true

	return plan
}

// PlanSell always liquidates the whole quantity. It is not executable when flat.
func (m *MarketProfile) PlanSell(_ string, quantity, price decimal.Decimal) TradePlan {
	plan := TradePlan{Side: types.PurchaseTypeSell, Price: price, Quantity: decimal.Zero, Notional: decimal.Zero, Cost: decimal.Zero}

	if !quantity.IsPositive() || !price.IsPositive() {
		return plan
	}

	plan.Quantity = quantity
	plan.Notional = price.Mul(quantity)
	plan.Cost = m.fee.Calculate(types.PurchaseTypeSell, price, quantity)
	plan.Executable = true

	return plan
}
