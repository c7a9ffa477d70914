package commission_fee

import (
	"github.com/rxtech-lab/argo-backtest/internal/types"
	"github.com/shopspring/decimal"
)

type CommissionFee interface {
	// Calculate returns the total transaction cost of one fill in the market's currency
	Calculate(side types.PurchaseType, price, quantity decimal.Decimal) decimal.Decimal
}

// AllMarketProfiles lists the built-in market profiles, used for config schema enums.
var AllMarketProfiles = []any{
	types.MarketProfileUS,
	types.MarketProfileHK,
	types.MarketProfileZero,
}

// PercentageCommissionParams configures a percentage-commission market (profile A).
type PercentageCommissionParams struct {
	// Rate is applied to the notional
	Rate decimal.Decimal
	// Minimum is the commission floor
	Minimum decimal.Decimal
	// FlatFee is charged on every fill on top of the commission
	FlatFee decimal.Decimal
}

// PercentageCommissionFee charges max(notional*rate, minimum) + flat fee on both sides.
type PercentageCommissionFee struct {
	params PercentageCommissionParams
}

func NewPercentageCommissionFee(params PercentageCommissionParams) CommissionFee {
	return &PercentageCommissionFee{params: params}
}

func (c *PercentageCommissionFee) Calculate(_ types.PurchaseType, price, quantity decimal.Decimal) decimal.Decimal {
	commission := decimal.Max(price.Mul(quantity).Mul(c.params.Rate), c.params.Minimum)

	return commission.Add(c.params.FlatFee)
}

// StampDutyCommissionParams configures a stamp-duty market (profile B).
type StampDutyCommissionParams struct {
	Rate decimal.Decimal
	// Minimum is the commission floor, zero for none
	Minimum decimal.Decimal
	// StampDuty is a rate on the notional charged on SELL only
	StampDuty decimal.Decimal
	FlatFee   decimal.Decimal
}

// StampDutyCommissionFee charges notional*rate + flat fee on both sides and adds
// stamp duty on sells.
type StampDutyCommissionFee struct {
	params StampDutyCommissionParams
}

func NewStampDutyCommissionFee(params StampDutyCommissionParams) CommissionFee {
	return &StampDutyCommissionFee{params: params}
}

func (c *StampDutyCommissionFee) Calculate(side types.PurchaseType, price, quantity decimal.Decimal) decimal.Decimal {
	notional := price.Mul(quantity)

	fee := decimal.Max(notional.Mul(c.params.Rate), c.params.Minimum).Add(c.params.FlatFee)
	if side == types.PurchaseTypeSell {
		fee = fee.Add(notional.Mul(c.params.StampDuty))
	}

	return fee
}
