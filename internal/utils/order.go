package utils

import (
	"github.com/shopspring/decimal"
)

// CostFunc returns the transaction cost of buying quantity units.
type CostFunc func(quantity decimal.Decimal) decimal.Decimal

// CalculateMaxLots returns the largest number of whole lots whose notional plus
// cost fits into balance.
func CalculateMaxLots(balance, price decimal.Decimal, lotSize int64, cost CostFunc) int64 {
	// Handle edge cases
	if !price.IsPositive() || !balance.IsPositive() || lotSize <= 0 {
		return 0
	}

	lot := decimal.NewFromInt(lotSize)
	unit := price.Mul(lot)

	// Upper bound ignoring costs
	upper := balance.Div(unit).Floor().IntPart()
	if upper == 0 {
		return 0
	}

	// Refine with the average cost per lot at the upper bound; this lands within
	// a lot or two of the answer for linear fee schedules.
	perLot := unit.Add(cost(lot.Mul(decimal.NewFromInt(upper))).Div(decimal.NewFromInt(upper)))
	lots := balance.Div(perLot).Floor().IntPart()

	fits := func(n int64) bool {
		quantity := lot.Mul(decimal.NewFromInt(n))

		return quantity.Mul(price).Add(cost(quantity)).LessThanOrEqual(balance)
	}

	for lots > 0 && !fits(lots) {
		lots--
	}

	for lots < upper && fits(lots+1) {
		lots++
	}

	return lots
}
