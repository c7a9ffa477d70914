package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseType string

const (
	PurchaseTypeBuy  PurchaseType = "BUY"
	PurchaseTypeSell PurchaseType = "SELL"
)

// TradeRecord is one executed fill. The trade list of a run is append-only.
type TradeRecord struct {
	Symbol    string       `yaml:"symbol" json:"symbol" csv:"symbol"`
	Timestamp time.Time    `yaml:"timestamp" json:"timestamp" csv:"timestamp"`
	Side      PurchaseType `yaml:"side" json:"side" csv:"side"`
	Price     float64      `yaml:"price" json:"price" csv:"price"`
	Quantity  float64      `yaml:"quantity" json:"quantity" csv:"quantity"`
	// Fee is the total transaction cost charged on this fill
	Fee float64 `yaml:"fee" json:"fee" csv:"fee"`
	// RealizedProfit is always 0 for BUY. For SELL it is
	// (sell_price - average_entry_price) * quantity minus the costs of both legs.
	// For example, 100 shares bought at $10.00 with $1.00 fees and sold at $11.00
	// with $1.50 fees realize (11-10)*100 - 1.50 - 1.00 = $97.50.
	RealizedProfit float64 `yaml:"realized_profit" json:"realized_profit" csv:"realized_profit"`
	// BarIndex is the position of the bar in the run's input sequence
	BarIndex int    `yaml:"bar_index" json:"bar_index" csv:"bar_index"`
	Reason   string `yaml:"reason" json:"reason" csv:"reason"`
}

// Position represents current long holdings of a single symbol.
// Quantity == 0 implies AverageEntryPrice == 0 and UnrealizedPnL == 0.
type Position struct {
	Symbol            string          `yaml:"symbol" json:"symbol"`
	Quantity          decimal.Decimal `yaml:"quantity" json:"quantity"`
	AverageEntryPrice decimal.Decimal `yaml:"average_entry_price" json:"average_entry_price"`
	UnrealizedPnL     decimal.Decimal `yaml:"unrealized_pnl" json:"unrealized_pnl"`
	RealizedPnL       decimal.Decimal `yaml:"realized_pnl" json:"realized_pnl"`
	// EntryFees are the buy-side costs paid for the open quantity. They are
	// charged against the realized profit when the position is closed.
	EntryFees     decimal.Decimal `yaml:"entry_fees" json:"entry_fees"`
	OpenTimestamp time.Time       `yaml:"open_timestamp" json:"open_timestamp"`
	OpenBarIndex  int             `yaml:"open_bar_index" json:"open_bar_index"`
}

// NewPosition returns a flat position for symbol.
func NewPosition(symbol string) Position {
	return Position{
		Symbol:            symbol,
		Quantity:          decimal.Zero,
		AverageEntryPrice: decimal.Zero,
		UnrealizedPnL:     decimal.Zero,
		RealizedPnL:       decimal.Zero,
		EntryFees:         decimal.Zero,
	}
}

// IsFlat reports whether the position holds nothing.
func (p *Position) IsFlat() bool {
	return !p.Quantity.IsPositive()
}

// Buy adds quantity at price to the position and re-weights the average entry price.
func (p *Position) Buy(price, quantity, fees decimal.Decimal, at time.Time, barIndex int) {
	if p.IsFlat() {
		p.OpenTimestamp = at
		p.OpenBarIndex = barIndex
	}

	totalCost := p.AverageEntryPrice.Mul(p.Quantity).Add(price.Mul(quantity))
	p.Quantity = p.Quantity.Add(quantity)
	p.AverageEntryPrice = totalCost.Div(p.Quantity)
	p.EntryFees = p.EntryFees.Add(fees)
	p.Mark(price)
}

// Sell liquidates the whole position at price and returns the sold quantity
// and the realized profit net of the sell fees and the accumulated entry fees.
func (p *Position) Sell(price, fees decimal.Decimal) (quantity, realized decimal.Decimal) {
	if p.IsFlat() {
		return decimal.Zero, decimal.Zero
	}

	quantity = p.Quantity
	realized = price.Sub(p.AverageEntryPrice).Mul(quantity).Sub(fees).Sub(p.EntryFees)

	p.RealizedPnL = p.RealizedPnL.Add(realized)
	p.Quantity = decimal.Zero
	p.AverageEntryPrice = decimal.Zero
	p.UnrealizedPnL = decimal.Zero
	p.EntryFees = decimal.Zero
	p.OpenTimestamp = time.Time{}
	p.OpenBarIndex = 0

	return quantity, realized
}

// Mark updates the unrealized profit to the given price.
func (p *Position) Mark(price decimal.Decimal) {
	if p.IsFlat() {
		p.UnrealizedPnL = decimal.Zero

		return
	}

	p.UnrealizedPnL = price.Sub(p.AverageEntryPrice).Mul(p.Quantity)
}

// MarketValue returns quantity * price.
func (p *Position) MarketValue(price decimal.Decimal) decimal.Decimal {
	return p.Quantity.Mul(price)
}
