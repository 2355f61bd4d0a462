package entity

import "github.com/shopspring/decimal"

// Product is an item the proprietor sells.
type Product struct {
	ID        int64
	Name      string
	UnitPrice decimal.Decimal // Sale price of one unit.
	CostPrice decimal.Decimal // Acquisition cost of one unit.
	Quantity  int             // On-hand stock, never negative.
	Category  string
}

// UnitProfit returns the margin earned on a single unit at current prices.
func (p *Product) UnitProfit() decimal.Decimal {
	return p.UnitPrice.Sub(p.CostPrice)
}
