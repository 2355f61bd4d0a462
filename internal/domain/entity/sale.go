package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale records a quantity of a product sold to a client.
// Profit is captured when the sale is recorded and never recomputed afterwards.
type Sale struct {
	ID        int64
	Date      time.Time
	Quantity  int
	ClientID  int64 // person_id of the buying client.
	ProductID int64
	Profit    decimal.Decimal
}

// SaleProfit computes the profit of selling quantity units of product at its current prices.
func SaleProfit(product *Product, quantity int) decimal.Decimal {
	return product.UnitProfit().Mul(decimal.NewFromInt(int64(quantity)))
}

// SaleDetail is a sale joined with the client and product it references, for display.
// Client is only partially populated by listings that do not join the client's address.
type SaleDetail struct {
	Sale    Sale
	Client  Client
	Product Product
}

// ProductSales is the quantity of one product sold within a period.
type ProductSales struct {
	ProductID   int64
	ProductName string
	Quantity    int
}
