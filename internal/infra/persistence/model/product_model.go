package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductModel mirrors the 'product' table.
type ProductModel struct {
	ID        int64           `gorm:"column:item_id;primaryKey;autoIncrement"`
	Name      *string         `gorm:"column:name"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price"`
	Quantity  int             `gorm:"column:quantity"`
	Category  string          `gorm:"column:category"`
	CostPrice decimal.Decimal `gorm:"column:cost_price"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "product"
}

// SaleModel mirrors the 'sale' table. ClientID references client.person_id.
type SaleModel struct {
	ID       int64           `gorm:"column:sale_id;primaryKey;autoIncrement"`
	ClientID int64           `gorm:"column:client_id"`
	ItemID   int64           `gorm:"column:item_id"`
	Date     time.Time       `gorm:"column:date"`
	Quantity int             `gorm:"column:quantity"`
	Profit   decimal.Decimal `gorm:"column:profit"`
}

// TableName explicitly sets the table name for GORM.
func (SaleModel) TableName() string {
	return "sale"
}
