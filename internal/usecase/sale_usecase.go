package usecase

import (
	"context"
	"time"

	"nexus/internal/domain/entity"
)

// RecordSaleInput defines the data required to record a sale.
// A zero Date records the sale today.
type RecordSaleInput struct {
	ClientTaxID string `validate:"required"`
	ProductID   int64  `validate:"gt=0"`
	Quantity    int    `validate:"gt=0"`
	Date        time.Time
}

// SaleUsecase defines the interface of the sale transaction engine.
type SaleUsecase interface {
	// RecordSale checks stock, records the sale, decrements stock and recomputes the
	// proprietor's cash, all in one unit of work.
	RecordSale(ctx context.Context, input *RecordSaleInput) (*entity.Sale, error)

	// ListSales returns every sale with its client, client address and product.
	ListSales(ctx context.Context) ([]*entity.SaleDetail, error)
}
