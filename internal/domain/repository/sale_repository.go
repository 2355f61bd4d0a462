package repository

import (
	"context"
	"time"

	"nexus/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for the append-only sale history.
// Period queries use the half-open interval [from, to).
type SaleRepository interface {
	// Create inserts the sale and back-fills its generated ID.
	Create(ctx context.Context, sale *entity.Sale) error

	// SumProfit returns the profit summed over every sale, zero when there are none.
	SumProfit(ctx context.Context) (decimal.Decimal, error)

	// CountByProduct returns how many sales reference the product.
	CountByProduct(ctx context.Context, productID int64) (int64, error)

	// ListDetails returns every sale with its client, client address and product.
	ListDetails(ctx context.Context) ([]*entity.SaleDetail, error)

	// ListDetailsBetween returns the sales of a period with their product and client tax ID.
	ListDetailsBetween(ctx context.Context, from, to time.Time) ([]*entity.SaleDetail, error)

	// SumProfitBetween returns the profit summed over the sales of a period.
	SumProfitBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// BestSellerBetween returns the product with the highest sold quantity in a period,
	// ties broken by the lowest product ID. It returns nil when nothing was sold.
	BestSellerBetween(ctx context.Context, from, to time.Time) (*entity.ProductSales, error)
}

// MaintenanceRepository groups whole-store operations.
type MaintenanceRepository interface {
	// Reset deletes every row of every table and restarts identity generation.
	Reset(ctx context.Context) error
}
