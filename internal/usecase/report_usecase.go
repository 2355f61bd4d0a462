package usecase

import (
	"context"
	"time"

	"nexus/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Period is a calendar month.
type Period struct {
	Year  int        `validate:"gte=1"`
	Month time.Month `validate:"gte=1,lte=12"`
}

// ReportUsecase defines the read-only monthly reports.
type ReportUsecase interface {
	// MonthlyProfit returns the profit summed over the sales of period, zero when there are none.
	MonthlyProfit(ctx context.Context, period Period) (decimal.Decimal, error)

	// BestSeller returns the product with the highest quantity sold in period, ties broken by
	// the lowest product ID, or nil when nothing was sold.
	BestSeller(ctx context.Context, period Period) (*entity.ProductSales, error)

	// MonthlySales returns the sales of period with their product and client tax ID.
	MonthlySales(ctx context.Context, period Period) ([]*entity.SaleDetail, error)
}
