package impl

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"nexus/internal/domain/entity"
	"nexus/internal/domain/repository"
	"nexus/internal/errors"
	logs "nexus/internal/infra/log"
	"nexus/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// reportService implements the ReportUsecase interface. Reports read outside any unit of work.
type reportService struct {
	saleRepo  repository.SaleRepository
	validator *inputValidator
	logger    *slog.Logger
}

// ReportServiceParams holds dependencies for ReportService, injected by Fx.
type ReportServiceParams struct {
	fx.In

	SaleRepo repository.SaleRepository
	Logger   *slog.Logger
}

// NewReportService is the constructor for reportService.
func NewReportService(params ReportServiceParams) usecase.ReportUsecase {
	return &reportService{
		saleRepo:  params.SaleRepo,
		validator: newInputValidator(),
		logger:    params.Logger,
	}
}

func (srv *reportService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// MonthlyProfit returns the profit summed over the sales of period.
func (srv *reportService) MonthlyProfit(ctx context.Context, period usecase.Period) (decimal.Decimal, error) {
	from, to, err := srv.bounds(period)
	if err != nil {
		return decimal.Zero, err
	}

	profit, err := srv.saleRepo.SumProfitBetween(ctx, from, to)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to compute monthly profit")
	}

	srv.log(ctx).Debug("Monthly profit computed", slog.String("period", periodLabel(period)), slog.String("profit", profit.String()))

	return profit, nil
}

// BestSeller returns the best-selling product of period, or nil when nothing was sold.
func (srv *reportService) BestSeller(ctx context.Context, period usecase.Period) (*entity.ProductSales, error) {
	from, to, err := srv.bounds(period)
	if err != nil {
		return nil, err
	}

	best, err := srv.saleRepo.BestSellerBetween(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find best seller")
	}

	return best, nil
}

// MonthlySales returns the sales of period.
func (srv *reportService) MonthlySales(ctx context.Context, period usecase.Period) ([]*entity.SaleDetail, error) {
	from, to, err := srv.bounds(period)
	if err != nil {
		return nil, err
	}

	sales, err := srv.saleRepo.ListDetailsBetween(ctx, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list monthly sales")
	}

	return sales, nil
}

// bounds returns the half-open interval [first day of period, first day of the next month).
func (srv *reportService) bounds(period usecase.Period) (time.Time, time.Time, error) {
	if err := srv.validator.Struct(&period); err != nil {
		return time.Time{}, time.Time{}, err
	}

	from := time.Date(period.Year, period.Month, 1, 0, 0, 0, 0, time.UTC)

	return from, from.AddDate(0, 1, 0), nil
}

func periodLabel(period usecase.Period) string {
	return strconv.Itoa(period.Year) + "-" + period.Month.String()
}
