package impl

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"
	"nexus/internal/errors"
	logs "nexus/internal/infra/log"
	"nexus/internal/usecase"

	"go.uber.org/fx"
)

// saleService implements the SaleUsecase interface.
type saleService struct {
	txManager repository.TransactionManager
	saleRepo  repository.SaleRepository
	validator *inputValidator
	now       func() time.Time
	logger    *slog.Logger
}

// SaleServiceParams holds dependencies for SaleService, injected by Fx.
type SaleServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	SaleRepo  repository.SaleRepository
	Logger    *slog.Logger
}

// NewSaleService is the constructor for saleService.
func NewSaleService(params SaleServiceParams) usecase.SaleUsecase {
	return &saleService{
		txManager: params.TxManager,
		saleRepo:  params.SaleRepo,
		validator: newInputValidator(),
		now:       time.Now,
		logger:    params.Logger,
	}
}

func (srv *saleService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// RecordSale runs the sale protocol in one unit of work:
//  1. lock the proprietor's ledger row, so concurrent sales recompute cash one after another
//  2. resolve the client and read the product, failing on insufficient stock before any write
//  3. insert the sale with the profit at current prices
//  4. decrement the product's stock
//  5. recompute the proprietor's cash from the whole sale history
func (srv *saleService) RecordSale(ctx context.Context, input *usecase.RecordSaleInput) (*entity.Sale, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	date := input.Date
	if date.IsZero() {
		date = srv.now()
	}

	sale := &entity.Sale{
		Date:      dateOnly(date),
		Quantity:  input.Quantity,
		ProductID: input.ProductID,
	}

	log := srv.log(ctx).With(
		slog.String("clientTaxId", input.ClientTaxID),
		slog.Int64("productId", input.ProductID),
		slog.Int("quantity", input.Quantity),
	)
	log.Info("Recording sale")

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewProprietorRepository().LockLedger(ctx); err != nil {
			return errors.Wrap(err, "failed to lock ledger")
		}

		clientID, err := repoFactory.NewClientRepository().FindPersonIDByTaxID(ctx, input.ClientTaxID)
		if err != nil {
			return errors.Wrap(err, "failed to resolve client")
		}
		sale.ClientID = clientID

		productRepo := repoFactory.NewProductRepository()

		product, err := productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			return errors.Wrap(err, "failed to read product")
		}
		if product.Quantity < input.Quantity {
			return domainerrors.ErrInsufficientStock.WithDetails(insufficientStockDetails(product, input.Quantity))
		}

		sale.Profit = entity.SaleProfit(product, input.Quantity)

		saleRepo := repoFactory.NewSaleRepository()
		if err := saleRepo.Create(ctx, sale); err != nil {
			return errors.Wrap(err, "failed to insert sale")
		}

		if err := productRepo.DecrementQuantity(ctx, product.ID, input.Quantity); err != nil {
			return errors.Wrap(err, "failed to decrement stock")
		}

		return recomputeCash(ctx, repoFactory)
	})
	if err != nil {
		log.Error("Failed to record sale", slog.Any("error", err))

		return nil, domainerrors.AsStorageFailure(err, "failed to record sale")
	}

	log.Debug("Sale recorded", slog.Int64("saleId", sale.ID), slog.String("profit", sale.Profit.String()))

	return sale, nil
}

// recomputeCash sets the proprietor's cash to the profit summed over every sale.
func recomputeCash(ctx context.Context, repoFactory repository.RepositoryFactory) error {
	total, err := repoFactory.NewSaleRepository().SumProfit(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to sum sale profit")
	}

	if err := repoFactory.NewProprietorRepository().UpdateCash(ctx, total); err != nil {
		return errors.Wrap(err, "failed to update proprietor cash")
	}

	return nil
}

// ListSales returns every sale with its client, client address and product.
func (srv *saleService) ListSales(ctx context.Context) ([]*entity.SaleDetail, error) {
	sales, err := srv.saleRepo.ListDetails(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sales")
	}

	return sales, nil
}

func insufficientStockDetails(product *entity.Product, requested int) string {
	return product.Name + ": requested " + strconv.Itoa(requested) + ", on hand " + strconv.Itoa(product.Quantity)
}

// dateOnly truncates t to midnight UTC of its calendar day.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
