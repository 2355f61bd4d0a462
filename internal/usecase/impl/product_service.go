package impl

import (
	"context"
	"log/slog"
	"strconv"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"
	"nexus/internal/errors"
	logs "nexus/internal/infra/log"
	"nexus/internal/usecase"

	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	validator   *inputValidator
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		validator:   newInputValidator(),
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// CreateProduct inserts a new product.
func (srv *productService) CreateProduct(ctx context.Context, input *usecase.ProductInput) (*entity.Product, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	product := buildProduct(0, input)

	if err := srv.productRepo.Create(ctx, product); err != nil {
		srv.log(ctx).Error("Failed to create product", slog.String("name", input.Name), slog.Any("error", err))

		return nil, domainerrors.AsStorageFailure(err, "failed to create product")
	}

	srv.log(ctx).Info("Product created", slog.Int64("productId", product.ID), slog.String("name", product.Name))

	return product, nil
}

// GetProduct returns the product with id, or nil when there is none.
func (srv *productService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrProductNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to get product")
	}

	return product, nil
}

// ListProducts returns every product.
func (srv *productService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// UpdateProduct overwrites every field of the product with id.
func (srv *productService) UpdateProduct(ctx context.Context, id int64, input *usecase.ProductInput) error {
	if err := srv.validator.Struct(input); err != nil {
		return err
	}

	if err := srv.productRepo.Update(ctx, buildProduct(id, input)); err != nil {
		srv.log(ctx).Error("Failed to update product", slog.Int64("productId", id), slog.Any("error", err))

		return domainerrors.AsStorageFailure(err, "failed to update product")
	}

	return nil
}

// DeleteProduct removes a product no sale references. The sale count is checked
// inside the same unit of work as the delete.
func (srv *productService) DeleteProduct(ctx context.Context, id int64) error {
	srv.log(ctx).Info("Deleting product", slog.Int64("productId", id))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		sales, err := repoFactory.NewSaleRepository().CountByProduct(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to count product sales")
		}
		if sales > 0 {
			return domainerrors.ErrReferencedByDependents.WithDetails(
				"product " + strconv.FormatInt(id, 10) + " has " + strconv.FormatInt(sales, 10) + " recorded sales")
		}

		if err := repoFactory.NewProductRepository().Delete(ctx, id); err != nil {
			return errors.Wrap(err, "failed to delete product")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete product", slog.Int64("productId", id), slog.Any("error", err))

		return domainerrors.AsStorageFailure(err, "failed to delete product")
	}

	return nil
}

func buildProduct(id int64, input *usecase.ProductInput) *entity.Product {
	return &entity.Product{
		ID:        id,
		Name:      input.Name,
		UnitPrice: input.UnitPrice,
		CostPrice: input.CostPrice,
		Quantity:  input.Quantity,
		Category:  input.Category,
	}
}
