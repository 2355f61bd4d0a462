package gormrepo

import (
	"context"
	"strconv"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"
	"nexus/internal/errors"
	"nexus/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// productRepository implements the repository.ProductRepository interface.
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository is the constructor for productRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create inserts the product and back-fills its generated ID.
func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	if err := repo.db.WithContext(ctx).Create(productM).Error; err != nil {
		return translateProductWriteError(err, "failed to create product")
	}

	product.ID = productM.ID

	return nil
}

// FindByID retrieves a product by its ID.
func (repo *productRepository) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	var productM model.ProductModel

	if err := repo.db.WithContext(ctx).Where("item_id = ?", id).Take(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrProductNotFound.WithDetails(productRef(id))
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

// List returns every product ordered by ID.
func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var productMs []*model.ProductModel

	if err := repo.db.WithContext(ctx).Order("item_id").Find(&productMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(productMs))
	for _, productM := range productMs {
		products = append(products, toProductDomain(productM))
	}

	return products, nil
}

// Update overwrites every field of the product identified by product.ID.
func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("item_id = ?", product.ID).
		Select("name", "unit_price", "quantity", "category", "cost_price").
		Updates(productM)
	if result.Error != nil {
		return translateProductWriteError(result.Error, "failed to update product")
	}

	if result.RowsAffected == 0 {
		return domainerrors.ErrProductNotFound.WithDetails(productRef(product.ID))
	}

	return nil
}

// Delete removes the product identified by id. A product referenced by sales is kept.
func (repo *productRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Where("item_id = ?", id).Delete(&model.ProductModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrReferencedByDependents.WithDetails(productRef(id) + " has recorded sales")
		}

		return domainerrors.NewStorageFailureError(result.Error, "failed to delete product")
	}

	if result.RowsAffected == 0 {
		return domainerrors.ErrProductNotFound.WithDetails(productRef(id))
	}

	return nil
}

// DecrementQuantity subtracts quantity from the product's on-hand stock.
// The CHECK (quantity >= 0) constraint rejects a decrement below zero.
func (repo *productRepository) DecrementQuantity(ctx context.Context, id int64, quantity int) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProductModel{}).
		Where("item_id = ?", id).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrInsufficientStock.WithDetails(productRef(id))
		}

		return domainerrors.NewStorageFailureError(result.Error, "failed to decrement product quantity")
	}

	if result.RowsAffected == 0 {
		return domainerrors.ErrProductNotFound.WithDetails(productRef(id))
	}

	return nil
}

func translateProductWriteError(err error, details string) error {
	switch classifyConstraint(err) {
	case constraintNotNull:
		return domainerrors.ErrMissingRequiredField.WrapMessage("missing required product information")
	case constraintCheck:
		return domainerrors.ErrValidationFailed.WrapMessage("product quantity cannot be negative")
	}

	return domainerrors.NewStorageFailureError(err, details)
}

func productRef(id int64) string {
	return "product " + strconv.FormatInt(id, 10)
}

// --- Mapper Functions ---

func toProductDomain(productM *model.ProductModel) *entity.Product {
	return &entity.Product{
		ID:        productM.ID,
		Name:      model.StringValue(productM.Name),
		UnitPrice: productM.UnitPrice,
		CostPrice: productM.CostPrice,
		Quantity:  productM.Quantity,
		Category:  productM.Category,
	}
}

func fromProductDomain(product *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:        product.ID,
		Name:      model.NullableString(product.Name),
		UnitPrice: product.UnitPrice,
		Quantity:  product.Quantity,
		Category:  product.Category,
		CostPrice: product.CostPrice,
	}
}
