package usecase

import (
	"context"

	"nexus/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ProductInput defines the data required to create or update a product.
type ProductInput struct {
	Name      string          `validate:"required"`
	UnitPrice decimal.Decimal `validate:"gte=0"`
	CostPrice decimal.Decimal `validate:"gte=0"`
	Quantity  int             `validate:"gte=0"`
	Category  string
}

// ProductUsecase defines the interface for product-related business operations.
type ProductUsecase interface {
	CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error)

	// GetProduct returns the product with id, or nil when there is none.
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)

	ListProducts(ctx context.Context) ([]*entity.Product, error)

	// UpdateProduct overwrites every field of the product with id.
	UpdateProduct(ctx context.Context, id int64, input *ProductInput) error

	// DeleteProduct removes a product no sale references.
	DeleteProduct(ctx context.Context, id int64) error
}
