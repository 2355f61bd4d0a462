package repository

import (
	"context"

	"nexus/internal/domain/entity"
)

// ProductRepository defines the interface for product persistence.
type ProductRepository interface {
	// Create inserts the product and back-fills its generated ID.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product by its ID.
	FindByID(ctx context.Context, id int64) (*entity.Product, error)

	// List returns every product ordered by ID.
	List(ctx context.Context) ([]*entity.Product, error)

	// Update overwrites every field of the product identified by product.ID.
	Update(ctx context.Context, product *entity.Product) error

	// Delete removes the product identified by id.
	Delete(ctx context.Context, id int64) error

	// DecrementQuantity subtracts quantity from the product's on-hand stock.
	DecrementQuantity(ctx context.Context, id int64, quantity int) error
}
