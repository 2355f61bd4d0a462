package gormrepo

import (
	"context"
	"testing"

	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/infra/persistence/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_CreateAndFind(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)

	product := newTestProduct("Widget", "10.00", "6.00", 5)
	require.NoError(t, repo.Create(ctx, product))
	assert.EqualValues(t, 1, product.ID)

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Widget", found.Name)
	assert.Equal(t, 5, found.Quantity)
	assert.True(t, product.UnitPrice.Equal(found.UnitPrice))
	assert.True(t, product.CostPrice.Equal(found.CostPrice))

	_, err = repo.FindByID(ctx, 404)
	require.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductRepository_Create_Invalid(t *testing.T) {
	db := openTestDB(t)
	repo := NewProductRepository(db)

	err := repo.Create(context.Background(), newTestProduct("", "1", "1", 1))
	require.ErrorIs(t, err, domainerrors.ErrMissingRequiredField)

	err = repo.Create(context.Background(), newTestProduct("Widget", "1", "1", -1))
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	assert.Zero(t, dbtest.Count(t, db, "product"))
}

func TestProductRepository_ListAndUpdate(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	widget := seedProduct(t, db, "Widget", "10.00", "6.00", 5)
	seedProduct(t, db, "Gadget", "3.50", "1.25", 2)

	widget.Name = "Widget XL"
	widget.Quantity = 0
	require.NoError(t, repo.Update(ctx, widget))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "Widget XL", products[0].Name)
	assert.Equal(t, 0, products[0].Quantity)
	assert.Equal(t, "Gadget", products[1].Name)

	widget.ID = 404
	require.ErrorIs(t, repo.Update(ctx, widget), domainerrors.ErrProductNotFound)
}

func TestProductRepository_DecrementQuantity(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	product := seedProduct(t, db, "Widget", "10.00", "6.00", 5)

	require.NoError(t, repo.DecrementQuantity(ctx, product.ID, 2))

	err := repo.DecrementQuantity(ctx, product.ID, 4)
	require.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	err = repo.DecrementQuantity(ctx, 404, 1)
	require.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, found.Quantity)
}

func TestProductRepository_Delete(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProductRepository(db)
	sold := seedProduct(t, db, "Widget", "10.00", "6.00", 5)
	unsold := seedProduct(t, db, "Gadget", "3.50", "1.25", 2)
	seedSale(t, db, seedClient(t, db, "111"), sold, 1, day(2024, 3, 10))

	err := repo.Delete(ctx, sold.ID)
	require.ErrorIs(t, err, domainerrors.ErrReferencedByDependents)

	require.NoError(t, repo.Delete(ctx, unsold.ID))
	require.ErrorIs(t, repo.Delete(ctx, unsold.ID), domainerrors.ErrProductNotFound)

	assert.EqualValues(t, 1, dbtest.Count(t, db, "product"))
}
