package gormrepo

import (
	"context"
	"testing"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/infra/persistence/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonRepository_Create_DuplicateTaxID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seedClient(t, db, "111")

	address := &entity.Address{Street: "Rua B"}
	require.NoError(t, NewAddressRepository(db).Create(ctx, address))

	err := NewPersonRepository(db).Create(ctx, &entity.Person{TaxID: "111", Name: "Other", Address: *address})

	require.ErrorIs(t, err, domainerrors.ErrDuplicateIdentity)
	assert.EqualValues(t, 1, dbtest.Count(t, db, "person"))
}

func TestPersonRepository_Create_MissingName(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	address := &entity.Address{Street: "Rua B"}
	require.NoError(t, NewAddressRepository(db).Create(ctx, address))

	err := NewPersonRepository(db).Create(ctx, &entity.Person{TaxID: "222", Address: *address})

	require.ErrorIs(t, err, domainerrors.ErrMissingRequiredField)
}

func TestPersonRepository_Update_NotFound(t *testing.T) {
	db := openTestDB(t)

	err := NewPersonRepository(db).Update(context.Background(), &entity.Person{TaxID: "404", Name: "Nobody"})

	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAddressRepository_UpdateByTaxID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	client := seedClient(t, db, "111")
	repo := NewAddressRepository(db)

	err := repo.UpdateByTaxID(ctx, "111", &entity.Address{Street: "Av. Boa Viagem", City: "Recife", Number: "900"})
	require.NoError(t, err)

	addressID, err := repo.FindIDByTaxID(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, client.Address.ID, addressID)

	found, err := NewClientRepository(db).FindByTaxID(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, "Av. Boa Viagem", found.Address.Street)
	assert.Equal(t, "900", found.Address.Number)
	assert.Empty(t, found.Address.Neighborhood)
}

func TestAddressRepository_UpdateByTaxID_NotFound(t *testing.T) {
	db := openTestDB(t)

	err := NewAddressRepository(db).UpdateByTaxID(context.Background(), "404", &entity.Address{Street: "x"})

	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestAddressRepository_Delete_StillOwned(t *testing.T) {
	db := openTestDB(t)
	client := seedClient(t, db, "111")

	err := NewAddressRepository(db).Delete(context.Background(), client.Address.ID)

	require.ErrorIs(t, err, domainerrors.ErrReferencedByDependents)
	assert.EqualValues(t, 1, dbtest.Count(t, db, "address"))
}
