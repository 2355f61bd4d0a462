package gormrepo

import (
	"context"
	"testing"

	"nexus/internal/domain/entity"
	"nexus/internal/domain/repository"
	"nexus/internal/errors"
	"nexus/internal/infra/persistence/database/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionManager_Execute_Commits(t *testing.T) {
	db := openTestDB(t)
	tm := NewTransactionManager(db, dbtest.NewDiscardLogger())
	ctx := context.Background()

	err := tm.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewAddressRepository().Create(ctx, &entity.Address{Street: "Rua A"})
	})

	require.NoError(t, err)
	assert.EqualValues(t, 1, dbtest.Count(t, db, "address"))
}

func TestTransactionManager_Execute_RollsBackOnError(t *testing.T) {
	db := openTestDB(t)
	tm := NewTransactionManager(db, dbtest.NewDiscardLogger())
	ctx := context.Background()
	errBoom := errors.New("boom")

	err := tm.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		address := &entity.Address{Street: "Rua A"}
		if err := repoFactory.NewAddressRepository().Create(ctx, address); err != nil {
			return err
		}

		person := &entity.Person{TaxID: "111", Name: "Ana", Address: *address}
		if err := repoFactory.NewPersonRepository().Create(ctx, person); err != nil {
			return err
		}

		return errBoom
	})

	require.ErrorIs(t, err, errBoom)
	assert.Zero(t, dbtest.Count(t, db, "address"))
	assert.Zero(t, dbtest.Count(t, db, "person"))
}

func TestTransactionManager_Execute_RollsBackAndRepanics(t *testing.T) {
	db := openTestDB(t)
	tm := NewTransactionManager(db, dbtest.NewDiscardLogger())
	ctx := context.Background()

	assert.PanicsWithValue(t, "boom", func() {
		_ = tm.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
			if err := repoFactory.NewAddressRepository().Create(ctx, &entity.Address{Street: "Rua A"}); err != nil {
				return err
			}

			panic("boom")
		})
	})

	assert.Zero(t, dbtest.Count(t, db, "address"))
}

func TestNewTransactionManager_NilLoggerFallsBack(t *testing.T) {
	db := openTestDB(t)
	tm := NewTransactionManager(db, nil)

	err := tm.Execute(context.Background(), func(repository.RepositoryFactory) error {
		return nil
	})

	assert.NoError(t, err)
}
