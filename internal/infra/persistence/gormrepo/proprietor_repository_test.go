package gormrepo

import (
	"context"
	"testing"
	"time"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"
	"nexus/internal/infra/persistence/database/dbtest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestProprietorRepository_Find(t *testing.T) {
	db := openTestDB(t)
	seeded := seedProprietor(t, db, "999")
	repo := NewProprietorRepository(db)

	proprietor, err := repo.Find(context.Background())

	require.NoError(t, err)
	assert.Equal(t, seeded.ID, proprietor.ID)
	assert.Equal(t, "999", proprietor.TaxID)
	assert.Equal(t, "owner", proprietor.Login)
	assert.Equal(t, seeded.Address, proprietor.Address)
	assert.True(t, proprietor.Cash.IsZero())

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestProprietorRepository_Find_None(t *testing.T) {
	db := openTestDB(t)

	_, err := NewProprietorRepository(db).Find(context.Background())

	require.ErrorIs(t, err, domainerrors.ErrProprietorNotFound)
}

func TestProprietorRepository_Create_SecondRowRejected(t *testing.T) {
	db := openTestDB(t)
	seedProprietor(t, db, "999")

	second := &entity.Proprietor{
		Person: newTestClient("888").Person,
		Login:  "other",
		Secret: "hash",
	}
	seedPerson(t, db, &second.Person)

	err := NewProprietorRepository(db).Create(context.Background(), second)

	require.ErrorIs(t, err, domainerrors.ErrSingleInstanceViolation)
	assert.EqualValues(t, 1, dbtest.Count(t, db, "proprietor"))
}

func TestProprietorRepository_Create_MissingLogin(t *testing.T) {
	db := openTestDB(t)

	proprietor := &entity.Proprietor{Person: newTestClient("999").Person, Secret: "hash"}
	seedPerson(t, db, &proprietor.Person)

	err := NewProprietorRepository(db).Create(context.Background(), proprietor)

	require.ErrorIs(t, err, domainerrors.ErrMissingRequiredField)
}

func TestProprietorRepository_Update(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	seedProprietor(t, db, "999")
	repo := NewProprietorRepository(db)

	err := repo.Update(ctx, &entity.Proprietor{Person: entity.Person{TaxID: "999"}, Login: "boss", Secret: "new-hash"})
	require.NoError(t, err)

	secret, err := repo.FindSecretByLogin(ctx, "boss")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", secret)

	_, err = repo.FindSecretByLogin(ctx, "owner")
	require.ErrorIs(t, err, domainerrors.ErrProprietorNotFound)

	err = repo.Update(ctx, &entity.Proprietor{Person: entity.Person{TaxID: "404"}, Login: "x", Secret: "y"})
	require.ErrorIs(t, err, domainerrors.ErrProprietorNotFound)
}

func TestProprietorRepository_UpdateCash(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProprietorRepository(db)

	err := repo.UpdateCash(ctx, decimal.RequireFromString("8.50"))
	require.ErrorIs(t, err, domainerrors.ErrProprietorNotFound)

	seedProprietor(t, db, "999")
	require.NoError(t, repo.UpdateCash(ctx, decimal.RequireFromString("8.50")))

	proprietor, err := repo.Find(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("8.5").Equal(proprietor.Cash), "cash = %s", proprietor.Cash)
}

func TestProprietorRepository_LockLedger(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewProprietorRepository(db)

	require.ErrorIs(t, repo.LockLedger(ctx), domainerrors.ErrProprietorNotFound)

	seedProprietor(t, db, "999")
	tm := NewTransactionManager(db, dbtest.NewDiscardLogger())
	err := tm.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewProprietorRepository().LockLedger(ctx)
	})

	require.NoError(t, err)
}

func TestProprietorRepository_LockLedger_SerializesUnitsOfWork(t *testing.T) {
	tests := []struct {
		name string
		open func(t *testing.T) *gorm.DB
	}{
		{name: "sqlite file", open: func(t *testing.T) *gorm.DB { return dbtest.OpenFile(t, 2) }},
		{name: "postgres", open: func(t *testing.T) *gorm.DB { return dbtest.OpenPostgres(t) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := tt.open(t)
			ctx := context.Background()
			seedProprietor(t, db, "999")
			tm := NewTransactionManager(db, dbtest.NewDiscardLogger())

			locked := make(chan struct{})
			release := make(chan struct{})
			firstDone := make(chan error, 1)
			go func() {
				firstDone <- tm.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
					if err := repoFactory.NewProprietorRepository().LockLedger(ctx); err != nil {
						close(locked)

						return err
					}
					close(locked)
					<-release

					return repoFactory.NewProprietorRepository().UpdateCash(ctx, decimal.NewFromInt(5))
				})
			}()
			<-locked

			secondLocked := make(chan struct{})
			secondDone := make(chan error, 1)
			var cashSeen decimal.Decimal
			go func() {
				secondDone <- tm.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
					proprietorRepo := repoFactory.NewProprietorRepository()
					if err := proprietorRepo.LockLedger(ctx); err != nil {
						return err
					}
					close(secondLocked)

					proprietor, err := proprietorRepo.Find(ctx)
					if err != nil {
						return err
					}
					cashSeen = proprietor.Cash

					return nil
				})
			}()

			select {
			case <-secondLocked:
				t.Fatal("second unit of work took the ledger lock while the first still held it")
			case <-time.After(200 * time.Millisecond):
			}

			close(release)
			require.NoError(t, <-firstDone)
			require.NoError(t, <-secondDone)
			assert.True(t, decimal.NewFromInt(5).Equal(cashSeen), "second unit of work saw cash %s", cashSeen)
		})
	}
}
