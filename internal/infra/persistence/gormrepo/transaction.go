// Package gormrepo implements the domain repositories and the unit of work on top of GORM.
// The same code serves PostgreSQL and SQLite; dialect differences are confined to maintenance.go
// and the storage error classification.
package gormrepo

import (
	"context"
	"log/slog"

	"nexus/internal/domain/repository"
	"nexus/internal/errors"
	logs "nexus/internal/infra/log"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

// gormRepositoryFactory implements the domain's RepositoryFactory interface.
// It holds a specific GORM transaction object and uses it to create
// repository instances that are bound to that single transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB // In GORM, a transaction object is also a *gorm.DB
}

// NewAddressRepository creates a new address repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewAddressRepository() repository.AddressRepository {
	return NewAddressRepository(f.tx)
}

// NewPersonRepository creates a new person repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewPersonRepository() repository.PersonRepository {
	return NewPersonRepository(f.tx)
}

// NewClientRepository creates a new client repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewClientRepository() repository.ClientRepository {
	return NewClientRepository(f.tx)
}

// NewProprietorRepository creates a new proprietor repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewProprietorRepository() repository.ProprietorRepository {
	return NewProprietorRepository(f.tx)
}

// NewProductRepository creates a new product repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewProductRepository() repository.ProductRepository {
	return NewProductRepository(f.tx)
}

// NewSaleRepository creates a new sale repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewSaleRepository() repository.SaleRepository {
	return NewSaleRepository(f.tx)
}

// NewMaintenanceRepository creates a new maintenance repository instance bound to the transaction.
func (f *gormRepositoryFactory) NewMaintenanceRepository() repository.MaintenanceRepository {
	return NewMaintenanceRepository(f.tx)
}

// NewTransactionManager is the constructor for gormTransactionManager.
// This function will be used as an Fx provider.
func NewTransactionManager(db *gorm.DB, logger *slog.Logger) repository.TransactionManager {
	if logger == nil {
		logger = slog.Default()
	}

	return &gormTransactionManager{db: db, logger: logger}
}

// Execute runs the given function within a single database transaction.
// The transaction pins one pooled connection until it commits or rolls back.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	log := logs.FromContext(ctx, tm.logger).With(slog.String("unitOfWork", uuid.NewString()))

	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "failed to begin transaction")
	}
	log.Debug("Unit of work started")

	// A panic inside fn must not leave the connection inside an open transaction.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			log.Error("Unit of work rolled back after panic", slog.Any("panic", r))
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx}

	if err := fn(factory); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			log.Error("Rollback failed", slog.Any("error", rbErr), slog.Any("cause", err))

			// Return the original, more meaningful business error alongside the rollback failure.
			return errors.Join(err, errors.Wrap(rbErr, "transaction rollback failed"))
		}
		log.Debug("Unit of work rolled back", slog.Any("cause", err))

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	log.Debug("Unit of work committed")

	return nil
}
