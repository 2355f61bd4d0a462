package repository

import (
	"context"

	"nexus/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// ProprietorRepository persists the single proprietor role.
type ProprietorRepository interface {
	// Count returns the number of proprietor rows.
	Count(ctx context.Context) (int64, error)

	// Create inserts the proprietor role row for proprietor.Person.ID.
	// The Secret field must already be hashed.
	Create(ctx context.Context, proprietor *entity.Proprietor) error

	// Update overwrites login and (hashed) secret of the proprietor identified by proprietor.TaxID.
	Update(ctx context.Context, proprietor *entity.Proprietor) error

	// Find returns the proprietor aggregate.
	Find(ctx context.Context) (*entity.Proprietor, error)

	// FindSecretByLogin returns the stored secret hash for login.
	FindSecretByLogin(ctx context.Context, login string) (string, error)

	// LockLedger locks the proprietor row until the unit of work ends, so ledger
	// recomputations run one at a time.
	LockLedger(ctx context.Context) error

	// UpdateCash sets the proprietor's cash balance.
	UpdateCash(ctx context.Context, cash decimal.Decimal) error
}
