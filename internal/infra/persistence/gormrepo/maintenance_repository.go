package gormrepo

import (
	"context"

	"nexus/internal/domain/repository"
	"nexus/internal/errors"
	"nexus/internal/infra/persistence/database"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// identityColumns maps each table with a generated key to that key's column.
// client and proprietor borrow their key from person.
var identityColumns = map[string]string{
	"address": "address_id",
	"person":  "person_id",
	"product": "item_id",
	"sale":    "sale_id",
}

// maintenanceRepository implements the repository.MaintenanceRepository interface.
type maintenanceRepository struct {
	db *gorm.DB
}

// NewMaintenanceRepository is the constructor for maintenanceRepository.
func NewMaintenanceRepository(db *gorm.DB) repository.MaintenanceRepository {
	return &maintenanceRepository{db: db}
}

// Reset deletes every row of every table and restarts identity generation.
// It must run inside a unit of work: foreign keys are only suspended until commit.
func (repo *maintenanceRepository) Reset(ctx context.Context) error {
	db := repo.db.WithContext(ctx)

	switch name := db.Dialector.Name(); name {
	case "postgres":
		return resetPostgres(db)
	case "sqlite":
		return resetSQLite(db)
	default:
		return errors.Errorf("reset is not supported for dialect %q", name)
	}
}

func resetPostgres(db *gorm.DB) error {
	if err := db.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		return errors.Wrap(err, "failed to defer constraints")
	}

	if err := deleteAllRows(db); err != nil {
		return err
	}

	for _, table := range database.Tables {
		column, ok := identityColumns[table]
		if !ok {
			continue
		}

		err := db.Exec("SELECT setval(pg_get_serial_sequence(?, ?), 1, false)", table, column).Error
		if err != nil {
			return errors.Wrapf(err, "failed to restart identity of %s", table)
		}
	}

	if err := db.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		return errors.Wrap(err, "failed to restore constraints")
	}

	return nil
}

func resetSQLite(db *gorm.DB) error {
	if err := db.Exec("PRAGMA defer_foreign_keys = ON").Error; err != nil {
		return errors.Wrap(err, "failed to defer foreign keys")
	}

	if err := deleteAllRows(db); err != nil {
		return err
	}

	if err := db.Exec("DELETE FROM sqlite_sequence WHERE name IN ?", database.Tables).Error; err != nil {
		return errors.Wrap(err, "failed to restart identity counters")
	}

	if err := db.Exec("PRAGMA defer_foreign_keys = OFF").Error; err != nil {
		return errors.Wrap(err, "failed to restore foreign keys")
	}

	return nil
}

func deleteAllRows(db *gorm.DB) error {
	for _, table := range database.Tables {
		if err := db.Exec("DELETE FROM ?", clause.Table{Name: table}).Error; err != nil {
			return errors.Wrapf(err, "failed to delete rows of %s", table)
		}
	}

	return nil
}
