package gormrepo

import (
	"context"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"
	"nexus/internal/errors"
	"nexus/internal/infra/persistence/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// proprietorRow is the flattened person + address + proprietor join.
type proprietorRow struct {
	PersonID     int64
	Name         string
	Email        *string
	TaxID        string
	AddressID    int64
	Street       *string
	Neighborhood *string
	City         *string
	Number       *string
	Complement   *string
	Login        string
	Secret       string
	Cash         decimal.Decimal
}

// proprietorRepository implements the repository.ProprietorRepository interface.
type proprietorRepository struct {
	db *gorm.DB
}

// NewProprietorRepository is the constructor for proprietorRepository.
func NewProprietorRepository(db *gorm.DB) repository.ProprietorRepository {
	return &proprietorRepository{db: db}
}

// Count returns the number of proprietor rows.
func (repo *proprietorRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).Model(&model.ProprietorModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count proprietors")
	}

	return count, nil
}

// Create inserts the proprietor role row. The singleton column is fixed, so the
// unique constraint rejects a second proprietor even when two creations race.
func (repo *proprietorRepository) Create(ctx context.Context, proprietor *entity.Proprietor) error {
	proprietorM := &model.ProprietorModel{
		PersonID:  proprietor.ID,
		Singleton: model.ProprietorSingletonKey,
		Login:     model.NullableString(proprietor.Login),
		Secret:    model.NullableString(proprietor.Secret),
		Cash:      proprietor.Cash,
	}

	if err := repo.db.WithContext(ctx).Create(proprietorM).Error; err != nil {
		switch classifyConstraint(err) {
		case constraintUnique:
			return domainerrors.ErrSingleInstanceViolation.WrapMessage("proprietor row already exists")
		case constraintNotNull:
			return domainerrors.ErrMissingRequiredField.WrapMessage("missing required proprietor information")
		}

		return domainerrors.NewStorageFailureError(err, "failed to create proprietor")
	}

	return nil
}

// Update overwrites login and secret of the proprietor identified by proprietor.TaxID.
func (repo *proprietorRepository) Update(ctx context.Context, proprietor *entity.Proprietor) error {
	owner := repo.db.Model(&model.PersonModel{}).Select("person_id").Where("tax_id = ?", proprietor.TaxID)

	result := repo.db.WithContext(ctx).
		Model(&model.ProprietorModel{}).
		Where("person_id = (?)", owner).
		Select("login", "secret").
		Updates(&model.ProprietorModel{
			Login:  model.NullableString(proprietor.Login),
			Secret: model.NullableString(proprietor.Secret),
		})
	if result.Error != nil {
		if isNotNullConstraintViolation(result.Error) {
			return domainerrors.ErrMissingRequiredField.WrapMessage("missing required proprietor information")
		}

		return domainerrors.NewStorageFailureError(result.Error, "failed to update proprietor")
	}

	if result.RowsAffected == 0 {
		return domainerrors.ErrProprietorNotFound.WithDetails("tax id " + proprietor.TaxID)
	}

	return nil
}

// Find returns the proprietor aggregate.
func (repo *proprietorRepository) Find(ctx context.Context) (*entity.Proprietor, error) {
	var row proprietorRow

	err := repo.db.WithContext(ctx).
		Table("person AS p").
		Joins("JOIN address AS a ON a.address_id = p.address_id").
		Joins("JOIN proprietor AS m ON m.person_id = p.person_id").
		Select("p.person_id, p.name, p.email, p.tax_id, p.address_id, " +
			"a.street, a.neighborhood, a.city, a.number, a.complement, m.login, m.secret, m.cash").
		Where("m.singleton = ?", model.ProprietorSingletonKey).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrProprietorNotFound
		}

		return nil, errors.Wrap(err, "failed to find proprietor")
	}

	return toProprietorDomain(&row), nil
}

// FindSecretByLogin returns the stored secret hash for login.
func (repo *proprietorRepository) FindSecretByLogin(ctx context.Context, login string) (string, error) {
	var proprietorM model.ProprietorModel

	err := repo.db.WithContext(ctx).
		Select("secret").
		Where("login = ?", login).
		Take(&proprietorM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domainerrors.ErrProprietorNotFound.WithDetails("no proprietor with this login")
		}

		return "", errors.Wrap(err, "failed to find proprietor secret")
	}

	return model.StringValue(proprietorM.Secret), nil
}

// LockLedger takes a row lock on the proprietor (SELECT ... FOR UPDATE). On SQLite the clause
// is dropped; the unit of work already holds the database write lock from BEGIN IMMEDIATE.
func (repo *proprietorRepository) LockLedger(ctx context.Context) error {
	var proprietorM model.ProprietorModel

	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Select("person_id").
		Where("singleton = ?", model.ProprietorSingletonKey).
		Take(&proprietorM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domainerrors.ErrProprietorNotFound.WithDetails("cannot record sales without a proprietor")
		}

		return domainerrors.NewStorageFailureError(err, "failed to lock proprietor ledger")
	}

	return nil
}

// UpdateCash sets the proprietor's cash balance.
func (repo *proprietorRepository) UpdateCash(ctx context.Context, cash decimal.Decimal) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ProprietorModel{}).
		Where("singleton = ?", model.ProprietorSingletonKey).
		Update("cash", cash)
	if result.Error != nil {
		return domainerrors.NewStorageFailureError(result.Error, "failed to update proprietor cash")
	}

	if result.RowsAffected == 0 {
		return domainerrors.ErrProprietorNotFound.WithDetails("cannot update cash without a proprietor")
	}

	return nil
}

// --- Mapper Functions ---

func toProprietorDomain(row *proprietorRow) *entity.Proprietor {
	return &entity.Proprietor{
		Person: entity.Person{
			ID:    row.PersonID,
			TaxID: row.TaxID,
			Name:  row.Name,
			Email: model.StringValue(row.Email),
			Address: entity.Address{
				ID:           row.AddressID,
				Street:       model.StringValue(row.Street),
				Neighborhood: model.StringValue(row.Neighborhood),
				City:         model.StringValue(row.City),
				Number:       model.StringValue(row.Number),
				Complement:   model.StringValue(row.Complement),
			},
		},
		Login:  row.Login,
		Secret: row.Secret,
		Cash:   row.Cash,
	}
}
