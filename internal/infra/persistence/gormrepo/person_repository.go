package gormrepo

import (
	"context"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"
	"nexus/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// personRepository implements the repository.PersonRepository interface.
type personRepository struct {
	db *gorm.DB
}

// NewPersonRepository is the constructor for personRepository.
func NewPersonRepository(db *gorm.DB) repository.PersonRepository {
	return &personRepository{db: db}
}

// Create inserts the person referencing person.Address.ID and back-fills person.ID.
func (repo *personRepository) Create(ctx context.Context, person *entity.Person) error {
	personM := &model.PersonModel{
		Name:      model.NullableString(person.Name),
		Email:     model.NullableString(person.Email),
		TaxID:     model.NullableString(person.TaxID),
		AddressID: person.Address.ID,
	}

	if err := repo.db.WithContext(ctx).Create(personM).Error; err != nil {
		switch classifyConstraint(err) {
		case constraintUnique:
			return domainerrors.ErrDuplicateIdentity.WithDetails("tax id " + person.TaxID)
		case constraintNotNull:
			return domainerrors.ErrMissingRequiredField.WrapMessage("missing required person information")
		case constraintForeignKey:
			return domainerrors.NewStorageFailureError(err, "person references a missing address")
		}

		return domainerrors.NewStorageFailureError(err, "failed to create person")
	}

	person.ID = personM.ID

	return nil
}

// Update overwrites name and email of the person identified by person.TaxID.
func (repo *personRepository) Update(ctx context.Context, person *entity.Person) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PersonModel{}).
		Where("tax_id = ?", person.TaxID).
		Select("name", "email").
		Updates(&model.PersonModel{
			Name:  model.NullableString(person.Name),
			Email: model.NullableString(person.Email),
		})
	if result.Error != nil {
		if isNotNullConstraintViolation(result.Error) {
			return domainerrors.ErrMissingRequiredField.WrapMessage("missing required person information")
		}

		return domainerrors.NewStorageFailureError(result.Error, "failed to update person")
	}

	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound.WithDetails("person not found for update")
	}

	return nil
}

// DeleteByTaxID removes the person row identified by taxID.
func (repo *personRepository) DeleteByTaxID(ctx context.Context, taxID string) error {
	result := repo.db.WithContext(ctx).
		Where("tax_id = ?", taxID).
		Delete(&model.PersonModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrReferencedByDependents.WithDetails("person " + taxID + " still has dependent records")
		}

		return domainerrors.NewStorageFailureError(result.Error, "failed to delete person")
	}

	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound.WithDetails("person not found for deletion")
	}

	return nil
}
