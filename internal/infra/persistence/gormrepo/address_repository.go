package gormrepo

import (
	"context"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"
	"nexus/internal/errors"
	"nexus/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// addressRepository implements the repository.AddressRepository interface.
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository is the constructor for addressRepository.
func NewAddressRepository(db *gorm.DB) repository.AddressRepository {
	return &addressRepository{db: db}
}

// Create inserts the address and back-fills its generated ID.
func (repo *addressRepository) Create(ctx context.Context, address *entity.Address) error {
	addressM := fromAddressDomain(address)

	if err := repo.db.WithContext(ctx).Create(addressM).Error; err != nil {
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrMissingRequiredField.WrapMessage("missing required address information")
		}

		return domainerrors.NewStorageFailureError(err, "failed to create address")
	}

	address.ID = addressM.ID

	return nil
}

// FindIDByTaxID returns the ID of the address owned by the person with taxID.
func (repo *addressRepository) FindIDByTaxID(ctx context.Context, taxID string) (int64, error) {
	var personM model.PersonModel

	err := repo.db.WithContext(ctx).
		Select("address_id").
		Where("tax_id = ?", taxID).
		Take(&personM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domainerrors.ErrNotFound.WithDetails("no person with tax id " + taxID)
		}

		return 0, errors.Wrap(err, "failed to find address id by tax id")
	}

	return personM.AddressID, nil
}

// UpdateByTaxID overwrites the address owned by the person with taxID.
func (repo *addressRepository) UpdateByTaxID(ctx context.Context, taxID string, address *entity.Address) error {
	owner := repo.db.Model(&model.PersonModel{}).Select("address_id").Where("tax_id = ?", taxID)

	result := repo.db.WithContext(ctx).
		Model(&model.AddressModel{}).
		Where("address_id = (?)", owner).
		Select("street", "neighborhood", "city", "number", "complement").
		Updates(fromAddressDomain(address))
	if result.Error != nil {
		if isNotNullConstraintViolation(result.Error) {
			return domainerrors.ErrMissingRequiredField.WrapMessage("missing required address information")
		}

		return domainerrors.NewStorageFailureError(result.Error, "failed to update address")
	}

	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound.WithDetails("address not found for update")
	}

	return nil
}

// Delete removes an address row.
func (repo *addressRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).
		Where("address_id = ?", id).
		Delete(&model.AddressModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrReferencedByDependents.WrapMessage("address is still owned by a person")
		}

		return domainerrors.NewStorageFailureError(result.Error, "failed to delete address")
	}

	return nil
}

// --- Mapper Functions ---

func fromAddressDomain(data *entity.Address) *model.AddressModel {
	return &model.AddressModel{
		ID:           data.ID,
		Street:       data.Street,
		Neighborhood: data.Neighborhood,
		City:         data.City,
		Number:       data.Number,
		Complement:   data.Complement,
	}
}
