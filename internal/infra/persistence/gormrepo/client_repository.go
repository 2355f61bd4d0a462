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

// clientRow is the flattened person + address + client join.
type clientRow struct {
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
	Phone        *string
}

const clientColumns = "p.person_id, p.name, p.email, p.tax_id, p.address_id, " +
	"a.street, a.neighborhood, a.city, a.number, a.complement, c.phone"

// clientRepository implements the repository.ClientRepository interface.
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository is the constructor for clientRepository.
func NewClientRepository(db *gorm.DB) repository.ClientRepository {
	return &clientRepository{db: db}
}

// Create inserts the client role row for client.Person.ID.
func (repo *clientRepository) Create(ctx context.Context, client *entity.Client) error {
	clientM := &model.ClientModel{
		PersonID: client.ID,
		Phone:    client.Phone,
	}

	if err := repo.db.WithContext(ctx).Create(clientM).Error; err != nil {
		switch classifyConstraint(err) {
		case constraintUnique:
			return domainerrors.ErrDuplicateIdentity.WithDetails("tax id " + client.TaxID + " is already a client")
		case constraintNotNull:
			return domainerrors.ErrMissingRequiredField.WrapMessage("missing required client information")
		}

		return domainerrors.NewStorageFailureError(err, "failed to create client")
	}

	return nil
}

// Update overwrites the role fields of the client identified by client.TaxID.
func (repo *clientRepository) Update(ctx context.Context, client *entity.Client) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ClientModel{}).
		Where("person_id = (?)", repo.personIDByTaxID(client.TaxID)).
		Update("phone", client.Phone)
	if result.Error != nil {
		return domainerrors.NewStorageFailureError(result.Error, "failed to update client")
	}

	if result.RowsAffected == 0 {
		return domainerrors.ErrClientNotFound.WithDetails("tax id " + client.TaxID)
	}

	return nil
}

// DeleteByTaxID removes the client role row of the person with taxID.
// Sales reference the client row, so a client with recorded sales cannot be removed.
func (repo *clientRepository) DeleteByTaxID(ctx context.Context, taxID string) error {
	result := repo.db.WithContext(ctx).
		Where("person_id = (?)", repo.personIDByTaxID(taxID)).
		Delete(&model.ClientModel{})
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrReferencedByDependents.WithDetails("client " + taxID + " has recorded sales")
		}

		return domainerrors.NewStorageFailureError(result.Error, "failed to delete client")
	}

	if result.RowsAffected == 0 {
		return domainerrors.ErrClientNotFound.WithDetails("tax id " + taxID)
	}

	return nil
}

// FindByTaxID returns the client aggregate for taxID.
func (repo *clientRepository) FindByTaxID(ctx context.Context, taxID string) (*entity.Client, error) {
	var row clientRow

	err := repo.joined(ctx).
		Where("p.tax_id = ?", taxID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrClientNotFound.WithDetails("tax id " + taxID)
		}

		return nil, errors.Wrap(err, "failed to find client by tax id")
	}

	return toClientDomain(&row), nil
}

// FindPersonIDByTaxID resolves a client tax ID to its person ID.
func (repo *clientRepository) FindPersonIDByTaxID(ctx context.Context, taxID string) (int64, error) {
	var clientM model.ClientModel

	err := repo.db.WithContext(ctx).
		Joins("JOIN person AS p ON p.person_id = client.person_id").
		Where("p.tax_id = ?", taxID).
		Select("client.person_id").
		Take(&clientM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domainerrors.ErrClientNotFound.WithDetails("tax id " + taxID)
		}

		return 0, errors.Wrap(err, "failed to resolve client")
	}

	return clientM.PersonID, nil
}

// List returns every client aggregate ordered by person ID.
func (repo *clientRepository) List(ctx context.Context) ([]*entity.Client, error) {
	var rows []*clientRow

	if err := repo.joined(ctx).Order("p.person_id").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list clients")
	}

	clients := make([]*entity.Client, 0, len(rows))
	for _, row := range rows {
		clients = append(clients, toClientDomain(row))
	}

	return clients, nil
}

func (repo *clientRepository) joined(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Table("person AS p").
		Joins("JOIN address AS a ON a.address_id = p.address_id").
		Joins("JOIN client AS c ON c.person_id = p.person_id").
		Select(clientColumns)
}

func (repo *clientRepository) personIDByTaxID(taxID string) *gorm.DB {
	return repo.db.Model(&model.PersonModel{}).Select("person_id").Where("tax_id = ?", taxID)
}

// --- Mapper Functions ---

func toClientDomain(row *clientRow) *entity.Client {
	return &entity.Client{
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
		Phone: model.StringValue(row.Phone),
	}
}
