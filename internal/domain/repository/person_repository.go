// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"nexus/internal/domain/entity"
)

// AddressRepository persists the address owned by a person.
type AddressRepository interface {
	// Create inserts the address and back-fills its generated ID.
	Create(ctx context.Context, address *entity.Address) error

	// FindIDByTaxID returns the ID of the address owned by the person with taxID.
	FindIDByTaxID(ctx context.Context, taxID string) (int64, error)

	// UpdateByTaxID overwrites the address owned by the person with taxID.
	UpdateByTaxID(ctx context.Context, taxID string, address *entity.Address) error

	// Delete removes an address row.
	Delete(ctx context.Context, id int64) error
}

// PersonRepository persists the identity shared by clients and the proprietor.
type PersonRepository interface {
	// Create inserts the person referencing person.Address.ID and back-fills person.ID.
	Create(ctx context.Context, person *entity.Person) error

	// Update overwrites name and email of the person identified by person.TaxID.
	Update(ctx context.Context, person *entity.Person) error

	// DeleteByTaxID removes the person row identified by taxID.
	DeleteByTaxID(ctx context.Context, taxID string) error
}

// ClientRepository persists the client role and reads the composed client aggregate.
type ClientRepository interface {
	// Create inserts the client role row for client.Person.ID.
	Create(ctx context.Context, client *entity.Client) error

	// Update overwrites the role fields of the client identified by client.TaxID.
	Update(ctx context.Context, client *entity.Client) error

	// DeleteByTaxID removes the client role row of the person with taxID.
	DeleteByTaxID(ctx context.Context, taxID string) error

	// FindByTaxID returns the client aggregate (person, address, role) for taxID.
	FindByTaxID(ctx context.Context, taxID string) (*entity.Client, error)

	// FindPersonIDByTaxID resolves a client tax ID to its person ID.
	FindPersonIDByTaxID(ctx context.Context, taxID string) (int64, error)

	// List returns every client aggregate ordered by person ID.
	List(ctx context.Context) ([]*entity.Client, error)
}
