// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"nexus/internal/domain/entity"
)

// --- Input DTOs ---

// AddressInput carries the address owned by a person.
type AddressInput struct {
	Street       string
	Neighborhood string
	City         string
	Number       string
	Complement   string
}

// ClientInput defines the data required to register or update a client.
// TaxID identifies the client on update and cannot be changed.
type ClientInput struct {
	TaxID   string `validate:"required"`
	Name    string `validate:"required"`
	Email   string `validate:"omitempty,email"`
	Phone   string
	Address AddressInput
}

// ClientUsecase defines the interface for client-related business operations.
type ClientUsecase interface {
	// RegisterClient creates the address, person and client rows in one unit of work.
	RegisterClient(ctx context.Context, input *ClientInput) (*entity.Client, error)

	// UpdateClient overwrites the address, person and client rows of input.TaxID.
	UpdateClient(ctx context.Context, input *ClientInput) error

	// DeleteClient removes a client without recorded sales, along with its person and address.
	DeleteClient(ctx context.Context, taxID string) error

	// GetClient returns the client with taxID, or nil when there is none.
	GetClient(ctx context.Context, taxID string) (*entity.Client, error)

	// ListClients returns every client.
	ListClients(ctx context.Context) ([]*entity.Client, error)
}
