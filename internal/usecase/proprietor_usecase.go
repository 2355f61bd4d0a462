package usecase

import (
	"context"

	"nexus/internal/domain/entity"
)

// ProprietorInput defines the data required to register or update the proprietor.
// Secret is the plaintext credential; it is hashed before it is stored.
type ProprietorInput struct {
	TaxID   string `validate:"required"`
	Name    string `validate:"required"`
	Email   string `validate:"omitempty,email"`
	Login   string `validate:"required"`
	Secret  string `validate:"required,min=4"`
	Address AddressInput
}

// ProprietorUsecase defines the interface for the single proprietor.
type ProprietorUsecase interface {
	// RegisterProprietor creates the proprietor. It fails with SingleInstanceViolation when one exists.
	RegisterProprietor(ctx context.Context, input *ProprietorInput) (*entity.Proprietor, error)

	// GetProprietor returns the proprietor without its secret, or nil when there is none.
	GetProprietor(ctx context.Context) (*entity.Proprietor, error)

	// UpdateProprietor overwrites the address, person and credential of the proprietor input.TaxID.
	UpdateProprietor(ctx context.Context, input *ProprietorInput) error

	// VerifyLogin reports whether login and secret match the stored credential.
	VerifyLogin(ctx context.Context, login, secret string) (bool, error)
}
