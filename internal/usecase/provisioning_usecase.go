package usecase

import (
	"context"

	"nexus/internal/domain/entity"
)

// ProvisioningUsecase defines the destructive whole-store operations.
type ProvisioningUsecase interface {
	// Reset deletes every row of every table and restarts identity generation.
	Reset(ctx context.Context) error

	// Provision resets the store and registers a new proprietor in the same unit of work.
	Provision(ctx context.Context, input *ProprietorInput) (*entity.Proprietor, error)
}
