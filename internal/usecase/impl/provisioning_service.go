package impl

import (
	"context"
	"log/slog"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"
	"nexus/internal/domain/service"
	"nexus/internal/errors"
	logs "nexus/internal/infra/log"
	"nexus/internal/usecase"

	"go.uber.org/fx"
)

// provisioningService implements the ProvisioningUsecase interface.
type provisioningService struct {
	txManager   repository.TransactionManager
	proprietors *proprietorService
	logger      *slog.Logger
}

// ProvisioningServiceParams holds dependencies for ProvisioningService, injected by Fx.
type ProvisioningServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Hasher    service.PasswordHasher
	Logger    *slog.Logger
}

// NewProvisioningService is the constructor for provisioningService.
func NewProvisioningService(params ProvisioningServiceParams) usecase.ProvisioningUsecase {
	return &provisioningService{
		txManager: params.TxManager,
		proprietors: &proprietorService{
			hasher:    params.Hasher,
			validator: newInputValidator(),
			logger:    params.Logger,
		},
		logger: params.Logger,
	}
}

func (srv *provisioningService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// Reset deletes every row of every table and restarts identity generation.
func (srv *provisioningService) Reset(ctx context.Context) error {
	srv.log(ctx).Warn("Resetting store")

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return resetStore(ctx, repoFactory)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to reset store", slog.Any("error", err))

		return domainerrors.AsStorageFailure(err, "failed to reset store")
	}

	srv.log(ctx).Info("Store reset")

	return nil
}

// Provision resets the store and registers the new proprietor. Either both happen or neither.
func (srv *provisioningService) Provision(ctx context.Context, input *usecase.ProprietorInput) (*entity.Proprietor, error) {
	proprietor, err := srv.proprietors.prepare(input)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Warn("Provisioning store", slog.String("taxId", input.TaxID), slog.String("login", input.Login))

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := resetStore(ctx, repoFactory); err != nil {
			return err
		}

		return registerProprietor(ctx, repoFactory, proprietor)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to provision store", slog.Any("error", err))

		return nil, domainerrors.AsStorageFailure(err, "failed to provision store")
	}

	srv.log(ctx).Info("Store provisioned", slog.Int64("personId", proprietor.ID))
	proprietor.Secret = ""

	return proprietor, nil
}

func resetStore(ctx context.Context, repoFactory repository.RepositoryFactory) error {
	if err := repoFactory.NewMaintenanceRepository().Reset(ctx); err != nil {
		return errors.Wrap(err, "failed to reset store")
	}

	return nil
}
