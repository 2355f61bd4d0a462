// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"
	"nexus/internal/errors"
	logs "nexus/internal/infra/log"
	"nexus/internal/usecase"

	"go.uber.org/fx"
)

// clientService implements the ClientUsecase interface.
type clientService struct {
	txManager  repository.TransactionManager
	clientRepo repository.ClientRepository
	validator  *inputValidator
	logger     *slog.Logger
}

// ClientServiceParams holds dependencies for ClientService, injected by Fx.
type ClientServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	ClientRepo repository.ClientRepository
	Logger     *slog.Logger
}

// NewClientService is the constructor for clientService.
func NewClientService(params ClientServiceParams) usecase.ClientUsecase {
	return &clientService{
		txManager:  params.TxManager,
		clientRepo: params.ClientRepo,
		validator:  newInputValidator(),
		logger:     params.Logger,
	}
}

// log returns an operation-scoped logger if available, otherwise falls back to the service's logger.
func (srv *clientService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// RegisterClient creates the address, the person and the client role in one unit of work.
func (srv *clientService) RegisterClient(ctx context.Context, input *usecase.ClientInput) (*entity.Client, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Registering client", slog.String("taxId", input.TaxID))

	client := buildClient(input)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := createPerson(ctx, repoFactory, &client.Person); err != nil {
			return err
		}

		if err := repoFactory.NewClientRepository().Create(ctx, client); err != nil {
			return errors.Wrap(err, "failed to create client")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to register client", slog.String("taxId", input.TaxID), slog.Any("error", err))

		return nil, domainerrors.AsStorageFailure(err, "failed to register client")
	}

	srv.log(ctx).Debug("Client registered", slog.Int64("personId", client.ID))

	return client, nil
}

// UpdateClient overwrites the address, the person and the client role of input.TaxID.
func (srv *clientService) UpdateClient(ctx context.Context, input *usecase.ClientInput) error {
	if err := srv.validator.Struct(input); err != nil {
		return err
	}

	srv.log(ctx).Info("Updating client", slog.String("taxId", input.TaxID))

	client := buildClient(input)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := updatePerson(ctx, repoFactory, &client.Person); err != nil {
			return err
		}

		if err := repoFactory.NewClientRepository().Update(ctx, client); err != nil {
			return errors.Wrap(err, "failed to update client")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update client", slog.String("taxId", input.TaxID), slog.Any("error", err))

		return domainerrors.AsStorageFailure(err, "failed to update client")
	}

	return nil
}

// DeleteClient removes the client role, then the person, then the address.
// The address ID is read first because deleting the person severs the link.
func (srv *clientService) DeleteClient(ctx context.Context, taxID string) error {
	srv.log(ctx).Info("Deleting client", slog.String("taxId", taxID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		addressID, err := repoFactory.NewAddressRepository().FindIDByTaxID(ctx, taxID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return domainerrors.ErrClientNotFound.WithDetails("tax id " + taxID)
			}

			return errors.Wrap(err, "failed to find client address")
		}

		if err := repoFactory.NewClientRepository().DeleteByTaxID(ctx, taxID); err != nil {
			return errors.Wrap(err, "failed to delete client")
		}

		if err := repoFactory.NewPersonRepository().DeleteByTaxID(ctx, taxID); err != nil {
			return errors.Wrap(err, "failed to delete person")
		}

		if err := repoFactory.NewAddressRepository().Delete(ctx, addressID); err != nil {
			return errors.Wrap(err, "failed to delete address")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete client", slog.String("taxId", taxID), slog.Any("error", err))

		return domainerrors.AsStorageFailure(err, "failed to delete client")
	}

	return nil
}

// GetClient returns the client with taxID, or nil when there is none.
func (srv *clientService) GetClient(ctx context.Context, taxID string) (*entity.Client, error) {
	client, err := srv.clientRepo.FindByTaxID(ctx, taxID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrClientNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to get client")
	}

	return client, nil
}

// ListClients returns every client.
func (srv *clientService) ListClients(ctx context.Context) ([]*entity.Client, error) {
	clients, err := srv.clientRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list clients")
	}

	return clients, nil
}

func buildClient(input *usecase.ClientInput) *entity.Client {
	return &entity.Client{
		Person: entity.Person{
			TaxID:   input.TaxID,
			Name:    input.Name,
			Email:   input.Email,
			Address: buildAddress(input.Address),
		},
		Phone: input.Phone,
	}
}
