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

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

// proprietorService implements the ProprietorUsecase interface.
type proprietorService struct {
	txManager      repository.TransactionManager
	proprietorRepo repository.ProprietorRepository
	hasher         service.PasswordHasher
	validator      *inputValidator
	logger         *slog.Logger
}

// ProprietorServiceParams holds dependencies for ProprietorService, injected by Fx.
type ProprietorServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	ProprietorRepo repository.ProprietorRepository
	Hasher         service.PasswordHasher
	Logger         *slog.Logger
}

// NewProprietorService is the constructor for proprietorService.
func NewProprietorService(params ProprietorServiceParams) usecase.ProprietorUsecase {
	return &proprietorService{
		txManager:      params.TxManager,
		proprietorRepo: params.ProprietorRepo,
		hasher:         params.Hasher,
		validator:      newInputValidator(),
		logger:         params.Logger,
	}
}

func (srv *proprietorService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// RegisterProprietor creates the sole proprietor.
func (srv *proprietorService) RegisterProprietor(ctx context.Context, input *usecase.ProprietorInput) (*entity.Proprietor, error) {
	proprietor, err := srv.prepare(input)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Registering proprietor", slog.String("taxId", input.TaxID), slog.String("login", input.Login))

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return registerProprietor(ctx, repoFactory, proprietor)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to register proprietor", slog.String("taxId", input.TaxID), slog.Any("error", err))

		return nil, domainerrors.AsStorageFailure(err, "failed to register proprietor")
	}

	srv.log(ctx).Debug("Proprietor registered", slog.Int64("personId", proprietor.ID))
	proprietor.Secret = ""

	return proprietor, nil
}

// prepare validates input and builds the proprietor with its secret already hashed.
func (srv *proprietorService) prepare(input *usecase.ProprietorInput) (*entity.Proprietor, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Secret)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash proprietor secret")
	}

	return &entity.Proprietor{
		Person: entity.Person{
			TaxID:   input.TaxID,
			Name:    input.Name,
			Email:   input.Email,
			Address: buildAddress(input.Address),
		},
		Login:  input.Login,
		Secret: hash,
		Cash:   decimal.Zero,
	}, nil
}

// registerProprietor runs the creation protocol inside the caller's unit of work. The count
// check comes before any write; the singleton constraint still rejects a concurrent winner.
func registerProprietor(ctx context.Context, repoFactory repository.RepositoryFactory, proprietor *entity.Proprietor) error {
	proprietorRepo := repoFactory.NewProprietorRepository()

	count, err := proprietorRepo.Count(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to count proprietors")
	}
	if count > 0 {
		return domainerrors.ErrSingleInstanceViolation.WithDetails("a proprietor is already registered")
	}

	if err := createPerson(ctx, repoFactory, &proprietor.Person); err != nil {
		return err
	}

	if err := proprietorRepo.Create(ctx, proprietor); err != nil {
		return errors.Wrap(err, "failed to create proprietor")
	}

	return nil
}

// GetProprietor returns the proprietor without its secret, or nil when there is none.
func (srv *proprietorService) GetProprietor(ctx context.Context) (*entity.Proprietor, error) {
	proprietor, err := srv.proprietorRepo.Find(ctx)
	if err != nil {
		if errors.Is(err, domainerrors.ErrProprietorNotFound) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to get proprietor")
	}

	proprietor.Secret = ""

	return proprietor, nil
}

// UpdateProprietor overwrites the address, the person and the credential of input.TaxID.
func (srv *proprietorService) UpdateProprietor(ctx context.Context, input *usecase.ProprietorInput) error {
	proprietor, err := srv.prepare(input)
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Updating proprietor", slog.String("taxId", input.TaxID))

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := updatePerson(ctx, repoFactory, &proprietor.Person); err != nil {
			return err
		}

		if err := repoFactory.NewProprietorRepository().Update(ctx, proprietor); err != nil {
			return errors.Wrap(err, "failed to update proprietor")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to update proprietor", slog.String("taxId", input.TaxID), slog.Any("error", err))

		return domainerrors.AsStorageFailure(err, "failed to update proprietor")
	}

	return nil
}

// VerifyLogin reports whether login and secret match the stored credential.
func (srv *proprietorService) VerifyLogin(ctx context.Context, login, secret string) (bool, error) {
	hash, err := srv.proprietorRepo.FindSecretByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainerrors.ErrProprietorNotFound) {
			srv.log(ctx).Warn("Login attempt for unknown login", slog.String("login", login))

			return false, nil
		}

		return false, errors.Wrap(err, "failed to verify login")
	}

	ok := srv.hasher.Check(secret, hash)
	if !ok {
		srv.log(ctx).Warn("Login attempt with wrong secret", slog.String("login", login))
	}

	return ok, nil
}
