package main

import (
	"context"
	"log/slog"
	"time"

	"nexus/config"
	"nexus/internal/errors"
	"nexus/internal/infra/auth"
	logs "nexus/internal/infra/log"
	"nexus/internal/infra/persistence/database"
	"nexus/internal/infra/persistence/gormrepo"
	"nexus/internal/usecase"
	"nexus/internal/usecase/impl"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"gorm.io/gorm"
)

const (
	startTimeout = 15 * time.Second
	stopTimeout  = 10 * time.Second
)

// application is everything a command may use once the fx graph is started.
type application struct {
	fx.In

	DB           *gorm.DB
	Logger       *slog.Logger
	Clients      usecase.ClientUsecase
	Proprietors  usecase.ProprietorUsecase
	Products     usecase.ProductUsecase
	Sales        usecase.SaleUsecase
	Reports      usecase.ReportUsecase
	Provisioning usecase.ProvisioningUsecase
}

func injectInfra(opts *RootOptions) fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			database.New,
		),
		fx.Decorate(func(cfg *config.Config) *config.Config {
			if opts.Verbose {
				cfg.Env.Log.Level = "debug"
			}

			return cfg
		}),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			fxLogger := &fxevent.SlogLogger{Logger: logger}
			fxLogger.UseLogLevel(slog.LevelDebug)

			return fxLogger
		}),
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			gormrepo.NewTransactionManager,
			gormrepo.NewClientRepository,
			gormrepo.NewProprietorRepository,
			gormrepo.NewProductRepository,
			gormrepo.NewSaleRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewClientService,
			impl.NewProprietorService,
			impl.NewProductService,
			impl.NewSaleService,
			impl.NewReportService,
			impl.NewProvisioningService,
		),
	)
}

// startApplication builds and starts the fx graph. The returned stop func closes the store.
func startApplication(ctx context.Context, opts *RootOptions) (*application, func(), error) {
	var app application

	fxApp := fx.New(
		injectInfra(opts),
		injectRepo(),
		injectService(),
		injectUsecase(),
		fx.Invoke(func(deps application) {
			app = deps
		}),
	)
	if err := fxApp.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "failed to assemble application")
	}

	startCtx, cancel := context.WithTimeout(ctx, startTimeout)
	defer cancel()

	if err := fxApp.Start(startCtx); err != nil {
		return nil, nil, errors.Wrap(err, "failed to start application")
	}

	stop := func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()

		if err := fxApp.Stop(stopCtx); err != nil {
			app.Logger.Error("Failed to stop application", slog.Any("error", err))
		}
	}

	return &app, stop, nil
}
