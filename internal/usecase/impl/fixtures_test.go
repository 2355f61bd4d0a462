package impl

import (
	"context"
	"testing"

	"nexus/config"
	"nexus/internal/infra/auth"
	"nexus/internal/infra/persistence/database/dbtest"
	"nexus/internal/infra/persistence/gormrepo"
	"nexus/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// testApp wires every service to one throwaway SQLite store.
type testApp struct {
	db           *gorm.DB
	clients      usecase.ClientUsecase
	proprietors  usecase.ProprietorUsecase
	products     usecase.ProductUsecase
	sales        usecase.SaleUsecase
	reports      usecase.ReportUsecase
	provisioning usecase.ProvisioningUsecase
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	return newTestAppOn(t, dbtest.Open(t))
}

// newTestAppOn wires every service to db.
func newTestAppOn(t *testing.T, db *gorm.DB) *testApp {
	t.Helper()

	logger := dbtest.NewDiscardLogger()
	txManager := gormrepo.NewTransactionManager(db, logger)
	hasher := auth.NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})

	return &testApp{
		db: db,
		clients: NewClientService(ClientServiceParams{
			TxManager:  txManager,
			ClientRepo: gormrepo.NewClientRepository(db),
			Logger:     logger,
		}),
		proprietors: NewProprietorService(ProprietorServiceParams{
			TxManager:      txManager,
			ProprietorRepo: gormrepo.NewProprietorRepository(db),
			Hasher:         hasher,
			Logger:         logger,
		}),
		products: NewProductService(ProductServiceParams{
			TxManager:   txManager,
			ProductRepo: gormrepo.NewProductRepository(db),
			Logger:      logger,
		}),
		sales: NewSaleService(SaleServiceParams{
			TxManager: txManager,
			SaleRepo:  gormrepo.NewSaleRepository(db),
			Logger:    logger,
		}),
		reports: NewReportService(ReportServiceParams{
			SaleRepo: gormrepo.NewSaleRepository(db),
			Logger:   logger,
		}),
		provisioning: NewProvisioningService(ProvisioningServiceParams{
			TxManager: txManager,
			Hasher:    hasher,
			Logger:    logger,
		}),
	}
}

func (app *testApp) count(t *testing.T, table string) int64 {
	t.Helper()

	return dbtest.Count(t, app.db, table)
}

func clientInput(taxID string) *usecase.ClientInput {
	return &usecase.ClientInput{
		TaxID: taxID,
		Name:  "Client " + taxID,
		Email: "client" + taxID + "@example.com",
		Phone: "+55 81 5555-0000",
		Address: usecase.AddressInput{
			Street:       "Rua das Flores",
			Neighborhood: "Centro",
			City:         "Recife",
			Number:       "12",
		},
	}
}

func proprietorInput(taxID string) *usecase.ProprietorInput {
	return &usecase.ProprietorInput{
		TaxID:  taxID,
		Name:   "Owner " + taxID,
		Email:  "owner@example.com",
		Login:  "owner",
		Secret: "s3cret",
		Address: usecase.AddressInput{
			Street: "Av. Principal",
			City:   "Olinda",
			Number: "1",
		},
	}
}

func productInput(name, unitPrice, costPrice string, quantity int) *usecase.ProductInput {
	return &usecase.ProductInput{
		Name:      name,
		UnitPrice: decimal.RequireFromString(unitPrice),
		CostPrice: decimal.RequireFromString(costPrice),
		Quantity:  quantity,
		Category:  "general",
	}
}

func (app *testApp) mustRegisterProprietor(t *testing.T) {
	t.Helper()

	_, err := app.proprietors.RegisterProprietor(context.Background(), proprietorInput("999"))
	require.NoError(t, err)
}

func (app *testApp) mustRegisterClient(t *testing.T, taxID string) {
	t.Helper()

	_, err := app.clients.RegisterClient(context.Background(), clientInput(taxID))
	require.NoError(t, err)
}

func (app *testApp) mustCreateProduct(t *testing.T, name, unitPrice, costPrice string, quantity int) int64 {
	t.Helper()

	product, err := app.products.CreateProduct(context.Background(), productInput(name, unitPrice, costPrice, quantity))
	require.NoError(t, err)

	return product.ID
}
