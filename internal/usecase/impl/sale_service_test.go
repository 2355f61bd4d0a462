package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/infra/persistence/database/dbtest"
	"nexus/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSaleService_RecordSale_EndToEnd(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	app.mustRegisterProprietor(t)
	app.mustRegisterClient(t, "111")
	widgetID := app.mustCreateProduct(t, "Widget", "10.00", "6.00", 5)

	before, err := app.proprietors.GetProprietor(ctx)
	require.NoError(t, err)

	today := time.Now()
	sale, err := app.sales.RecordSale(ctx, &usecase.RecordSaleInput{
		ClientTaxID: "111",
		ProductID:   widgetID,
		Quantity:    2,
		Date:        today,
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("8.00").Equal(sale.Profit), "profit = %s", sale.Profit)
	assert.Equal(t, dateOnly(today), sale.Date)

	widget, err := app.products.GetProduct(ctx, widgetID)
	require.NoError(t, err)
	assert.Equal(t, 3, widget.Quantity)

	after, err := app.proprietors.GetProprietor(ctx)
	require.NoError(t, err)
	assert.True(t, before.Cash.Add(decimal.RequireFromString("8.00")).Equal(after.Cash), "cash = %s", after.Cash)
}

func TestSaleService_RecordSale_InsufficientStockChangesNothing(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	app.mustRegisterProprietor(t)
	app.mustRegisterClient(t, "111")
	widgetID := app.mustCreateProduct(t, "Widget", "10.00", "6.00", 5)

	_, err := app.sales.RecordSale(ctx, &usecase.RecordSaleInput{ClientTaxID: "111", ProductID: widgetID, Quantity: 6})

	require.ErrorIs(t, err, domainerrors.ErrInsufficientStock)

	widget, err := app.products.GetProduct(ctx, widgetID)
	require.NoError(t, err)
	assert.Equal(t, 5, widget.Quantity)
	assert.Zero(t, app.count(t, "sale"))

	proprietor, err := app.proprietors.GetProprietor(ctx)
	require.NoError(t, err)
	assert.True(t, proprietor.Cash.IsZero())
}

func TestSaleService_RecordSale_Failures(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	app.mustRegisterProprietor(t)
	app.mustRegisterClient(t, "111")
	widgetID := app.mustCreateProduct(t, "Widget", "10.00", "6.00", 5)

	tests := []struct {
		name    string
		input   *usecase.RecordSaleInput
		wantErr error
	}{
		{
			name:    "zero quantity",
			input:   &usecase.RecordSaleInput{ClientTaxID: "111", ProductID: widgetID, Quantity: 0},
			wantErr: domainerrors.ErrValidationFailed,
		},
		{
			name:    "missing client",
			input:   &usecase.RecordSaleInput{ProductID: widgetID, Quantity: 1},
			wantErr: domainerrors.ErrMissingRequiredField,
		},
		{
			name:    "unknown client",
			input:   &usecase.RecordSaleInput{ClientTaxID: "404", ProductID: widgetID, Quantity: 1},
			wantErr: domainerrors.ErrClientNotFound,
		},
		{
			name:    "unknown product",
			input:   &usecase.RecordSaleInput{ClientTaxID: "111", ProductID: 404, Quantity: 1},
			wantErr: domainerrors.ErrProductNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := app.sales.RecordSale(ctx, tt.input)

			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	widget, err := app.products.GetProduct(ctx, widgetID)
	require.NoError(t, err)
	assert.Equal(t, 5, widget.Quantity)
	assert.Zero(t, app.count(t, "sale"))
}

func TestSaleService_RecordSale_WithoutProprietor(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	app.mustRegisterClient(t, "111")
	widgetID := app.mustCreateProduct(t, "Widget", "10.00", "6.00", 5)

	_, err := app.sales.RecordSale(ctx, &usecase.RecordSaleInput{ClientTaxID: "111", ProductID: widgetID, Quantity: 1})

	require.ErrorIs(t, err, domainerrors.ErrProprietorNotFound)

	widget, err := app.products.GetProduct(ctx, widgetID)
	require.NoError(t, err)
	assert.Equal(t, 5, widget.Quantity)
	assert.Zero(t, app.count(t, "sale"))
}

func TestSaleService_RecordSale_ProfitCapturedAtSaleTime(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	app.mustRegisterProprietor(t)
	app.mustRegisterClient(t, "111")
	widgetID := app.mustCreateProduct(t, "Widget", "10.00", "6.00", 10)

	_, err := app.sales.RecordSale(ctx, &usecase.RecordSaleInput{ClientTaxID: "111", ProductID: widgetID, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, app.products.UpdateProduct(ctx, widgetID, productInput("Widget", "20.00", "6.00", 9)))

	_, err = app.sales.RecordSale(ctx, &usecase.RecordSaleInput{ClientTaxID: "111", ProductID: widgetID, Quantity: 1})
	require.NoError(t, err)

	sales, err := app.sales.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.True(t, decimal.NewFromInt(4).Equal(sales[0].Sale.Profit))
	assert.True(t, decimal.NewFromInt(14).Equal(sales[1].Sale.Profit))
	assert.Equal(t, "111", sales[0].Client.TaxID)
	assert.Equal(t, "Recife", sales[0].Client.Address.City)

	proprietor, err := app.proprietors.GetProprietor(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(18).Equal(proprietor.Cash), "cash = %s", proprietor.Cash)
}

// recordConcurrently records salesPerProduct single-unit sales of every product at once,
// alternating between the two clients, and returns every error.
func recordConcurrently(app *testApp, salesPerProduct int, productIDs ...int64) []error {
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, salesPerProduct*len(productIDs))
	for i := range salesPerProduct {
		for _, productID := range productIDs {
			wg.Add(1)
			go func(taxID string, productID int64) {
				defer wg.Done()

				_, err := app.sales.RecordSale(ctx, &usecase.RecordSaleInput{ClientTaxID: taxID, ProductID: productID, Quantity: 1})
				errs <- err
			}([]string{"111", "222"}[i%2], productID)
		}
	}
	wg.Wait()
	close(errs)

	var failures []error
	for err := range errs {
		if err != nil {
			failures = append(failures, err)
		}
	}

	return failures
}

// assertLedgerMatchesSales checks the count of sales and that cash equals their summed profit.
func assertLedgerMatchesSales(t *testing.T, app *testApp, wantSales int, wantCash string) {
	t.Helper()
	ctx := context.Background()

	sales, err := app.sales.ListSales(ctx)
	require.NoError(t, err)
	require.Len(t, sales, wantSales)

	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(sale.Sale.Profit)
	}

	proprietor, err := app.proprietors.GetProprietor(ctx)
	require.NoError(t, err)
	assert.True(t, total.Equal(proprietor.Cash), "cash %s != sum of profit %s", proprietor.Cash, total)
	assert.True(t, decimal.RequireFromString(wantCash).Equal(proprietor.Cash), "cash = %s", proprietor.Cash)
}

func TestSaleService_RecordSale_ConcurrentSalesKeepLedgerConsistent(t *testing.T) {
	tests := []struct {
		name string
		open func(t *testing.T) *gorm.DB
	}{
		{
			name: "sqlite file with pooled connections",
			open: func(t *testing.T) *gorm.DB { return dbtest.OpenFile(t, 4) },
		},
		{
			name: "postgres",
			open: func(t *testing.T) *gorm.DB { return dbtest.OpenPostgres(t) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestAppOn(t, tt.open(t))
			app.mustRegisterProprietor(t)
			app.mustRegisterClient(t, "111")
			app.mustRegisterClient(t, "222")
			widgetID := app.mustCreateProduct(t, "Widget", "10.00", "6.00", 20)
			cableID := app.mustCreateProduct(t, "Cable", "1.15", "0.40", 20)

			failures := recordConcurrently(app, 10, widgetID, cableID)

			require.Empty(t, failures, "failed sales: %d of 20", len(failures))
			assertLedgerMatchesSales(t, app, 20, "47.5")
		})
	}
}

func TestSaleService_RecordSale_ConcurrentSalesOfOneProduct(t *testing.T) {
	app := newTestAppOn(t, dbtest.OpenFile(t, 4))
	app.mustRegisterProprietor(t)
	app.mustRegisterClient(t, "111")
	app.mustRegisterClient(t, "222")
	widgetID := app.mustCreateProduct(t, "Widget", "10.00", "6.00", 100)

	failures := recordConcurrently(app, 16, widgetID)

	require.Empty(t, failures, "failed sales: %d of 16", len(failures))
	assertLedgerMatchesSales(t, app, 16, "64")

	widget, err := app.products.GetProduct(context.Background(), widgetID)
	require.NoError(t, err)
	assert.Equal(t, 84, widget.Quantity)
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	got := dateOnly(time.Date(2024, 3, 10, 22, 45, 0, 0, loc))

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got)
}
