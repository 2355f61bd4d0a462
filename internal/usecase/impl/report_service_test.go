package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportService_MonthlyReports(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	app.mustRegisterProprietor(t)
	app.mustRegisterClient(t, "111")
	widgetID := app.mustCreateProduct(t, "Widget", "10.00", "6.00", 50)
	gadgetID := app.mustCreateProduct(t, "Gadget", "3.50", "1.50", 50)

	record := func(productID int64, quantity int, date time.Time) {
		t.Helper()

		_, err := app.sales.RecordSale(ctx, &usecase.RecordSaleInput{
			ClientTaxID: "111",
			ProductID:   productID,
			Quantity:    quantity,
			Date:        date,
		})
		require.NoError(t, err)
	}

	record(widgetID, 2, time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC))
	record(gadgetID, 4, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	record(widgetID, 1, time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC))
	record(widgetID, 7, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC))

	march := usecase.Period{Year: 2024, Month: time.March}

	profit, err := app.reports.MonthlyProfit(ctx, march)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(12).Equal(profit), "profit = %s", profit)

	best, err := app.reports.BestSeller(ctx, march)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.Equal(t, gadgetID, best.ProductID)
	assert.Equal(t, "Gadget", best.ProductName)
	assert.Equal(t, 4, best.Quantity)

	sales, err := app.reports.MonthlySales(ctx, march)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "Gadget", sales[0].Product.Name)
	assert.Equal(t, "Widget", sales[1].Product.Name)
	assert.Equal(t, "111", sales[1].Client.TaxID)
}

func TestReportService_EmptyPeriod(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	period := usecase.Period{Year: 2023, Month: time.December}

	profit, err := app.reports.MonthlyProfit(ctx, period)
	require.NoError(t, err)
	assert.True(t, profit.IsZero())

	best, err := app.reports.BestSeller(ctx, period)
	require.NoError(t, err)
	assert.Nil(t, best)

	sales, err := app.reports.MonthlySales(ctx, period)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestReportService_InvalidPeriod(t *testing.T) {
	app := newTestApp(t)

	_, err := app.reports.MonthlyProfit(context.Background(), usecase.Period{Year: 2024, Month: 13})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = app.reports.BestSeller(context.Background(), usecase.Period{Year: 2024})
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}
