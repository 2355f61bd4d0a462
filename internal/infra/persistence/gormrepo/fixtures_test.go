package gormrepo

import (
	"context"
	"testing"
	"time"

	"nexus/internal/domain/entity"
	"nexus/internal/infra/persistence/database/dbtest"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestClient(taxID string) *entity.Client {
	return &entity.Client{
		Person: entity.Person{
			TaxID: taxID,
			Name:  "Client " + taxID,
			Email: taxID + "@example.com",
			Address: entity.Address{
				Street:       "Rua das Flores",
				Neighborhood: "Centro",
				City:         "Recife",
				Number:       "12",
			},
		},
		Phone: "+55 81 5555-0000",
	}
}

func newTestProduct(name string, unitPrice, costPrice string, quantity int) *entity.Product {
	return &entity.Product{
		Name:      name,
		UnitPrice: decimal.RequireFromString(unitPrice),
		CostPrice: decimal.RequireFromString(costPrice),
		Quantity:  quantity,
		Category:  "general",
	}
}

// seedPerson inserts address and person rows directly through the repositories.
func seedPerson(t *testing.T, db *gorm.DB, person *entity.Person) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, NewAddressRepository(db).Create(ctx, &person.Address))
	require.NoError(t, NewPersonRepository(db).Create(ctx, person))
}

func seedClient(t *testing.T, db *gorm.DB, taxID string) *entity.Client {
	t.Helper()

	client := newTestClient(taxID)
	seedPerson(t, db, &client.Person)
	require.NoError(t, NewClientRepository(db).Create(context.Background(), client))

	return client
}

func seedProprietor(t *testing.T, db *gorm.DB, taxID string) *entity.Proprietor {
	t.Helper()

	proprietor := &entity.Proprietor{
		Person: newTestClient(taxID).Person,
		Login:  "owner",
		Secret: "$2a$04$hash",
		Cash:   decimal.Zero,
	}
	seedPerson(t, db, &proprietor.Person)
	require.NoError(t, NewProprietorRepository(db).Create(context.Background(), proprietor))

	return proprietor
}

func seedProduct(t *testing.T, db *gorm.DB, name, unitPrice, costPrice string, quantity int) *entity.Product {
	t.Helper()

	product := newTestProduct(name, unitPrice, costPrice, quantity)
	require.NoError(t, NewProductRepository(db).Create(context.Background(), product))

	return product
}

func seedSale(t *testing.T, db *gorm.DB, client *entity.Client, product *entity.Product, quantity int, date time.Time) *entity.Sale {
	t.Helper()

	sale := &entity.Sale{
		Date:      date,
		Quantity:  quantity,
		ClientID:  client.ID,
		ProductID: product.ID,
		Profit:    entity.SaleProfit(product, quantity),
	}
	require.NoError(t, NewSaleRepository(db).Create(context.Background(), sale))

	return sale
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	return dbtest.Open(t)
}
