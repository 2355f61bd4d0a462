package gormrepo

import (
	"context"
	"time"

	"nexus/internal/domain/entity"
	domainerrors "nexus/internal/domain/errors"
	"nexus/internal/domain/repository"
	"nexus/internal/errors"
	"nexus/internal/infra/persistence/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// saleDetailRow is the flattened sale + client + person + address + product join.
type saleDetailRow struct {
	SaleID       int64
	Date         time.Time
	Quantity     int
	Profit       decimal.Decimal
	PersonID     int64
	TaxID        string
	Name         string
	Email        *string
	Phone        *string
	AddressID    int64
	Street       *string
	Neighborhood *string
	City         *string
	Number       *string
	Complement   *string
	ItemID       int64
	ProductName  string
	UnitPrice    decimal.Decimal
	CostPrice    decimal.Decimal
	Stock        int
	Category     *string
}

const saleDetailColumns = "s.sale_id, s.date, s.quantity, s.profit, " +
	"p.person_id, p.tax_id, p.name, p.email, c.phone, " +
	"a.address_id, a.street, a.neighborhood, a.city, a.number, a.complement, " +
	"i.item_id, i.name AS product_name, i.unit_price, i.cost_price, i.quantity AS stock, i.category"

const salePeriodColumns = "s.sale_id, s.date, s.quantity, s.profit, p.person_id, p.tax_id, p.name, " +
	"i.item_id, i.name AS product_name, i.unit_price, i.cost_price, i.quantity AS stock, i.category"

// saleRepository implements the repository.SaleRepository interface.
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository is the constructor for saleRepository.
func NewSaleRepository(db *gorm.DB) repository.SaleRepository {
	return &saleRepository{db: db}
}

// Create inserts the sale and back-fills its generated ID.
func (repo *saleRepository) Create(ctx context.Context, sale *entity.Sale) error {
	saleM := &model.SaleModel{
		ClientID: sale.ClientID,
		ItemID:   sale.ProductID,
		Date:     sale.Date,
		Quantity: sale.Quantity,
		Profit:   sale.Profit,
	}

	if err := repo.db.WithContext(ctx).Create(saleM).Error; err != nil {
		switch classifyConstraint(err) {
		case constraintForeignKey:
			return domainerrors.ErrNotFound.WithDetails("sale references an unknown client or product")
		case constraintCheck:
			return domainerrors.ErrValidationFailed.WrapMessage("sale quantity must be positive")
		case constraintNotNull:
			return domainerrors.ErrMissingRequiredField.WrapMessage("missing required sale information")
		}

		return domainerrors.NewStorageFailureError(err, "failed to create sale")
	}

	sale.ID = saleM.ID

	return nil
}

// SumProfit returns the profit summed over every sale, zero when there are none.
func (repo *saleRepository) SumProfit(ctx context.Context) (decimal.Decimal, error) {
	return repo.sumProfit(repo.db.WithContext(ctx).Model(&model.SaleModel{}))
}

// SumProfitBetween returns the profit summed over the sales of [from, to).
func (repo *saleRepository) SumProfitBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return repo.sumProfit(repo.db.WithContext(ctx).
		Model(&model.SaleModel{}).
		Where("date >= ? AND date < ?", from, to))
}

// sumProfit adds the profits up in decimal arithmetic. SQLite stores NUMERIC
// values as REAL when they have a fraction, so SUM there would drift.
func (repo *saleRepository) sumProfit(query *gorm.DB) (decimal.Decimal, error) {
	var rows []struct {
		Profit decimal.Decimal
	}

	if err := query.Select("profit").Scan(&rows).Error; err != nil {
		return decimal.Zero, errors.Wrap(err, "failed to sum sale profit")
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.Profit)
	}

	return total, nil
}

// CountByProduct returns how many sales reference the product.
func (repo *saleRepository) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	var count int64

	err := repo.db.WithContext(ctx).
		Model(&model.SaleModel{}).
		Where("item_id = ?", productID).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count sales by product")
	}

	return count, nil
}

// ListDetails returns every sale with its client, client address and product.
func (repo *saleRepository) ListDetails(ctx context.Context) ([]*entity.SaleDetail, error) {
	var rows []*saleDetailRow

	err := repo.db.WithContext(ctx).
		Table("sale AS s").
		Joins("JOIN client AS c ON c.person_id = s.client_id").
		Joins("JOIN person AS p ON p.person_id = c.person_id").
		Joins("JOIN address AS a ON a.address_id = p.address_id").
		Joins("JOIN product AS i ON i.item_id = s.item_id").
		Select(saleDetailColumns).
		Order("s.sale_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sales")
	}

	return toSaleDetails(rows), nil
}

// ListDetailsBetween returns the sales of [from, to) with their product and client tax ID.
func (repo *saleRepository) ListDetailsBetween(ctx context.Context, from, to time.Time) ([]*entity.SaleDetail, error) {
	var rows []*saleDetailRow

	err := repo.db.WithContext(ctx).
		Table("sale AS s").
		Joins("JOIN person AS p ON p.person_id = s.client_id").
		Joins("JOIN product AS i ON i.item_id = s.item_id").
		Select(salePeriodColumns).
		Where("s.date >= ? AND s.date < ?", from, to).
		Order("s.date, s.sale_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sales of period")
	}

	return toSaleDetails(rows), nil
}

// BestSellerBetween returns the product with the highest sold quantity in [from, to),
// ties broken by the lowest product ID, or nil when nothing was sold.
func (repo *saleRepository) BestSellerBetween(ctx context.Context, from, to time.Time) (*entity.ProductSales, error) {
	var rows []*struct {
		ItemID   int64
		Name     string
		Quantity int
	}

	err := repo.db.WithContext(ctx).
		Table("sale AS s").
		Joins("JOIN product AS i ON i.item_id = s.item_id").
		Select("i.item_id, i.name, SUM(s.quantity) AS quantity").
		Where("s.date >= ? AND s.date < ?", from, to).
		Group("i.item_id, i.name").
		Order("SUM(s.quantity) DESC, i.item_id ASC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find best-selling product")
	}

	if len(rows) == 0 {
		return nil, nil
	}

	return &entity.ProductSales{
		ProductID:   rows[0].ItemID,
		ProductName: rows[0].Name,
		Quantity:    rows[0].Quantity,
	}, nil
}

// --- Mapper Functions ---

func toSaleDetails(rows []*saleDetailRow) []*entity.SaleDetail {
	details := make([]*entity.SaleDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, toSaleDetailDomain(row))
	}

	return details
}

func toSaleDetailDomain(row *saleDetailRow) *entity.SaleDetail {
	return &entity.SaleDetail{
		Sale: entity.Sale{
			ID:        row.SaleID,
			Date:      row.Date,
			Quantity:  row.Quantity,
			ClientID:  row.PersonID,
			ProductID: row.ItemID,
			Profit:    row.Profit,
		},
		Client: entity.Client{
			Person: entity.Person{
				ID:    row.PersonID,
				TaxID: row.TaxID,
				Name:  row.Name,
				Email: model.StringValue(row.Email),
				Address: entity.Address{
					ID:           row.AddressID,
					Street:       model.StringValue(row.Street),
					Neighborhood: model.StringValue(row.Neighborhood),
					City:         model.StringValue(row.City),
					Number:       model.StringValue(row.Number),
					Complement:   model.StringValue(row.Complement),
				},
			},
			Phone: model.StringValue(row.Phone),
		},
		Product: entity.Product{
			ID:        row.ItemID,
			Name:      row.ProductName,
			UnitPrice: row.UnitPrice,
			CostPrice: row.CostPrice,
			Quantity:  row.Stock,
			Category:  model.StringValue(row.Category),
		},
	}
}
