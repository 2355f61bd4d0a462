package main

import (
	"time"

	"nexus/internal/domain/entity"
)

const (
	dateLayout  = "2006-01-02"
	monthLayout = "2006-01"
)

type addressView struct {
	Street       string `json:"street,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
}

type clientView struct {
	ID      int64        `json:"id"`
	TaxID   string       `json:"taxId"`
	Name    string       `json:"name"`
	Email   string       `json:"email,omitempty"`
	Phone   string       `json:"phone,omitempty"`
	Address *addressView `json:"address,omitempty"`
}

type proprietorView struct {
	ID    int64  `json:"id"`
	TaxID string `json:"taxId"`
	Name  string `json:"name"`
	Login string `json:"login"`
	Cash  string `json:"cash"`
}

type productView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	CostPrice string `json:"costPrice"`
	Quantity  int    `json:"quantity"`
	Category  string `json:"category,omitempty"`
}

type saleView struct {
	ID          int64        `json:"id"`
	Date        string       `json:"date"`
	Quantity    int          `json:"quantity"`
	Profit      string       `json:"profit"`
	ClientTaxID string       `json:"clientTaxId"`
	ClientName  string       `json:"clientName,omitempty"`
	Product     *productView `json:"product,omitempty"`
}

type bestSellerView struct {
	Month       string `json:"month"`
	ProductID   int64  `json:"productId,omitempty"`
	ProductName string `json:"productName,omitempty"`
	Quantity    int    `json:"quantity"`
}

func newClientView(client *entity.Client) clientView {
	view := clientView{
		ID:    client.ID,
		TaxID: client.TaxID,
		Name:  client.Name,
		Email: client.Email,
		Phone: client.Phone,
	}
	if address := client.Address; address != (entity.Address{}) {
		view.Address = &addressView{
			Street:       address.Street,
			Neighborhood: address.Neighborhood,
			City:         address.City,
			Number:       address.Number,
			Complement:   address.Complement,
		}
	}

	return view
}

func newProprietorView(proprietor *entity.Proprietor) proprietorView {
	return proprietorView{
		ID:    proprietor.ID,
		TaxID: proprietor.TaxID,
		Name:  proprietor.Name,
		Login: proprietor.Login,
		Cash:  proprietor.Cash.StringFixed(2),
	}
}

func newProductView(product *entity.Product) productView {
	return productView{
		ID:        product.ID,
		Name:      product.Name,
		UnitPrice: product.UnitPrice.StringFixed(2),
		CostPrice: product.CostPrice.StringFixed(2),
		Quantity:  product.Quantity,
		Category:  product.Category,
	}
}

func newSaleView(detail *entity.SaleDetail) saleView {
	product := newProductView(&detail.Product)

	return saleView{
		ID:          detail.Sale.ID,
		Date:        formatDate(detail.Sale.Date),
		Quantity:    detail.Sale.Quantity,
		Profit:      detail.Sale.Profit.StringFixed(2),
		ClientTaxID: detail.Client.TaxID,
		ClientName:  detail.Client.Name,
		Product:     &product,
	}
}

func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}
