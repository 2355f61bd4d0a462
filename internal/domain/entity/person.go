package entity

import "github.com/shopspring/decimal"

// Person holds the identity shared by every role in the system.
// Roles are composed on top of it by sharing the same identity instead of inheriting from it.
type Person struct {
	ID      int64   // Generated identifier of the person row.
	TaxID   string  // Tax identifier (CPF/CNPJ), globally unique.
	Name    string  // Display name.
	Email   string  // Contact email.
	Address Address // The address exclusively owned by this person.
}

// Client is a person who buys products.
type Client struct {
	Person
	Phone string
}

// Proprietor is the single operator of the system.
// Cash is never written directly; it is recomputed from the sale history.
type Proprietor struct {
	Person
	Login  string
	Secret string // Plaintext on input only; storage keeps a bcrypt hash.
	Cash   decimal.Decimal
}
