// Package model holds the GORM row models, one per table.
// They are exported so repositories in other packages can share them.
package model

import "github.com/shopspring/decimal"

// AddressModel mirrors the 'address' table.
type AddressModel struct {
	ID           int64  `gorm:"column:address_id;primaryKey;autoIncrement"`
	Street       string `gorm:"column:street"`
	Neighborhood string `gorm:"column:neighborhood"`
	City         string `gorm:"column:city"`
	Number       string `gorm:"column:number"`
	Complement   string `gorm:"column:complement"`
}

// TableName explicitly sets the table name for GORM.
func (AddressModel) TableName() string {
	return "address"
}

// PersonModel mirrors the 'person' table. TaxID is unique and required.
// Nullable columns are pointers so empty input reaches the NOT NULL constraint as NULL.
type PersonModel struct {
	ID        int64   `gorm:"column:person_id;primaryKey;autoIncrement"`
	Name      *string `gorm:"column:name"`
	Email     *string `gorm:"column:email"`
	TaxID     *string `gorm:"column:tax_id"`
	AddressID int64   `gorm:"column:address_id"`
}

// TableName explicitly sets the table name for GORM.
func (PersonModel) TableName() string {
	return "person"
}

// ClientModel mirrors the 'client' table. PersonID references person.person_id.
type ClientModel struct {
	PersonID int64  `gorm:"column:person_id;primaryKey;autoIncrement:false"`
	Phone    string `gorm:"column:phone"`
}

// TableName explicitly sets the table name for GORM.
func (ClientModel) TableName() string {
	return "client"
}

// ProprietorSingletonKey is the only value the proprietor.singleton column accepts.
// Together with its UNIQUE constraint it makes a second proprietor row impossible.
const ProprietorSingletonKey = 1

// ProprietorModel mirrors the 'proprietor' table. PersonID references person.person_id.
type ProprietorModel struct {
	PersonID  int64           `gorm:"column:person_id;primaryKey;autoIncrement:false"`
	Singleton int             `gorm:"column:singleton"`
	Login     *string         `gorm:"column:login"`
	Secret    *string         `gorm:"column:secret"`
	Cash      decimal.Decimal `gorm:"column:cash"`
}

// TableName explicitly sets the table name for GORM.
func (ProprietorModel) TableName() string {
	return "proprietor"
}

// NullableString maps "" to nil so the column's NOT NULL constraint decides.
func NullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// StringValue dereferences a nullable column value.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
