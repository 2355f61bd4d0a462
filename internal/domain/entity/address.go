// Package entity contains the core business objects of the project.
package entity

// Address is the postal address owned by exactly one person.
// It is created before its owner and deleted after it.
type Address struct {
	ID           int64  // Generated identifier of the address row.
	Street       string // Street name.
	Neighborhood string // Neighborhood or district.
	City         string // City name.
	Number       string // Street number, kept as text ("12A", "s/n").
	Complement   string // Optional complement (apartment, block, ...).
}
