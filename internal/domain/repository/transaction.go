package repository

import "context"

// TransactionManager defines the interface for managing database transactions.
// Every mutating use case runs inside exactly one Execute call, which is its unit of work.
type TransactionManager interface {
	// Execute runs a function within a database transaction.
	// If the function returns an error, the transaction is rolled back. Otherwise, it's committed.
	// All repository operations within the function will use the same database transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory provides a way to get repository instances that are bound to a specific transaction.
// This ensures all repository operations within a transaction use the same database connection.
type RepositoryFactory interface {
	NewAddressRepository() AddressRepository
	NewPersonRepository() PersonRepository
	NewClientRepository() ClientRepository
	NewProprietorRepository() ProprietorRepository
	NewProductRepository() ProductRepository
	NewSaleRepository() SaleRepository
	NewMaintenanceRepository() MaintenanceRepository
}
