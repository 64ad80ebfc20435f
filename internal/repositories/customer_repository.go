package repositories

import (
	"delizzia_backoffice/internal/database"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/mutators"
)

// CustomerRepository stores customers. Phone numbers are unique.
type CustomerRepository interface {
	Repository[models.Customer]
}

// NewCustomerRepository creates a new instance of CustomerRepository seeded from db.
func NewCustomerRepository(db *database.Dataset, ids mutators.IDGenerator) CustomerRepository {
	return newMemoryStore("customer", db.Customers, ids, func(c models.Customer) string { return c.Phone })
}
