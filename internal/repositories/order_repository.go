package repositories

import (
	"delizzia_backoffice/internal/database"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/mutators"
)

// OrderRepository stores orders. Order numbers are unique.
type OrderRepository interface {
	Repository[models.Order]
	UpdateStatus(id string, status models.OrderStatus, guard StatusGuard[models.Order]) (models.Order, error)
}

type orderRepository struct {
	*memoryStore[models.Order]
}

// NewOrderRepository creates a new instance of OrderRepository seeded from db.
func NewOrderRepository(db *database.Dataset, ids mutators.IDGenerator) OrderRepository {
	return &orderRepository{
		memoryStore: newMemoryStore("order", db.Orders, ids, func(o models.Order) string { return o.OrderNumber }),
	}
}

func (r *orderRepository) UpdateStatus(id string, status models.OrderStatus, guard StatusGuard[models.Order]) (models.Order, error) {
	return setStatus(r.memoryStore, id, status, guard)
}
