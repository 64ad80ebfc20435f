package repositories

import (
	"delizzia_backoffice/internal/database"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/mutators"
)

// PurchaseRepository stores supplier purchase orders. Order numbers are unique.
type PurchaseRepository interface {
	Repository[models.Purchase]
	UpdateStatus(id string, status models.PurchaseStatus, guard StatusGuard[models.Purchase]) (models.Purchase, error)
}

type purchaseRepository struct {
	*memoryStore[models.Purchase]
}

// NewPurchaseRepository creates a new instance of PurchaseRepository seeded from db.
func NewPurchaseRepository(db *database.Dataset, ids mutators.IDGenerator) PurchaseRepository {
	return &purchaseRepository{
		memoryStore: newMemoryStore("purchase", db.Purchases, ids, func(p models.Purchase) string { return p.OrderNumber }),
	}
}

func (r *purchaseRepository) UpdateStatus(id string, status models.PurchaseStatus, guard StatusGuard[models.Purchase]) (models.Purchase, error) {
	return setStatus(r.memoryStore, id, status, guard)
}
