package repositories

import (
	"fmt"
	"time"

	"delizzia_backoffice/internal/database"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/mutators"
)

// InventoryRepository stores inventory items and the log of stock movements.
type InventoryRepository interface {
	Repository[models.InventoryItem]
	// AdjustStock applies delta (clamped at zero) and records the movement atomically.
	// A delta that would overflow the stock count is rejected with ErrStockOverflow.
	AdjustStock(id string, delta int, movementType models.MovementType, reason *string, at time.Time) (models.InventoryItem, models.InventoryMovement, error)
	// GetMovements lists movements oldest first, optionally for one item.
	GetMovements(itemID *string) []models.InventoryMovement
}

type inventoryRepository struct {
	*memoryStore[models.InventoryItem]
	movements []models.InventoryMovement
}

// NewInventoryRepository creates a new instance of InventoryRepository seeded from db.
func NewInventoryRepository(db *database.Dataset, ids mutators.IDGenerator) InventoryRepository {
	return &inventoryRepository{memoryStore: newMemoryStore("inventory item", db.Inventory, ids, nil)}
}

func (r *inventoryRepository) AdjustStock(id string, delta int, movementType models.MovementType, reason *string, at time.Time) (models.InventoryItem, models.InventoryMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	before, ok := mutators.Find(r.items, id)
	if !ok {
		return before, models.InventoryMovement{}, fmt.Errorf("%w: inventory item %s", ErrNotFound, id)
	}
	if _, ok := mutators.AddStock(before.CurrentStock, delta); !ok {
		return before, models.InventoryMovement{}, fmt.Errorf("%w: inventory item %s", ErrStockOverflow, id)
	}
	r.items = mutators.AdjustStock(r.items, id, delta)
	after, _ := mutators.Find(r.items, id)

	movement := models.InventoryMovement{
		ID:              r.ids.NextID(),
		InventoryItemID: id,
		MovementType:    movementType,
		RequestedDelta:  delta,
		QuantityChanged: after.CurrentStock - before.CurrentStock,
		StockAfter:      after.CurrentStock,
		Reason:          reason,
		MovementDate:    at,
	}
	r.movements = append(r.movements, movement)
	return after, movement, nil
}

func (r *inventoryRepository) GetMovements(itemID *string) []models.InventoryMovement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.InventoryMovement, 0, len(r.movements))
	for _, m := range r.movements {
		if itemID == nil || m.InventoryItemID == *itemID {
			out = append(out, m)
		}
	}
	return out
}
