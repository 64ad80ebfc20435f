package rules

import (
	"math"

	"delizzia_backoffice/internal/models"
)

// StockStatus is the shelf state of an inventory item.
type StockStatus string

const (
	StockOut    StockStatus = "out"
	StockLow    StockStatus = "low"
	StockHigh   StockStatus = "high"
	StockNormal StockStatus = "normal"
)

// StockStatusFor checks, in order: empty shelf, at or below minimum,
// at or above maximum. A zero stock is always out, even with a zero minimum.
func StockStatusFor(currentStock, minStock, maxStock int) StockStatus {
	switch {
	case currentStock <= 0:
		return StockOut
	case currentStock <= minStock:
		return StockLow
	case currentStock >= maxStock:
		return StockHigh
	default:
		return StockNormal
	}
}

// StockPercentage is currentStock/maxStock as a percentage clamped to [0,100].
// A maxStock of zero or less yields 0.
func StockPercentage(currentStock, maxStock int) float64 {
	if maxStock <= 0 {
		return 0
	}
	p := float64(currentStock) / float64(maxStock) * 100
	return math.Max(0, math.Min(p, 100))
}

// InventoryStatus applies StockStatusFor to an item.
func InventoryStatus(item models.InventoryItem) StockStatus {
	return StockStatusFor(item.CurrentStock, item.MinStock, item.MaxStock)
}

// NeedsAttention reports whether the status should raise a stock alert.
func (s StockStatus) NeedsAttention() bool {
	return s == StockOut || s == StockLow
}
