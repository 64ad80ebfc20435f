// Package mutators applies edits to entity lists. Every function returns a
// new slice and leaves its input untouched.
package mutators

import (
	"math"

	"delizzia_backoffice/internal/models"
)

// Record is an entity addressable by id.
type Record[T any] interface {
	GetID() string
	WithID(id string) T
}

// Stateful is a record with a status field.
type Stateful[T any, S ~string] interface {
	Record[T]
	WithStatus(status S) T
}

func clone[T any](list []T) []T {
	out := make([]T, len(list), len(list)+1)
	copy(out, list)
	return out
}

// Find returns the entry with id.
func Find[T Record[T]](list []T, id string) (T, bool) {
	for _, item := range list {
		if item.GetID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Upsert replaces the entry sharing item's id, or appends item under a fresh
// id from ids when no entry matches. It returns the new list and the stored item.
func Upsert[T Record[T]](list []T, item T, ids IDGenerator) ([]T, T) {
	out := clone(list)
	if id := item.GetID(); id != "" {
		for i := range out {
			if out[i].GetID() == id {
				out[i] = item
				return out, item
			}
		}
	}
	item = item.WithID(ids.NextID())
	return append(out, item), item
}

// Remove drops the entry with id. An unknown id is a no-op.
func Remove[T Record[T]](list []T, id string) []T {
	out := make([]T, 0, len(list))
	for _, item := range list {
		if item.GetID() != id {
			out = append(out, item)
		}
	}
	return out
}

// Update applies fn to the entry with id and reports whether one matched.
func Update[T Record[T]](list []T, id string, fn func(T) T) ([]T, bool) {
	out := clone(list)
	for i := range out {
		if out[i].GetID() == id {
			out[i] = fn(out[i])
			return out, true
		}
	}
	return out, false
}

// SetStatus replaces the status of the entry with id. An unknown id is a no-op.
func SetStatus[T Stateful[T, S], S ~string](list []T, id string, status S) []T {
	out, _ := Update(list, id, func(item T) T { return item.WithStatus(status) })
	return out
}

// AddStock returns current+delta clamped to [0, math.MaxInt]. ok is false
// when the sum exceeds math.MaxInt and was saturated.
func AddStock(current, delta int) (stock int, ok bool) {
	if delta > 0 && current > math.MaxInt-delta {
		return math.MaxInt, false
	}
	if delta < 0 && current < math.MinInt-delta {
		return 0, true
	}
	return max(0, current+delta), true
}

// AdjustStock adds delta to the item's stock, clamping at zero and
// saturating at math.MaxInt. The item's total value follows from the new
// stock since it is never stored.
func AdjustStock(list []models.InventoryItem, id string, delta int) []models.InventoryItem {
	out, _ := Update(list, id, func(item models.InventoryItem) models.InventoryItem {
		item.CurrentStock, _ = AddStock(item.CurrentStock, delta)
		return item
	})
	return out
}
