package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseStatus tracks a supplier purchase order.
type PurchaseStatus string

const (
	PurchaseStatusPending   PurchaseStatus = "pending"
	PurchaseStatusOrdered   PurchaseStatus = "ordered"
	PurchaseStatusReceived  PurchaseStatus = "received"
	PurchaseStatusCancelled PurchaseStatus = "cancelled"
)

var PurchaseStatuses = []PurchaseStatus{
	PurchaseStatusPending, PurchaseStatusOrdered, PurchaseStatusReceived, PurchaseStatusCancelled,
}

func (s PurchaseStatus) IsValid() bool {
	switch s {
	case PurchaseStatusPending, PurchaseStatusOrdered, PurchaseStatusReceived, PurchaseStatusCancelled:
		return true
	default:
		return false
	}
}

func (s PurchaseStatus) IsFinal() bool {
	return s == PurchaseStatusReceived || s == PurchaseStatusCancelled
}

// PurchaseItem is one line of a purchase order. Its total is Quantity × UnitCost.
type PurchaseItem struct {
	Name     string          `json:"name" yaml:"name" validate:"required"`
	Quantity int             `json:"quantity" yaml:"quantity" validate:"min=1"`
	Unit     InventoryUnit   `json:"unit" yaml:"unit" validate:"enum"`
	UnitCost decimal.Decimal `json:"unit_cost" yaml:"unit_cost" validate:"gte=0"`
}

func (i PurchaseItem) LineQuantity() int              { return i.Quantity }
func (i PurchaseItem) LineUnitPrice() decimal.Decimal { return i.UnitCost }

// Purchase is an order placed with a supplier.
type Purchase struct {
	ID              string         `json:"id" yaml:"id"`
	OrderNumber     string         `json:"order_number" yaml:"order_number" validate:"required"`
	Supplier        string         `json:"supplier" yaml:"supplier" validate:"required"`
	SupplierContact string         `json:"supplier_contact" yaml:"supplier_contact"`
	Items           []PurchaseItem `json:"items" yaml:"items" validate:"min=1,dive"`
	Status          PurchaseStatus `json:"status" yaml:"status" validate:"enum"`
	DeliveryDate    Date           `json:"delivery_date" yaml:"delivery_date"`
	CreatedAt       time.Time      `json:"created_at" yaml:"created_at"`
	Notes           *string        `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (p Purchase) GetID() string { return p.ID }

func (p Purchase) WithID(id string) Purchase {
	p.ID = id
	return p
}

func (p Purchase) WithStatus(s PurchaseStatus) Purchase {
	p.Status = s
	return p
}

// PurchaseFilters narrows purchase listings.
type PurchaseFilters struct {
	Search string `form:"search"`
	Status string `form:"status"`
}
