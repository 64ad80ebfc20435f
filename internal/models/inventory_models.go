package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryCategory groups stock items.
type InventoryCategory string

const (
	InventoryCategoryIngredients InventoryCategory = "ingredientes"
	InventoryCategoryDrinks      InventoryCategory = "bebidas"
	InventoryCategoryPackaging   InventoryCategory = "empaques"
	InventoryCategoryCleaning    InventoryCategory = "limpieza"
)

var InventoryCategories = []InventoryCategory{
	InventoryCategoryIngredients,
	InventoryCategoryDrinks,
	InventoryCategoryPackaging,
	InventoryCategoryCleaning,
}

func (c InventoryCategory) IsValid() bool {
	switch c {
	case InventoryCategoryIngredients, InventoryCategoryDrinks, InventoryCategoryPackaging, InventoryCategoryCleaning:
		return true
	default:
		return false
	}
}

// InventoryUnit is the unit stock is counted in.
type InventoryUnit string

const (
	UnitKilograms InventoryUnit = "kg"
	UnitLiters    InventoryUnit = "litros"
	UnitUnits     InventoryUnit = "unidades"
	UnitBoxes     InventoryUnit = "cajas"
	UnitPackages  InventoryUnit = "paquetes"
)

var InventoryUnits = []InventoryUnit{UnitKilograms, UnitLiters, UnitUnits, UnitBoxes, UnitPackages}

func (u InventoryUnit) IsValid() bool {
	switch u {
	case UnitKilograms, UnitLiters, UnitUnits, UnitBoxes, UnitPackages:
		return true
	default:
		return false
	}
}

// InventoryItem is a stocked ingredient or supply. Its total value is
// always derived from CurrentStock and UnitCost and is never stored.
type InventoryItem struct {
	ID            string            `json:"id" yaml:"id"`
	Name          string            `json:"name" yaml:"name" validate:"required"`
	Category      InventoryCategory `json:"category" yaml:"category" validate:"enum"`
	CurrentStock  int               `json:"current_stock" yaml:"current_stock" validate:"min=0"`
	MinStock      int               `json:"min_stock" yaml:"min_stock" validate:"min=0"`
	MaxStock      int               `json:"max_stock" yaml:"max_stock" validate:"min=0"`
	Unit          InventoryUnit     `json:"unit" yaml:"unit" validate:"enum"`
	UnitCost      decimal.Decimal   `json:"unit_cost" yaml:"unit_cost" validate:"gt=0"`
	Supplier      string            `json:"supplier" yaml:"supplier"`
	LastRestocked Date              `json:"last_restocked" yaml:"last_restocked"`
	ExpiryDate    *Date             `json:"expiry_date,omitempty" yaml:"expiry_date,omitempty"`
}

func (i InventoryItem) GetID() string { return i.ID }

func (i InventoryItem) WithID(id string) InventoryItem {
	i.ID = id
	return i
}

// TotalValue is CurrentStock × UnitCost.
func (i InventoryItem) TotalValue() decimal.Decimal {
	return decimal.NewFromInt(int64(i.CurrentStock)).Mul(i.UnitCost)
}

// MovementType classifies a stock change.
type MovementType string

const (
	MovementAdjustmentIn  MovementType = "adjustment_in"
	MovementAdjustmentOut MovementType = "adjustment_out"
	MovementRestock       MovementType = "restock"
)

// InventoryMovement records one applied stock change. QuantityChanged is the
// effective delta after clamping, so it can differ from the requested delta.
type InventoryMovement struct {
	ID              string       `json:"id"`
	InventoryItemID string       `json:"inventory_item_id"`
	MovementType    MovementType `json:"movement_type"`
	RequestedDelta  int          `json:"requested_delta"`
	QuantityChanged int          `json:"quantity_changed"`
	StockAfter      int          `json:"stock_after"`
	Reason          *string      `json:"reason,omitempty"`
	MovementDate    time.Time    `json:"movement_date"`
}

// InventoryFilters narrows inventory listings.
type InventoryFilters struct {
	Search   string `form:"search"`
	Category string `form:"category"`
}
