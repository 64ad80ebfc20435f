package models

// Options lists the enumerated values selector controls offer.
type Options struct {
	OrderStatuses       []OrderStatus       `json:"order_statuses"`
	PurchaseStatuses    []PurchaseStatus    `json:"purchase_statuses"`
	InventoryCategories []InventoryCategory `json:"inventory_categories"`
	InventoryUnits      []InventoryUnit     `json:"inventory_units"`
	PaymentMethods      []PaymentMethod     `json:"payment_methods"`
	Platforms           []Platform          `json:"platforms"`
	StaffPositions      []StaffPosition     `json:"staff_positions"`
	StaffStatuses       []StaffStatus       `json:"staff_statuses"`
	CustomerTypes       []CustomerType      `json:"customer_types"`
}

// AllOptions returns every option set in display order.
func AllOptions() Options {
	return Options{
		OrderStatuses:       OrderStatuses,
		PurchaseStatuses:    PurchaseStatuses,
		InventoryCategories: InventoryCategories,
		InventoryUnits:      InventoryUnits,
		PaymentMethods:      PaymentMethods,
		Platforms:           Platforms,
		StaffPositions:      StaffPositions,
		StaffStatuses:       StaffStatuses,
		CustomerTypes:       CustomerTypes,
	}
}
