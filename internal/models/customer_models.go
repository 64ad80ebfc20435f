package models

import "github.com/shopspring/decimal"

// CustomerType is assigned by staff; it is not recomputed from order counts.
type CustomerType string

const (
	CustomerTypeRegular  CustomerType = "regular"
	CustomerTypeFrequent CustomerType = "frequent"
	CustomerTypeVIP      CustomerType = "vip"
	CustomerTypeNew      CustomerType = "new"
)

var CustomerTypes = []CustomerType{CustomerTypeRegular, CustomerTypeFrequent, CustomerTypeVIP, CustomerTypeNew}

func (t CustomerType) IsValid() bool {
	switch t {
	case CustomerTypeRegular, CustomerTypeFrequent, CustomerTypeVIP, CustomerTypeNew:
		return true
	default:
		return false
	}
}

// Customer represents a person who orders from the restaurant.
type Customer struct {
	ID            string          `json:"id" yaml:"id"`
	Name          string          `json:"name" yaml:"name" validate:"required"`
	Phone         string          `json:"phone" yaml:"phone" validate:"required"`
	Email         *string         `json:"email,omitempty" yaml:"email,omitempty" validate:"omitempty,email"`
	Address       *string         `json:"address,omitempty" yaml:"address,omitempty"`
	TotalOrders   int             `json:"total_orders" yaml:"total_orders" validate:"min=0"`
	TotalSpent    decimal.Decimal `json:"total_spent" yaml:"total_spent" validate:"gte=0"`
	LastOrder     Date            `json:"last_order" yaml:"last_order"`
	JoinDate      Date            `json:"join_date" yaml:"join_date"`
	Type          CustomerType    `json:"type" yaml:"type" validate:"enum"`
	FavoriteItems []string        `json:"favorite_items" yaml:"favorite_items"`
}

func (c Customer) GetID() string { return c.ID }

func (c Customer) WithID(id string) Customer {
	c.ID = id
	return c
}

// CustomerFilters narrows customer listings by free text and type.
type CustomerFilters struct {
	Search string `form:"search"`
	Type   string `form:"type"`
}
