package models

import "github.com/shopspring/decimal"

// MenuItem is a sellable product on the menu.
type MenuItem struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name" validate:"required"`
	Category    string          `json:"category" yaml:"category" validate:"required"`
	Price       decimal.Decimal `json:"price" yaml:"price" validate:"gt=0"`
	Cost        decimal.Decimal `json:"cost" yaml:"cost" validate:"gt=0"`
	Description *string         `json:"description,omitempty" yaml:"description,omitempty"`
	Available   bool            `json:"available" yaml:"available"`
	Popularity  int             `json:"popularity" yaml:"popularity" validate:"min=0,max=100"`
}

func (m MenuItem) GetID() string { return m.ID }

func (m MenuItem) WithID(id string) MenuItem {
	m.ID = id
	return m
}

// MenuFilters narrows menu listings. Category "all" or empty matches every item.
type MenuFilters struct {
	Search   string `form:"search"`
	Category string `form:"category"`
}
