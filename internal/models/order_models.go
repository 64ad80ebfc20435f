package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the kitchen/delivery stage of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{
	OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled,
}

func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsFinal reports whether the order has left the active queue.
func (s OrderStatus) IsFinal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentMethod is how the customer paid.
type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "efectivo"
	PaymentCard     PaymentMethod = "tarjeta"
	PaymentTransfer PaymentMethod = "transferencia"
	PaymentPlatform PaymentMethod = "plataforma"
)

var PaymentMethods = []PaymentMethod{PaymentCash, PaymentCard, PaymentTransfer, PaymentPlatform}

func (p PaymentMethod) IsValid() bool {
	switch p {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentPlatform:
		return true
	default:
		return false
	}
}

// Platform is the channel an order came through.
type Platform string

const (
	PlatformInStore   Platform = "presencial"
	PlatformUberEats  Platform = "uber-eats"
	PlatformPedidosYa Platform = "pedidos-ya"
	PlatformBis       Platform = "bis"
	PlatformPhone     Platform = "telefono"
)

var Platforms = []Platform{PlatformInStore, PlatformUberEats, PlatformPedidosYa, PlatformBis, PlatformPhone}

func (p Platform) IsValid() bool {
	switch p {
	case PlatformInStore, PlatformUberEats, PlatformPedidosYa, PlatformBis, PlatformPhone:
		return true
	default:
		return false
	}
}

// OrderItem is one line of an order.
type OrderItem struct {
	Name     string          `json:"name" yaml:"name" validate:"required"`
	Quantity int             `json:"quantity" yaml:"quantity" validate:"min=1"`
	Price    decimal.Decimal `json:"price" yaml:"price" validate:"gte=0"`
}

func (i OrderItem) LineQuantity() int              { return i.Quantity }
func (i OrderItem) LineUnitPrice() decimal.Decimal { return i.Price }

// Order is a customer order. Its total is derived from Items on every read.
type Order struct {
	ID              string        `json:"id" yaml:"id"`
	OrderNumber     string        `json:"order_number" yaml:"order_number" validate:"required"`
	CustomerName    string        `json:"customer_name" yaml:"customer_name" validate:"required"`
	CustomerPhone   string        `json:"customer_phone" yaml:"customer_phone"`
	CustomerAddress *string       `json:"customer_address,omitempty" yaml:"customer_address,omitempty"`
	Items           []OrderItem   `json:"items" yaml:"items" validate:"min=1,dive"`
	Status          OrderStatus   `json:"status" yaml:"status" validate:"enum"`
	PaymentMethod   PaymentMethod `json:"payment_method" yaml:"payment_method" validate:"enum"`
	Platform        Platform      `json:"platform" yaml:"platform" validate:"enum"`
	CreatedAt       time.Time     `json:"created_at" yaml:"created_at"`
	EstimatedTime   *string       `json:"estimated_time,omitempty" yaml:"estimated_time,omitempty"`
	Notes           *string       `json:"notes,omitempty" yaml:"notes,omitempty"`
}

func (o Order) GetID() string { return o.ID }

func (o Order) WithID(id string) Order {
	o.ID = id
	return o
}

func (o Order) WithStatus(s OrderStatus) Order {
	o.Status = s
	return o
}

// OrderFilters defines the available filters for querying orders.
type OrderFilters struct {
	Search string `form:"search"`
	Status string `form:"status"`
	Date   string `form:"date"` // YYYY-MM-DD, optional
}
