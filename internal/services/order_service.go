package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/filters"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/repositories"
	"delizzia_backoffice/internal/rules"
	"delizzia_backoffice/internal/validation"
	"delizzia_backoffice/pkg/utils"
)

var (
	ErrOrderNotFound = errors.New("order not found")
)

// --- Order DTOs ---

// CreateOrderRequest is used for creating a new order. The order number is
// assigned by the service.
type CreateOrderRequest struct {
	CustomerName    string               `json:"customer_name"`
	CustomerPhone   string               `json:"customer_phone"`
	CustomerAddress *string              `json:"customer_address"`
	Items           []models.OrderItem   `json:"items"`
	Status          models.OrderStatus   `json:"status"` // defaults to pending
	PaymentMethod   models.PaymentMethod `json:"payment_method"`
	Platform        models.Platform      `json:"platform"`
	EstimatedTime   *string              `json:"estimated_time"`
	Notes           *string              `json:"notes"`
}

type UpdateOrderRequest struct {
	CustomerName    *string               `json:"customer_name"`
	CustomerPhone   *string               `json:"customer_phone"`
	CustomerAddress *string               `json:"customer_address"`
	Items           []models.OrderItem    `json:"items"` // replaces all lines when non-nil
	PaymentMethod   *models.PaymentMethod `json:"payment_method"`
	Platform        *models.Platform      `json:"platform"`
	EstimatedTime   *string               `json:"estimated_time"`
	Notes           *string               `json:"notes"`
}

// UpdateOrderStatusRequest is used for updating the status of an order.
type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// OrderView is an order with its total computed from the current lines.
type OrderView struct {
	models.Order
	Total      decimal.Decimal `json:"total"`
	ItemsCount int             `json:"items_count"`
}

// NewOrderView recomputes the total; a stored total is never trusted.
func NewOrderView(o models.Order) OrderView {
	return OrderView{Order: o, Total: rules.ComputeTotal(o.Items), ItemsCount: rules.TotalQuantity(o.Items)}
}

// --- OrderService Interface ---
type OrderService interface {
	CreateOrder(req CreateOrderRequest) (*OrderView, error)
	GetOrders(filters models.OrderFilters) ([]OrderView, error)
	GetOrderByID(orderID string) (*OrderView, error)
	UpdateOrder(orderID string, req UpdateOrderRequest) (*OrderView, error)
	UpdateOrderStatus(orderID string, req UpdateOrderStatusRequest) (*OrderView, error)
	DeleteOrder(orderID string) error
	GetProfitability(orderID string) (*rules.Profitability, error)
}

// --- orderService Implementation ---
type orderService struct {
	orderRepo repositories.OrderRepository
	menuRepo  repositories.MenuRepository
	validator *validation.Validator
	policy    StatusPolicy
	clock     Clock
}

// NewOrderService creates a new instance of OrderService.
func NewOrderService(
	or repositories.OrderRepository,
	mr repositories.MenuRepository,
	v *validation.Validator,
	policy StatusPolicy,
	clock Clock,
) OrderService {
	return &orderService{
		orderRepo: or,
		menuRepo:  mr,
		validator: v,
		policy:    policy,
		clock:     clock,
	}
}

func (s *orderService) CreateOrder(req CreateOrderRequest) (*OrderView, error) {
	now := s.clock.Now()
	order := models.Order{
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		Items:           req.Items,
		Status:          req.Status,
		PaymentMethod:   req.PaymentMethod,
		Platform:        req.Platform,
		CreatedAt:       now,
		EstimatedTime:   req.EstimatedTime,
		Notes:           req.Notes,
	}
	if order.Status == "" {
		order.Status = models.OrderStatusPending
	}

	// A concurrent create can take the same number between lookup and insert.
	var created models.Order
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		order.OrderNumber = s.nextOrderNumber(now)
		if verr := s.validator.Order(order); verr != nil {
			return nil, verr
		}
		created, err = s.orderRepo.Create(order)
		if !errors.Is(err, repositories.ErrDuplicateKey) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	v := NewOrderView(created)
	utils.LogInfo("Order created", map[string]interface{}{
		"order_id":     created.ID,
		"order_number": created.OrderNumber,
		"total":        utils.FormatMoney(v.Total),
		"platform":     created.Platform,
	})
	return &v, nil
}

func (s *orderService) nextOrderNumber(now time.Time) string {
	taken := map[string]bool{}
	for _, o := range s.orderRepo.List() {
		taken[o.OrderNumber] = true
	}
	return nextNumber("ORD", now, func(n string) bool { return taken[n] })
}

func (s *orderService) GetOrders(f models.OrderFilters) ([]OrderView, error) {
	if f.Date != "" {
		if _, err := parseDay(f.Date, s.clock); err != nil {
			return nil, err
		}
	}
	orders := filters.Orders(s.orderRepo.List(), f)
	views := make([]OrderView, len(orders))
	for i, o := range orders {
		views[i] = NewOrderView(o)
	}
	return views, nil
}

func (s *orderService) GetOrderByID(orderID string) (*OrderView, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	v := NewOrderView(order)
	return &v, nil
}

func (s *orderService) UpdateOrder(orderID string, req UpdateOrderRequest) (*OrderView, error) {
	updated, err := s.orderRepo.Modify(orderID, func(o models.Order) (models.Order, error) {
		if req.CustomerName != nil {
			o.CustomerName = strings.TrimSpace(*req.CustomerName)
		}
		if req.CustomerPhone != nil {
			o.CustomerPhone = *req.CustomerPhone
		}
		if req.CustomerAddress != nil {
			o.CustomerAddress = req.CustomerAddress
		}
		if req.Items != nil {
			o.Items = req.Items
		}
		if req.PaymentMethod != nil {
			o.PaymentMethod = *req.PaymentMethod
		}
		if req.Platform != nil {
			o.Platform = *req.Platform
		}
		if req.EstimatedTime != nil {
			o.EstimatedTime = req.EstimatedTime
		}
		if req.Notes != nil {
			o.Notes = req.Notes
		}
		return o, s.validator.Order(o)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	v := NewOrderView(updated)
	return &v, nil
}

func (s *orderService) UpdateOrderStatus(orderID string, req UpdateOrderStatusRequest) (*OrderView, error) {
	updated, err := s.orderRepo.UpdateStatus(orderID, req.Status, s.policy.OrderGuard(req.Status))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	utils.LogInfo("Order status changed", map[string]interface{}{
		"order_id": orderID,
		"status":   updated.Status,
	})
	v := NewOrderView(updated)
	return &v, nil
}

func (s *orderService) DeleteOrder(orderID string) error {
	if err := s.orderRepo.Delete(orderID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

// GetProfitability costs the order with the current menu costs, matched by item name.
func (s *orderService) GetProfitability(orderID string) (*rules.Profitability, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	p := rules.OrderProfitability(order, menuCostLookup(s.menuRepo.List()))
	return &p, nil
}

func menuCostLookup(menu []models.MenuItem) func(string) (decimal.Decimal, bool) {
	costs := make(map[string]decimal.Decimal, len(menu))
	for _, m := range menu {
		costs[m.Name] = m.Cost
	}
	return func(name string) (decimal.Decimal, bool) {
		c, ok := costs[name]
		return c, ok
	}
}
