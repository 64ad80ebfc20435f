package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/filters"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/repositories"
	"delizzia_backoffice/internal/rules"
	"delizzia_backoffice/internal/validation"
	"delizzia_backoffice/pkg/utils"
)

// --- Custom Service Errors for Customer ---
var (
	ErrCustomerNotFound  = errors.New("customer not found")
	ErrPhoneNumberExists = errors.New("phone number already exists")
)

// --- Customer DTOs ---
type CreateCustomerRequest struct {
	Name          string              `json:"name"`
	Phone         string              `json:"phone"`
	Email         *string             `json:"email"`
	Address       *string             `json:"address"`
	Type          models.CustomerType `json:"type"` // defaults to new
	FavoriteItems []string            `json:"favorite_items"`
}

type UpdateCustomerRequest struct {
	Name          *string              `json:"name"`
	Phone         *string              `json:"phone"`
	Email         *string              `json:"email"`
	Address       *string              `json:"address"`
	Type          *models.CustomerType `json:"type"`
	FavoriteItems []string             `json:"favorite_items"`
}

// RecordOrderRequest adds one completed order to a customer's history.
type RecordOrderRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Date   *models.Date    `json:"date"` // defaults to today
}

// CustomerView is a customer with average order value and insight tags.
type CustomerView struct {
	models.Customer
	AverageOrder decimal.Decimal `json:"average_order"`
	Insights     []string        `json:"insights"`
}

// --- CustomerService Interface ---
type CustomerService interface {
	CreateCustomer(req CreateCustomerRequest) (*CustomerView, error)
	GetCustomerByID(customerID string) (*CustomerView, error)
	GetCustomers(filters models.CustomerFilters) []CustomerView
	UpdateCustomer(customerID string, req UpdateCustomerRequest) (*CustomerView, error)
	DeleteCustomer(customerID string) error
	RecordOrder(customerID string, req RecordOrderRequest) (*CustomerView, error)
}

// --- customerService Implementation ---
type customerService struct {
	customerRepo repositories.CustomerRepository
	validator    *validation.Validator
	insights     rules.InsightThresholds
	clock        Clock
}

// NewCustomerService creates a new instance of CustomerService.
func NewCustomerService(repo repositories.CustomerRepository, v *validation.Validator, insights rules.InsightThresholds, clock Clock) CustomerService {
	return &customerService{customerRepo: repo, validator: v, insights: insights, clock: clock}
}

func (s *customerService) view(c models.Customer) CustomerView {
	return CustomerView{Customer: c, AverageOrder: rules.AverageOrder(c), Insights: s.insights.Insights(c)}
}

func (s *customerService) mapError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrCustomerNotFound
	case errors.Is(err, repositories.ErrDuplicateKey):
		return fmt.Errorf("%w: %v", ErrPhoneNumberExists, err)
	}
	return err
}

func (s *customerService) CreateCustomer(req CreateCustomerRequest) (*CustomerView, error) {
	today := models.NewDate(s.clock.Now())
	customer := models.Customer{
		Name:          strings.TrimSpace(req.Name),
		Phone:         strings.TrimSpace(req.Phone),
		Email:         utils.NewNullString(strings.TrimSpace(utils.Deref(req.Email))),
		Address:       utils.NewNullString(strings.TrimSpace(utils.Deref(req.Address))),
		TotalSpent:    decimal.Zero,
		LastOrder:     today,
		JoinDate:      today,
		Type:          req.Type,
		FavoriteItems: req.FavoriteItems,
	}
	if customer.Type == "" {
		customer.Type = models.CustomerTypeNew
	}
	if customer.FavoriteItems == nil {
		customer.FavoriteItems = []string{}
	}
	if err := s.validator.Customer(customer); err != nil {
		return nil, err
	}

	created, err := s.customerRepo.Create(customer)
	if err != nil {
		return nil, s.mapError(err)
	}
	utils.LogInfo("Customer created", map[string]interface{}{"customer_id": created.ID})
	v := s.view(created)
	return &v, nil
}

func (s *customerService) GetCustomerByID(customerID string) (*CustomerView, error) {
	c, err := s.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, s.mapError(err)
	}
	v := s.view(c)
	return &v, nil
}

func (s *customerService) GetCustomers(f models.CustomerFilters) []CustomerView {
	list := filters.Customers(s.customerRepo.List(), f)
	views := make([]CustomerView, len(list))
	for i, c := range list {
		views[i] = s.view(c)
	}
	return views
}

func (s *customerService) UpdateCustomer(customerID string, req UpdateCustomerRequest) (*CustomerView, error) {
	updated, err := s.customerRepo.Modify(customerID, func(c models.Customer) (models.Customer, error) {
		if req.Name != nil {
			c.Name = strings.TrimSpace(*req.Name)
		}
		if req.Phone != nil {
			c.Phone = strings.TrimSpace(*req.Phone)
		}
		if req.Email != nil {
			c.Email = utils.NewNullString(strings.TrimSpace(*req.Email))
		}
		if req.Address != nil {
			c.Address = utils.NewNullString(strings.TrimSpace(*req.Address))
		}
		if req.Type != nil {
			c.Type = *req.Type
		}
		if req.FavoriteItems != nil {
			c.FavoriteItems = req.FavoriteItems
		}
		return c, s.validator.Customer(c)
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	v := s.view(updated)
	return &v, nil
}

func (s *customerService) DeleteCustomer(customerID string) error {
	if err := s.customerRepo.Delete(customerID); err != nil {
		return s.mapError(err)
	}
	return nil
}

// RecordOrder bumps the order count and spend. The customer type is left as is.
func (s *customerService) RecordOrder(customerID string, req RecordOrderRequest) (*CustomerView, error) {
	if req.Amount.IsNegative() {
		return nil, validation.Errors{{Field: "amount", Reason: "must be zero or more"}}
	}
	date := models.NewDate(s.clock.Now())
	if req.Date != nil {
		date = *req.Date
	}
	updated, err := s.customerRepo.Modify(customerID, func(c models.Customer) (models.Customer, error) {
		c.TotalOrders++
		c.TotalSpent = c.TotalSpent.Add(req.Amount)
		if date.After(c.LastOrder.Time) {
			c.LastOrder = date
		}
		return c, nil
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	v := s.view(updated)
	return &v, nil
}
