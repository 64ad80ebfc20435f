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

var ErrPurchaseNotFound = errors.New("purchase not found")

// --- Purchase DTOs ---
type CreatePurchaseRequest struct {
	Supplier        string                `json:"supplier"`
	SupplierContact string                `json:"supplier_contact"`
	Items           []models.PurchaseItem `json:"items"`
	Status          models.PurchaseStatus `json:"status"` // defaults to pending
	DeliveryDate    models.Date           `json:"delivery_date"`
	Notes           *string               `json:"notes"`
}

type UpdatePurchaseRequest struct {
	Supplier        *string               `json:"supplier"`
	SupplierContact *string               `json:"supplier_contact"`
	Items           []models.PurchaseItem `json:"items"`
	DeliveryDate    *models.Date          `json:"delivery_date"`
	Notes           *string               `json:"notes"`
}

type UpdatePurchaseStatusRequest struct {
	Status models.PurchaseStatus `json:"status" binding:"required"`
}

// PurchaseView is a purchase with its total computed from the current lines.
type PurchaseView struct {
	models.Purchase
	Total decimal.Decimal `json:"total"`
}

func NewPurchaseView(p models.Purchase) PurchaseView {
	return PurchaseView{Purchase: p, Total: rules.ComputeTotal(p.Items)}
}

// --- PurchaseService Interface ---
type PurchaseService interface {
	CreatePurchase(req CreatePurchaseRequest) (*PurchaseView, error)
	GetPurchases(filters models.PurchaseFilters) []PurchaseView
	GetPurchaseByID(purchaseID string) (*PurchaseView, error)
	UpdatePurchase(purchaseID string, req UpdatePurchaseRequest) (*PurchaseView, error)
	UpdatePurchaseStatus(purchaseID string, req UpdatePurchaseStatusRequest) (*PurchaseView, error)
	DeletePurchase(purchaseID string) error
}

type purchaseService struct {
	purchaseRepo repositories.PurchaseRepository
	validator    *validation.Validator
	policy       StatusPolicy
	clock        Clock
}

// NewPurchaseService creates a new instance of PurchaseService.
func NewPurchaseService(repo repositories.PurchaseRepository, v *validation.Validator, policy StatusPolicy, clock Clock) PurchaseService {
	return &purchaseService{purchaseRepo: repo, validator: v, policy: policy, clock: clock}
}

func (s *purchaseService) mapError(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrPurchaseNotFound
	}
	return err
}

func (s *purchaseService) CreatePurchase(req CreatePurchaseRequest) (*PurchaseView, error) {
	now := s.clock.Now()
	purchase := models.Purchase{
		Supplier:        strings.TrimSpace(req.Supplier),
		SupplierContact: req.SupplierContact,
		Items:           req.Items,
		Status:          req.Status,
		DeliveryDate:    req.DeliveryDate,
		CreatedAt:       now,
		Notes:           req.Notes,
	}
	if purchase.Status == "" {
		purchase.Status = models.PurchaseStatusPending
	}

	var created models.Purchase
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		purchase.OrderNumber = s.nextPurchaseNumber(now)
		if verr := s.validator.Purchase(purchase); verr != nil {
			return nil, verr
		}
		created, err = s.purchaseRepo.Create(purchase)
		if !errors.Is(err, repositories.ErrDuplicateKey) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create purchase: %w", err)
	}

	v := NewPurchaseView(created)
	utils.LogInfo("Purchase created", map[string]interface{}{
		"purchase_id":  created.ID,
		"order_number": created.OrderNumber,
		"supplier":     created.Supplier,
		"total":        utils.FormatMoney(v.Total),
	})
	return &v, nil
}

func (s *purchaseService) nextPurchaseNumber(now time.Time) string {
	taken := map[string]bool{}
	for _, p := range s.purchaseRepo.List() {
		taken[p.OrderNumber] = true
	}
	return nextNumber("PUR", now, func(n string) bool { return taken[n] })
}

func (s *purchaseService) GetPurchases(f models.PurchaseFilters) []PurchaseView {
	list := filters.Purchases(s.purchaseRepo.List(), f)
	views := make([]PurchaseView, len(list))
	for i, p := range list {
		views[i] = NewPurchaseView(p)
	}
	return views
}

func (s *purchaseService) GetPurchaseByID(purchaseID string) (*PurchaseView, error) {
	p, err := s.purchaseRepo.GetByID(purchaseID)
	if err != nil {
		return nil, s.mapError(err)
	}
	v := NewPurchaseView(p)
	return &v, nil
}

func (s *purchaseService) UpdatePurchase(purchaseID string, req UpdatePurchaseRequest) (*PurchaseView, error) {
	updated, err := s.purchaseRepo.Modify(purchaseID, func(p models.Purchase) (models.Purchase, error) {
		if req.Supplier != nil {
			p.Supplier = strings.TrimSpace(*req.Supplier)
		}
		if req.SupplierContact != nil {
			p.SupplierContact = *req.SupplierContact
		}
		if req.Items != nil {
			p.Items = req.Items
		}
		if req.DeliveryDate != nil {
			p.DeliveryDate = *req.DeliveryDate
		}
		if req.Notes != nil {
			p.Notes = req.Notes
		}
		return p, s.validator.Purchase(p)
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	v := NewPurchaseView(updated)
	return &v, nil
}

// UpdatePurchaseStatus only changes the status. Receiving a purchase does
// not restock inventory; that is an explicit stock adjustment.
func (s *purchaseService) UpdatePurchaseStatus(purchaseID string, req UpdatePurchaseStatusRequest) (*PurchaseView, error) {
	updated, err := s.purchaseRepo.UpdateStatus(purchaseID, req.Status, s.policy.PurchaseGuard(req.Status))
	if err != nil {
		return nil, s.mapError(err)
	}
	utils.LogInfo("Purchase status changed", map[string]interface{}{
		"purchase_id": purchaseID,
		"status":      updated.Status,
	})
	v := NewPurchaseView(updated)
	return &v, nil
}

func (s *purchaseService) DeletePurchase(purchaseID string) error {
	if err := s.purchaseRepo.Delete(purchaseID); err != nil {
		return s.mapError(err)
	}
	return nil
}
