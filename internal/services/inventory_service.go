package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/filters"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/repositories"
	"delizzia_backoffice/internal/rules"
	"delizzia_backoffice/internal/validation"
	"delizzia_backoffice/pkg/utils"
)

// TopicStockChanged is published with a StockChangedEvent after every stock adjustment.
const TopicStockChanged = "inventory:stock_changed"

// StockChangedEvent carries the item as it is after the movement.
type StockChangedEvent struct {
	Item     models.InventoryItem
	Movement models.InventoryMovement
}

var (
	ErrInventoryItemNotFound = errors.New("inventory item not found")
	ErrZeroAdjustment        = errors.New("stock adjustment must not be zero")
)

// --- Inventory DTOs ---
type CreateInventoryItemRequest struct {
	Name          string                   `json:"name"`
	Category      models.InventoryCategory `json:"category"`
	CurrentStock  int                      `json:"current_stock"`
	MinStock      int                      `json:"min_stock"`
	MaxStock      int                      `json:"max_stock"`
	Unit          models.InventoryUnit     `json:"unit"`
	UnitCost      decimal.Decimal          `json:"unit_cost"`
	Supplier      string                   `json:"supplier"`
	LastRestocked *models.Date             `json:"last_restocked"` // defaults to today
	ExpiryDate    *models.Date             `json:"expiry_date"`
}

// UpdateInventoryItemRequest edits item details. Stock levels change only
// through AdjustStock so every change is logged.
type UpdateInventoryItemRequest struct {
	Name          *string                   `json:"name"`
	Category      *models.InventoryCategory `json:"category"`
	MinStock      *int                      `json:"min_stock"`
	MaxStock      *int                      `json:"max_stock"`
	Unit          *models.InventoryUnit     `json:"unit"`
	UnitCost      *decimal.Decimal          `json:"unit_cost"`
	Supplier      *string                   `json:"supplier"`
	LastRestocked *models.Date              `json:"last_restocked"`
	ExpiryDate    *models.Date              `json:"expiry_date"`
	ClearExpiry   bool                      `json:"clear_expiry"`
}

type AdjustStockRequest struct {
	Delta   int     `json:"delta"`
	Restock bool    `json:"restock"` // marks a positive delta as a supplier delivery
	Reason  *string `json:"reason"`
}

// InventoryItemView is an inventory item with every derived fact the list shows.
type InventoryItemView struct {
	models.InventoryItem
	TotalValue      decimal.Decimal   `json:"total_value"`
	Status          rules.StockStatus `json:"status"`
	StockPercentage float64           `json:"stock_percentage"`
	ExpiryState     rules.ExpiryState `json:"expiry_state"`
}

// --- InventoryService Interface ---
type InventoryService interface {
	CreateItem(req CreateInventoryItemRequest) (*InventoryItemView, error)
	GetItemByID(id string) (*InventoryItemView, error)
	GetItems(filters models.InventoryFilters) []InventoryItemView
	UpdateItem(id string, req UpdateInventoryItemRequest) (*InventoryItemView, error)
	DeleteItem(id string) error
	AdjustStock(id string, req AdjustStockRequest) (*InventoryItemView, *models.InventoryMovement, error)
	GetMovements(itemID *string) []models.InventoryMovement
	GetReorderPlan() []rules.Reorder
}

type inventoryService struct {
	inventoryRepo repositories.InventoryRepository
	validator     *validation.Validator
	bus           EventBus.Bus
	clock         Clock
	expiry        rules.ExpiryWindow
	leadTimeDays  int
	usageWindow   int
}

// NewInventoryService creates a new instance of InventoryService.
func NewInventoryService(
	repo repositories.InventoryRepository,
	v *validation.Validator,
	bus EventBus.Bus,
	clock Clock,
	expiry rules.ExpiryWindow,
	leadTimeDays, usageWindowDays int,
) InventoryService {
	return &inventoryService{
		inventoryRepo: repo,
		validator:     v,
		bus:           bus,
		clock:         clock,
		expiry:        expiry,
		leadTimeDays:  leadTimeDays,
		usageWindow:   usageWindowDays,
	}
}

// inventoryView derives the display facts for item as of today.
func inventoryView(item models.InventoryItem, expiry rules.ExpiryWindow, today time.Time) InventoryItemView {
	return InventoryItemView{
		InventoryItem:   item,
		TotalValue:      item.TotalValue(),
		Status:          rules.InventoryStatus(item),
		StockPercentage: rules.StockPercentage(item.CurrentStock, item.MaxStock),
		ExpiryState:     expiry.State(item.ExpiryDate.Ptr(), today),
	}
}

func (s *inventoryService) view(item models.InventoryItem) *InventoryItemView {
	v := inventoryView(item, s.expiry, s.clock.Now())
	return &v
}

func (s *inventoryService) CreateItem(req CreateInventoryItemRequest) (*InventoryItemView, error) {
	item := models.InventoryItem{
		Name:          req.Name,
		Category:      req.Category,
		CurrentStock:  req.CurrentStock,
		MinStock:      req.MinStock,
		MaxStock:      req.MaxStock,
		Unit:          req.Unit,
		UnitCost:      req.UnitCost,
		Supplier:      req.Supplier,
		LastRestocked: models.NewDate(s.clock.Now()),
		ExpiryDate:    req.ExpiryDate,
	}
	if req.LastRestocked != nil {
		item.LastRestocked = *req.LastRestocked
	}
	if err := s.validator.InventoryItem(item); err != nil {
		return nil, err
	}
	created, err := s.inventoryRepo.Create(item)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return s.view(created), nil
}

func (s *inventoryService) GetItemByID(id string) (*InventoryItemView, error) {
	item, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return s.view(item), nil
}

func (s *inventoryService) GetItems(f models.InventoryFilters) []InventoryItemView {
	items := filters.Inventory(s.inventoryRepo.List(), f)
	today := s.clock.Now()
	views := make([]InventoryItemView, len(items))
	for i, item := range items {
		views[i] = inventoryView(item, s.expiry, today)
	}
	return views
}

func (s *inventoryService) UpdateItem(id string, req UpdateInventoryItemRequest) (*InventoryItemView, error) {
	updated, err := s.inventoryRepo.Modify(id, func(item models.InventoryItem) (models.InventoryItem, error) {
		if req.Name != nil {
			item.Name = *req.Name
		}
		if req.Category != nil {
			item.Category = *req.Category
		}
		if req.MinStock != nil {
			item.MinStock = *req.MinStock
		}
		if req.MaxStock != nil {
			item.MaxStock = *req.MaxStock
		}
		if req.Unit != nil {
			item.Unit = *req.Unit
		}
		if req.UnitCost != nil {
			item.UnitCost = *req.UnitCost
		}
		if req.Supplier != nil {
			item.Supplier = *req.Supplier
		}
		if req.LastRestocked != nil {
			item.LastRestocked = *req.LastRestocked
		}
		if req.ClearExpiry {
			item.ExpiryDate = nil
		} else if req.ExpiryDate != nil {
			item.ExpiryDate = req.ExpiryDate
		}
		return item, s.validator.InventoryItem(item)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInventoryItemNotFound
		}
		return nil, err
	}
	return s.view(updated), nil
}

func (s *inventoryService) DeleteItem(id string) error {
	if err := s.inventoryRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrInventoryItemNotFound
		}
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

func (s *inventoryService) AdjustStock(id string, req AdjustStockRequest) (*InventoryItemView, *models.InventoryMovement, error) {
	if req.Delta == 0 {
		return nil, nil, ErrZeroAdjustment
	}
	movementType := models.MovementAdjustmentOut
	if req.Delta > 0 {
		movementType = models.MovementAdjustmentIn
		if req.Restock {
			movementType = models.MovementRestock
		}
	}
	now := s.clock.Now()
	item, movement, err := s.inventoryRepo.AdjustStock(id, req.Delta, movementType, req.Reason, now)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil, ErrInventoryItemNotFound
		}
		if errors.Is(err, repositories.ErrStockOverflow) {
			return nil, nil, validation.Errors{{Field: "delta", Reason: "would overflow current stock"}}
		}
		return nil, nil, fmt.Errorf("failed to adjust stock: %w", err)
	}
	if movementType == models.MovementRestock {
		item, err = s.inventoryRepo.Modify(id, func(i models.InventoryItem) (models.InventoryItem, error) {
			i.LastRestocked = models.NewDate(now)
			return i, nil
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to record restock date: %w", err)
		}
	}

	utils.LogDebug("Stock adjusted", map[string]interface{}{
		"item_id":     id,
		"requested":   req.Delta,
		"applied":     movement.QuantityChanged,
		"stock_after": movement.StockAfter,
	})
	if s.bus != nil {
		s.bus.Publish(TopicStockChanged, StockChangedEvent{Item: item, Movement: movement})
	}
	return s.view(item), &movement, nil
}

func (s *inventoryService) GetMovements(itemID *string) []models.InventoryMovement {
	return s.inventoryRepo.GetMovements(itemID)
}

// GetReorderPlan suggests restocks for every item at or below its reorder
// point, most urgent first. Daily usage averages outgoing movements over
// the usage window.
func (s *inventoryService) GetReorderPlan() []rules.Reorder {
	since := s.clock.Now().AddDate(0, 0, -s.usageWindow)
	usage := map[string]int{}
	for _, m := range s.inventoryRepo.GetMovements(nil) {
		if m.QuantityChanged < 0 && !m.MovementDate.Before(since) {
			usage[m.InventoryItemID] += -m.QuantityChanged
		}
	}

	window := decimal.NewFromInt(int64(s.usageWindow))
	plan := []rules.Reorder{}
	for _, item := range s.inventoryRepo.List() {
		daily := decimal.NewFromInt(int64(usage[item.ID])).Div(window)
		r := rules.ReorderSuggestion(item, daily, s.leadTimeDays)
		if r.ShouldReorder() {
			plan = append(plan, r)
		}
	}
	sort.SliceStable(plan, func(i, j int) bool {
		if plan[i].Urgency != plan[j].Urgency {
			return plan[i].Urgency == rules.UrgencyHigh
		}
		return plan[i].EstimatedCost.GreaterThan(plan[j].EstimatedCost)
	})
	return plan
}
