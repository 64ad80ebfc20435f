package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/filters"
	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/repositories"
	"delizzia_backoffice/internal/rules"
	"delizzia_backoffice/internal/validation"
	"delizzia_backoffice/pkg/utils"
)

// --- Custom Service Errors for Menu ---
var (
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// --- Menu DTOs ---
type CreateMenuItemRequest struct {
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Cost        decimal.Decimal `json:"cost"`
	Description *string         `json:"description"`
	Available   *bool           `json:"available"` // defaults to true
	Popularity  int             `json:"popularity"`
}

type UpdateMenuItemRequest struct {
	Name        *string          `json:"name"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	Cost        *decimal.Decimal `json:"cost"`
	Description *string          `json:"description"`
	Available   *bool            `json:"available"`
	Popularity  *int             `json:"popularity"`
}

// MenuItemView is a menu item with its derived margin.
type MenuItemView struct {
	models.MenuItem
	Margin     decimal.Decimal  `json:"margin"`
	MarginTier rules.MarginTier `json:"margin_tier"`
}

// CategorySummary aggregates menu items of one category.
type CategorySummary struct {
	Category      string          `json:"category"`
	Items         int             `json:"items"`
	AverageMargin decimal.Decimal `json:"average_margin"`
}

type MenuSummary struct {
	TotalItems     int               `json:"total_items"`
	AvailableItems int               `json:"available_items"`
	AverageMargin  decimal.Decimal   `json:"average_margin"`
	Categories     []CategorySummary `json:"categories"`
}

// Pricing compares an item's price with the one that would hit a target margin.
type Pricing struct {
	ItemID         string          `json:"item_id"`
	Price          decimal.Decimal `json:"price"`
	Cost           decimal.Decimal `json:"cost"`
	Margin         decimal.Decimal `json:"margin"`
	TargetMargin   decimal.Decimal `json:"target_margin"`
	OptimalPrice   decimal.Decimal `json:"optimal_price"`
	FixedCosts     decimal.Decimal `json:"fixed_costs"`
	BreakEvenUnits int             `json:"break_even_units"`
}

// --- MenuService Interface ---
type MenuService interface {
	CreateMenuItem(req CreateMenuItemRequest) (*MenuItemView, error)
	GetMenuItemByID(id string) (*MenuItemView, error)
	GetMenuItems(filters models.MenuFilters) []MenuItemView
	UpdateMenuItem(id string, req UpdateMenuItemRequest) (*MenuItemView, error)
	DeleteMenuItem(id string) error
	ToggleAvailability(id string) (*MenuItemView, error)
	GetSummary() MenuSummary
	// GetPricing takes targetMargin as a percentage.
	GetPricing(id string, targetMargin, fixedCosts decimal.Decimal) (*Pricing, error)
}

type menuService struct {
	menuRepo  repositories.MenuRepository
	validator *validation.Validator
	cutoffs   rules.MarginCutoffs
}

// NewMenuService creates a new instance of MenuService.
func NewMenuService(repo repositories.MenuRepository, v *validation.Validator, cutoffs rules.MarginCutoffs) MenuService {
	return &menuService{menuRepo: repo, validator: v, cutoffs: cutoffs}
}

func (s *menuService) view(m models.MenuItem) MenuItemView {
	v := MenuItemView{MenuItem: m, MarginTier: rules.MarginLow}
	if margin, err := rules.ComputeMargin(m.Price, m.Cost); err == nil {
		v.Margin = margin
		v.MarginTier = s.cutoffs.Tier(margin)
	}
	return v
}

func (s *menuService) CreateMenuItem(req CreateMenuItemRequest) (*MenuItemView, error) {
	item := models.MenuItem{
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price,
		Cost:        req.Cost,
		Description: req.Description,
		Available:   true,
		Popularity:  req.Popularity,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	if err := s.validator.MenuItem(item); err != nil {
		return nil, err
	}
	created, err := s.menuRepo.Create(item)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	v := s.view(created)
	utils.LogInfo("Menu item created", map[string]interface{}{
		"menu_item_id": created.ID,
		"price":        utils.FormatMoney(created.Price),
		"margin":       utils.FormatPercentDecimal(v.Margin),
	})
	return &v, nil
}

func (s *menuService) GetMenuItemByID(id string) (*MenuItemView, error) {
	item, err := s.menuRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	v := s.view(item)
	return &v, nil
}

func (s *menuService) GetMenuItems(f models.MenuFilters) []MenuItemView {
	items := filters.Menu(s.menuRepo.List(), f)
	views := make([]MenuItemView, len(items))
	for i, item := range items {
		views[i] = s.view(item)
	}
	return views
}

func (s *menuService) UpdateMenuItem(id string, req UpdateMenuItemRequest) (*MenuItemView, error) {
	updated, err := s.menuRepo.Modify(id, func(item models.MenuItem) (models.MenuItem, error) {
		if req.Name != nil {
			item.Name = *req.Name
		}
		if req.Category != nil {
			item.Category = *req.Category
		}
		if req.Price != nil {
			item.Price = *req.Price
		}
		if req.Cost != nil {
			item.Cost = *req.Cost
		}
		if req.Description != nil {
			item.Description = req.Description
		}
		if req.Available != nil {
			item.Available = *req.Available
		}
		if req.Popularity != nil {
			item.Popularity = *req.Popularity
		}
		return item, s.validator.MenuItem(item)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	v := s.view(updated)
	return &v, nil
}

func (s *menuService) DeleteMenuItem(id string) error {
	if err := s.menuRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrMenuItemNotFound
		}
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return nil
}

func (s *menuService) ToggleAvailability(id string) (*MenuItemView, error) {
	updated, err := s.menuRepo.Modify(id, func(item models.MenuItem) (models.MenuItem, error) {
		item.Available = !item.Available
		return item, nil
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrMenuItemNotFound
		}
		return nil, err
	}
	v := s.view(updated)
	return &v, nil
}

func (s *menuService) GetSummary() MenuSummary {
	items := s.menuRepo.List()
	summary := MenuSummary{TotalItems: len(items), Categories: []CategorySummary{}}

	var prices, costs []decimal.Decimal
	byCategory := map[string][2][]decimal.Decimal{}
	for _, item := range items {
		if item.Available {
			summary.AvailableItems++
		}
		prices = append(prices, item.Price)
		costs = append(costs, item.Cost)
		pc := byCategory[item.Category]
		pc[0] = append(pc[0], item.Price)
		pc[1] = append(pc[1], item.Cost)
		byCategory[item.Category] = pc
	}
	summary.AverageMargin = rules.AverageMargin(prices, costs)

	for category, pc := range byCategory {
		summary.Categories = append(summary.Categories, CategorySummary{
			Category:      category,
			Items:         len(pc[0]),
			AverageMargin: rules.AverageMargin(pc[0], pc[1]),
		})
	}
	sort.Slice(summary.Categories, func(i, j int) bool {
		return summary.Categories[i].Category < summary.Categories[j].Category
	})
	return summary
}

func (s *menuService) GetPricing(id string, targetMargin, fixedCosts decimal.Decimal) (*Pricing, error) {
	item, err := s.GetMenuItemByID(id)
	if err != nil {
		return nil, err
	}
	optimal, err := rules.OptimalPrice(item.Cost, targetMargin.Div(decimal.NewFromInt(100)))
	if err != nil {
		return nil, err
	}
	p := &Pricing{
		ItemID:       item.ID,
		Price:        item.Price,
		Cost:         item.Cost,
		Margin:       item.Margin,
		TargetMargin: targetMargin,
		OptimalPrice: optimal,
		FixedCosts:   fixedCosts,
	}
	if fixedCosts.IsPositive() {
		units, err := rules.BreakEvenQuantity(fixedCosts, item.Price, item.Cost)
		if err != nil {
			return nil, err
		}
		p.BreakEvenUnits = units
	}
	return p, nil
}
