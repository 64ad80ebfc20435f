package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/rules"
	"delizzia_backoffice/internal/services"
)

// MenuHandler holds the menu service.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

// CreateMenuItem handles creation of a new menu item
func (h *MenuHandler) CreateMenuItem(c *gin.Context) {
	var req services.CreateMenuItemRequest
	if !bindJSON(c, "CreateMenuItem", &req) {
		return
	}
	item, err := h.menuService.CreateMenuItem(req)
	if err != nil {
		respondServiceError(c, "CreateMenuItem", err, "Failed to create menu item.")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetMenuItems handles fetching menu items, optionally filtered by search and category
func (h *MenuHandler) GetMenuItems(c *gin.Context) {
	var filters models.MenuFilters
	if !bindQuery(c, &filters) {
		return
	}
	c.JSON(http.StatusOK, h.menuService.GetMenuItems(filters))
}

func (h *MenuHandler) GetMenuItemByID(c *gin.Context) {
	item, err := h.menuService.GetMenuItemByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, "GetMenuItemByID", err, "Failed to fetch menu item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) UpdateMenuItem(c *gin.Context) {
	var req services.UpdateMenuItemRequest
	if !bindJSON(c, "UpdateMenuItem", &req) {
		return
	}
	item, err := h.menuService.UpdateMenuItem(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, "UpdateMenuItem", err, "Failed to update menu item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) DeleteMenuItem(c *gin.Context) {
	if err := h.menuService.DeleteMenuItem(c.Param("id")); err != nil {
		respondServiceError(c, "DeleteMenuItem", err, "Failed to delete menu item.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleAvailability flips whether a menu item can be ordered
func (h *MenuHandler) ToggleAvailability(c *gin.Context) {
	item, err := h.menuService.ToggleAvailability(c.Param("id"))
	if err != nil {
		respondServiceError(c, "ToggleAvailability", err, "Failed to toggle menu item availability.")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *MenuHandler) GetMenuSummary(c *gin.Context) {
	c.JSON(http.StatusOK, h.menuService.GetSummary())
}

// GetMenuPricing suggests a price for ?target_margin= (percent, default 70)
// and, with ?fixed_costs=, the units needed to break even at the current price.
func (h *MenuHandler) GetMenuPricing(c *gin.Context) {
	target, err := queryDecimal(c, "target_margin", decimal.NewFromInt(70))
	if err != nil {
		respondServiceError(c, "GetMenuPricing", err, "Invalid target margin.")
		return
	}
	fixedCosts, err := queryDecimal(c, "fixed_costs", decimal.Zero)
	if err != nil {
		respondServiceError(c, "GetMenuPricing", err, "Invalid fixed costs.")
		return
	}
	pricing, err := h.menuService.GetPricing(c.Param("id"), target, fixedCosts)
	if err != nil {
		respondServiceError(c, "GetMenuPricing", err, "Failed to compute pricing.")
		return
	}
	c.JSON(http.StatusOK, pricing)
}

func queryDecimal(c *gin.Context, key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	raw := c.Query(key)
	if raw == "" {
		return fallback, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s must be a number", rules.ErrInvalidInput, key)
	}
	return d, nil
}
