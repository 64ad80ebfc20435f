package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/services"
)

// InventoryHandler holds the inventory and alert services.
type InventoryHandler struct {
	inventoryService services.InventoryService
	alertService     services.AlertService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(is services.InventoryService, as services.AlertService) *InventoryHandler {
	return &InventoryHandler{inventoryService: is, alertService: as}
}

// CreateInventoryItem handles creation of a new stock item
func (h *InventoryHandler) CreateInventoryItem(c *gin.Context) {
	var req services.CreateInventoryItemRequest
	if !bindJSON(c, "CreateInventoryItem", &req) {
		return
	}
	item, err := h.inventoryService.CreateItem(req)
	if err != nil {
		respondServiceError(c, "CreateInventoryItem", err, "Failed to create inventory item.")
		return
	}
	c.JSON(http.StatusCreated, item)
}

// GetInventoryItems handles fetching stock items with their derived status
func (h *InventoryHandler) GetInventoryItems(c *gin.Context) {
	var filters models.InventoryFilters
	if !bindQuery(c, &filters) {
		return
	}
	c.JSON(http.StatusOK, h.inventoryService.GetItems(filters))
}

func (h *InventoryHandler) GetInventoryItemByID(c *gin.Context) {
	item, err := h.inventoryService.GetItemByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, "GetInventoryItemByID", err, "Failed to fetch inventory item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

// UpdateInventoryItem edits item details. Stock levels go through AdjustStock.
func (h *InventoryHandler) UpdateInventoryItem(c *gin.Context) {
	var req services.UpdateInventoryItemRequest
	if !bindJSON(c, "UpdateInventoryItem", &req) {
		return
	}
	item, err := h.inventoryService.UpdateItem(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, "UpdateInventoryItem", err, "Failed to update inventory item.")
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *InventoryHandler) DeleteInventoryItem(c *gin.Context) {
	if err := h.inventoryService.DeleteItem(c.Param("id")); err != nil {
		respondServiceError(c, "DeleteInventoryItem", err, "Failed to delete inventory item.")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetReorderPlan lists restock suggestions, most urgent first
func (h *InventoryHandler) GetReorderPlan(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventoryService.GetReorderPlan())
}
