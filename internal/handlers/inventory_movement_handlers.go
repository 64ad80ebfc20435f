package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/services"
	"delizzia_backoffice/pkg/utils"
)

// AdjustStockResponse pairs the adjusted item with the logged movement.
type AdjustStockResponse struct {
	Item     *services.InventoryItemView `json:"item"`
	Movement *models.InventoryMovement  `json:"movement"`
}

// AdjustStock applies a signed stock delta to an item
func (h *InventoryHandler) AdjustStock(c *gin.Context) {
	var req services.AdjustStockRequest
	if !bindJSON(c, "AdjustStock", &req) {
		return
	}
	item, movement, err := h.inventoryService.AdjustStock(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, "AdjustStock", err, "Failed to adjust stock.")
		return
	}
	c.JSON(http.StatusOK, AdjustStockResponse{Item: item, Movement: movement})
}

// GetItemMovements lists the movements logged for one item
func (h *InventoryHandler) GetItemMovements(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.inventoryService.GetItemByID(id); err != nil {
		respondServiceError(c, "GetItemMovements", err, "Failed to fetch inventory movements.")
		return
	}
	c.JSON(http.StatusOK, h.inventoryService.GetMovements(&id))
}

// GetMovements lists every logged movement, or one item's with ?item_id=.
// ?limit=N keeps only the N most recent.
func (h *InventoryHandler) GetMovements(c *gin.Context) {
	limit, err := utils.QueryInt(c.Query("limit"), 0)
	if err != nil || limit < 0 {
		utils.RespondValidationFailed(c, "limit must be a non-negative integer")
		return
	}
	var itemID *string
	if id := c.Query("item_id"); id != "" {
		itemID = &id
	}
	movements := h.inventoryService.GetMovements(itemID)
	if limit > 0 && len(movements) > limit {
		movements = movements[len(movements)-limit:]
	}
	c.JSON(http.StatusOK, movements)
}

// GetAlerts lists current stock alerts. With ?recent=true it lists the
// alerts raised by adjustments since startup instead.
func (h *InventoryHandler) GetAlerts(c *gin.Context) {
	if c.Query("recent") == "true" {
		c.JSON(http.StatusOK, h.alertService.GetRecentAlerts())
		return
	}
	c.JSON(http.StatusOK, h.alertService.GetActiveAlerts())
}
