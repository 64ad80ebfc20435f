package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/services"
)

// PurchaseHandler holds the purchase service.
type PurchaseHandler struct {
	purchaseService services.PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(ps services.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: ps}
}

// CreatePurchase handles creation of a supplier purchase order
func (h *PurchaseHandler) CreatePurchase(c *gin.Context) {
	var req services.CreatePurchaseRequest
	if !bindJSON(c, "CreatePurchase", &req) {
		return
	}
	purchase, err := h.purchaseService.CreatePurchase(req)
	if err != nil {
		respondServiceError(c, "CreatePurchase", err, "Failed to create purchase.")
		return
	}
	c.JSON(http.StatusCreated, purchase)
}

func (h *PurchaseHandler) GetPurchases(c *gin.Context) {
	var filters models.PurchaseFilters
	if !bindQuery(c, &filters) {
		return
	}
	c.JSON(http.StatusOK, h.purchaseService.GetPurchases(filters))
}

func (h *PurchaseHandler) GetPurchaseByID(c *gin.Context) {
	purchase, err := h.purchaseService.GetPurchaseByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, "GetPurchaseByID", err, "Failed to fetch purchase.")
		return
	}
	c.JSON(http.StatusOK, purchase)
}

func (h *PurchaseHandler) UpdatePurchase(c *gin.Context) {
	var req services.UpdatePurchaseRequest
	if !bindJSON(c, "UpdatePurchase", &req) {
		return
	}
	purchase, err := h.purchaseService.UpdatePurchase(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, "UpdatePurchase", err, "Failed to update purchase.")
		return
	}
	c.JSON(http.StatusOK, purchase)
}

// UpdatePurchaseStatus moves a purchase through ordered, received or cancelled
func (h *PurchaseHandler) UpdatePurchaseStatus(c *gin.Context) {
	var req services.UpdatePurchaseStatusRequest
	if !bindJSON(c, "UpdatePurchaseStatus", &req) {
		return
	}
	purchase, err := h.purchaseService.UpdatePurchaseStatus(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, "UpdatePurchaseStatus", err, "Failed to update purchase status.")
		return
	}
	c.JSON(http.StatusOK, purchase)
}

func (h *PurchaseHandler) DeletePurchase(c *gin.Context) {
	if err := h.purchaseService.DeletePurchase(c.Param("id")); err != nil {
		respondServiceError(c, "DeletePurchase", err, "Failed to delete purchase.")
		return
	}
	c.Status(http.StatusNoContent)
}
