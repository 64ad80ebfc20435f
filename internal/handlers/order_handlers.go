package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/services"
)

// OrderHandler holds the order service.
type OrderHandler struct {
	orderService services.OrderService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(os services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

// CreateOrder handles the creation of a new order with its items
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req services.CreateOrderRequest
	if !bindJSON(c, "CreateOrder", &req) {
		return
	}
	order, err := h.orderService.CreateOrder(req)
	if err != nil {
		respondServiceError(c, "CreateOrder", err, "Failed to create order.")
		return
	}
	c.JSON(http.StatusCreated, order)
}

// GetOrders handles fetching all orders with filters
func (h *OrderHandler) GetOrders(c *gin.Context) {
	var filters models.OrderFilters
	if !bindQuery(c, &filters) {
		return
	}
	orders, err := h.orderService.GetOrders(filters)
	if err != nil {
		respondServiceError(c, "GetOrders", err, "Failed to fetch orders.")
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrderByID handles fetching a single order by ID
func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	order, err := h.orderService.GetOrderByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, "GetOrderByID", err, "Failed to fetch order.")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrder replaces order details. A non-null items list replaces all items.
func (h *OrderHandler) UpdateOrder(c *gin.Context) {
	var req services.UpdateOrderRequest
	if !bindJSON(c, "UpdateOrder", &req) {
		return
	}
	order, err := h.orderService.UpdateOrder(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, "UpdateOrder", err, "Failed to update order.")
		return
	}
	c.JSON(http.StatusOK, order)
}

// UpdateOrderStatus handles updating only the status of an order
func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	var req services.UpdateOrderStatusRequest
	if !bindJSON(c, "UpdateOrderStatus", &req) {
		return
	}
	order, err := h.orderService.UpdateOrderStatus(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, "UpdateOrderStatus", err, "Failed to update order status.")
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	if err := h.orderService.DeleteOrder(c.Param("id")); err != nil {
		respondServiceError(c, "DeleteOrder", err, "Failed to delete order.")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetOrderProfitability breaks an order down into costs, commission and net profit
func (h *OrderHandler) GetOrderProfitability(c *gin.Context) {
	p, err := h.orderService.GetProfitability(c.Param("id"))
	if err != nil {
		respondServiceError(c, "GetOrderProfitability", err, "Failed to compute order profitability.")
		return
	}
	c.JSON(http.StatusOK, p)
}
