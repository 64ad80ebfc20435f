package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/services"
)

// CustomerHandler holds the customer service.
type CustomerHandler struct {
	customerService services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(cs services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: cs}
}

// CreateCustomer handles registration of a new customer
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var req services.CreateCustomerRequest
	if !bindJSON(c, "CreateCustomer", &req) {
		return
	}
	customer, err := h.customerService.CreateCustomer(req)
	if err != nil {
		respondServiceError(c, "CreateCustomer", err, "Failed to create customer.")
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// GetCustomers handles fetching customers with optional search and type filters
func (h *CustomerHandler) GetCustomers(c *gin.Context) {
	var filters models.CustomerFilters
	if !bindQuery(c, &filters) {
		return
	}
	c.JSON(http.StatusOK, h.customerService.GetCustomers(filters))
}

func (h *CustomerHandler) GetCustomerByID(c *gin.Context) {
	customer, err := h.customerService.GetCustomerByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, "GetCustomerByID", err, "Failed to fetch customer.")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	var req services.UpdateCustomerRequest
	if !bindJSON(c, "UpdateCustomer", &req) {
		return
	}
	customer, err := h.customerService.UpdateCustomer(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, "UpdateCustomer", err, "Failed to update customer.")
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) DeleteCustomer(c *gin.Context) {
	if err := h.customerService.DeleteCustomer(c.Param("id")); err != nil {
		respondServiceError(c, "DeleteCustomer", err, "Failed to delete customer.")
		return
	}
	c.Status(http.StatusNoContent)
}

// RecordCustomerOrder adds a completed order to the customer's totals
func (h *CustomerHandler) RecordCustomerOrder(c *gin.Context) {
	var req services.RecordOrderRequest
	if !bindJSON(c, "RecordCustomerOrder", &req) {
		return
	}
	customer, err := h.customerService.RecordOrder(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, "RecordCustomerOrder", err, "Failed to record customer order.")
		return
	}
	c.JSON(http.StatusOK, customer)
}
