package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"delizzia_backoffice/internal/models"
	"delizzia_backoffice/internal/services"
)

// StaffHandler holds the staff service, which also plans shifts.
type StaffHandler struct {
	staffService services.StaffService
}

// NewStaffHandler creates a new StaffHandler.
func NewStaffHandler(ss services.StaffService) *StaffHandler {
	return &StaffHandler{staffService: ss}
}

// CreateStaffMember handles hiring a new staff member
func (h *StaffHandler) CreateStaffMember(c *gin.Context) {
	var req services.CreateStaffMemberRequest
	if !bindJSON(c, "CreateStaffMember", &req) {
		return
	}
	member, err := h.staffService.CreateStaffMember(req)
	if err != nil {
		respondServiceError(c, "CreateStaffMember", err, "Failed to create staff member.")
		return
	}
	c.JSON(http.StatusCreated, member)
}

// GetStaffMembers handles fetching staff filtered by search, position and status
func (h *StaffHandler) GetStaffMembers(c *gin.Context) {
	var filters models.StaffFilters
	if !bindQuery(c, &filters) {
		return
	}
	c.JSON(http.StatusOK, h.staffService.GetStaffMembers(filters))
}

func (h *StaffHandler) GetStaffMemberByID(c *gin.Context) {
	member, err := h.staffService.GetStaffMemberByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, "GetStaffMemberByID", err, "Failed to fetch staff member.")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *StaffHandler) UpdateStaffMember(c *gin.Context) {
	var req services.UpdateStaffMemberRequest
	if !bindJSON(c, "UpdateStaffMember", &req) {
		return
	}
	member, err := h.staffService.UpdateStaffMember(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, "UpdateStaffMember", err, "Failed to update staff member.")
		return
	}
	c.JSON(http.StatusOK, member)
}

// UpdateStaffStatus sets a staff member on duty, on break or off
func (h *StaffHandler) UpdateStaffStatus(c *gin.Context) {
	var req services.UpdateStaffStatusRequest
	if !bindJSON(c, "UpdateStaffStatus", &req) {
		return
	}
	member, err := h.staffService.UpdateStaffStatus(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, "UpdateStaffStatus", err, "Failed to update staff status.")
		return
	}
	c.JSON(http.StatusOK, member)
}

func (h *StaffHandler) DeleteStaffMember(c *gin.Context) {
	if err := h.staffService.DeleteStaffMember(c.Param("id")); err != nil {
		respondServiceError(c, "DeleteStaffMember", err, "Failed to delete staff member.")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetPayroll returns this week's salaries for active staff
func (h *StaffHandler) GetPayroll(c *gin.Context) {
	c.JSON(http.StatusOK, h.staffService.GetPayroll())
}

// --- Shift Handlers ---

// CreateShift plans a shift. Overlapping shifts for the same person are rejected.
func (h *StaffHandler) CreateShift(c *gin.Context) {
	var req services.CreateShiftRequest
	if !bindJSON(c, "CreateShift", &req) {
		return
	}
	shift, err := h.staffService.CreateShift(req)
	if err != nil {
		respondServiceError(c, "CreateShift", err, "Failed to create shift.")
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// GetShifts lists shifts, optionally for one staff member (?staff_id=) and day (?date=)
func (h *StaffHandler) GetShifts(c *gin.Context) {
	var staffID *string
	if id := c.Query("staff_id"); id != "" {
		staffID = &id
	}
	shifts, err := h.staffService.GetShifts(staffID, c.Query("date"))
	if err != nil {
		respondServiceError(c, "GetShifts", err, "Failed to fetch shifts.")
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// GetWeekSchedule returns the week containing ?date=, today when omitted
func (h *StaffHandler) GetWeekSchedule(c *gin.Context) {
	week, err := h.staffService.GetWeekSchedule(c.Query("date"))
	if err != nil {
		respondServiceError(c, "GetWeekSchedule", err, "Failed to fetch week schedule.")
		return
	}
	c.JSON(http.StatusOK, week)
}

func (h *StaffHandler) GetShiftByID(c *gin.Context) {
	shift, err := h.staffService.GetShiftByID(c.Param("id"))
	if err != nil {
		respondServiceError(c, "GetShiftByID", err, "Failed to fetch shift.")
		return
	}
	c.JSON(http.StatusOK, shift)
}

func (h *StaffHandler) UpdateShift(c *gin.Context) {
	var req services.UpdateShiftRequest
	if !bindJSON(c, "UpdateShift", &req) {
		return
	}
	shift, err := h.staffService.UpdateShift(c.Param("id"), req)
	if err != nil {
		respondServiceError(c, "UpdateShift", err, "Failed to update shift.")
		return
	}
	c.JSON(http.StatusOK, shift)
}

func (h *StaffHandler) DeleteShift(c *gin.Context) {
	if err := h.staffService.DeleteShift(c.Param("id")); err != nil {
		respondServiceError(c, "DeleteShift", err, "Failed to delete shift.")
		return
	}
	c.Status(http.StatusNoContent)
}
