package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/services"
)

// ShiftHandler holds the shift service.
type ShiftHandler struct {
	shiftService services.ShiftService
}

// NewShiftHandler creates a new ShiftHandler.
func NewShiftHandler(ss services.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: ss}
}

// GetShifts handles listing shifts. Supports start_date, end_date and employee_id.
func (h *ShiftHandler) GetShifts(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	shifts, err := h.shiftService.ListShifts(c.Request.Context(), actor, filter)
	if err != nil {
		respondServiceError(c, err, "GetShifts: Error from shiftService.ListShifts", "Failed to fetch shifts.")
		return
	}
	c.JSON(http.StatusOK, shifts)
}

// GetShiftByID handles fetching a single shift by ID.
func (h *ShiftHandler) GetShiftByID(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	shift, err := h.shiftService.GetShift(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "GetShiftByID: Error from shiftService.GetShift for ID "+id.String(), "Failed to fetch shift.")
		return
	}
	c.JSON(http.StatusOK, shift)
}

// CreateShift handles the creation of a new shift.
func (h *ShiftHandler) CreateShift(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.CreateShiftRequest
	if !bindJSON(c, &req, "CreateShift") {
		return
	}
	shift, err := h.shiftService.CreateShift(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "CreateShift: Error from shiftService.CreateShift", "Failed to create shift.")
		return
	}
	c.JSON(http.StatusCreated, shift)
}

// BulkCreateShifts stores several shifts at once or none of them.
func (h *ShiftHandler) BulkCreateShifts(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.BulkCreateShiftsRequest
	if !bindJSON(c, &req, "BulkCreateShifts") {
		return
	}
	shifts, err := h.shiftService.BulkCreateShifts(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "BulkCreateShifts: Error from shiftService.BulkCreateShifts", "Failed to create shifts.")
		return
	}
	c.JSON(http.StatusCreated, shifts)
}

// UpdateShift handles PUT and PATCH. Employees use it to claim open shifts.
func (h *ShiftHandler) UpdateShift(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req services.UpdateShiftRequest
	if !bindJSON(c, &req, "UpdateShift") {
		return
	}
	shift, err := h.shiftService.UpdateShift(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateShift: Error from shiftService.UpdateShift for ID "+id.String(), "Failed to update shift.")
		return
	}
	c.JSON(http.StatusOK, shift)
}

// DeleteShift handles deleting a shift.
func (h *ShiftHandler) DeleteShift(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.shiftService.DeleteShift(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "DeleteShift: Error from shiftService.DeleteShift for ID "+id.String(), "Failed to delete shift.")
		return
	}
	c.Status(http.StatusNoContent)
}
