package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/services"
)

// TemplateShiftHandler holds the template shift service.
type TemplateShiftHandler struct {
	templateShiftService services.TemplateShiftService
}

// NewTemplateShiftHandler creates a new TemplateShiftHandler.
func NewTemplateShiftHandler(ts services.TemplateShiftService) *TemplateShiftHandler {
	return &TemplateShiftHandler{templateShiftService: ts}
}

// GetTemplateShifts lists template slots. Supports template_id.
func (h *TemplateShiftHandler) GetTemplateShifts(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	slots, err := h.templateShiftService.ListTemplateShifts(c.Request.Context(), actor, filter)
	if err != nil {
		respondServiceError(c, err, "GetTemplateShifts: Error from templateShiftService.ListTemplateShifts", "Failed to fetch template shifts.")
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (h *TemplateShiftHandler) GetTemplateShiftByID(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	slot, err := h.templateShiftService.GetTemplateShift(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "GetTemplateShiftByID: Error from templateShiftService.GetTemplateShift", "Failed to fetch template shift.")
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *TemplateShiftHandler) CreateTemplateShift(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.CreateTemplateShiftRequest
	if !bindJSON(c, &req, "CreateTemplateShift") {
		return
	}
	slot, err := h.templateShiftService.CreateTemplateShift(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "CreateTemplateShift: Error from templateShiftService.CreateTemplateShift", "Failed to create template shift.")
		return
	}
	c.JSON(http.StatusCreated, slot)
}

func (h *TemplateShiftHandler) UpdateTemplateShift(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req services.UpdateTemplateShiftRequest
	if !bindJSON(c, &req, "UpdateTemplateShift") {
		return
	}
	slot, err := h.templateShiftService.UpdateTemplateShift(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateTemplateShift: Error from templateShiftService.UpdateTemplateShift", "Failed to update template shift.")
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (h *TemplateShiftHandler) DeleteTemplateShift(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.templateShiftService.DeleteTemplateShift(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "DeleteTemplateShift: Error from templateShiftService.DeleteTemplateShift", "Failed to delete template shift.")
		return
	}
	c.Status(http.StatusNoContent)
}
