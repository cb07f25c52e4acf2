package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/services"
)

// WeeklyTemplateHandler holds the weekly template service.
type WeeklyTemplateHandler struct {
	templateService services.WeeklyTemplateService
}

// NewWeeklyTemplateHandler creates a new WeeklyTemplateHandler.
func NewWeeklyTemplateHandler(ts services.WeeklyTemplateService) *WeeklyTemplateHandler {
	return &WeeklyTemplateHandler{templateService: ts}
}

// GetWeeklyTemplates lists templates with their slots nested.
func (h *WeeklyTemplateHandler) GetWeeklyTemplates(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	templates, err := h.templateService.ListWeeklyTemplates(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "GetWeeklyTemplates: Error from templateService.ListWeeklyTemplates", "Failed to fetch weekly templates.")
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *WeeklyTemplateHandler) GetWeeklyTemplateByID(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	template, err := h.templateService.GetWeeklyTemplate(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "GetWeeklyTemplateByID: Error from templateService.GetWeeklyTemplate", "Failed to fetch weekly template.")
		return
	}
	c.JSON(http.StatusOK, template)
}

func (h *WeeklyTemplateHandler) CreateWeeklyTemplate(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.CreateWeeklyTemplateRequest
	if !bindJSON(c, &req, "CreateWeeklyTemplate") {
		return
	}
	template, err := h.templateService.CreateWeeklyTemplate(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "CreateWeeklyTemplate: Error from templateService.CreateWeeklyTemplate", "Failed to create weekly template.")
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (h *WeeklyTemplateHandler) UpdateWeeklyTemplate(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req services.UpdateWeeklyTemplateRequest
	if !bindJSON(c, &req, "UpdateWeeklyTemplate") {
		return
	}
	template, err := h.templateService.UpdateWeeklyTemplate(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateWeeklyTemplate: Error from templateService.UpdateWeeklyTemplate", "Failed to update weekly template.")
		return
	}
	c.JSON(http.StatusOK, template)
}

// DeleteWeeklyTemplate also removes the template's slots.
func (h *WeeklyTemplateHandler) DeleteWeeklyTemplate(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.templateService.DeleteWeeklyTemplate(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "DeleteWeeklyTemplate: Error from templateService.DeleteWeeklyTemplate", "Failed to delete weekly template.")
		return
	}
	c.Status(http.StatusNoContent)
}
