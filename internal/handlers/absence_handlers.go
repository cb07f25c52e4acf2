package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/services"
)

// AbsenceHandler holds the absence service.
type AbsenceHandler struct {
	absenceService services.AbsenceService
}

// NewAbsenceHandler creates a new AbsenceHandler.
func NewAbsenceHandler(as services.AbsenceService) *AbsenceHandler {
	return &AbsenceHandler{absenceService: as}
}

// GetAbsences lists absences overlapping start_date..end_date, optionally for one employee_id.
func (h *AbsenceHandler) GetAbsences(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	filter, ok := parseFilter(c)
	if !ok {
		return
	}
	absences, err := h.absenceService.ListAbsences(c.Request.Context(), actor, filter)
	if err != nil {
		respondServiceError(c, err, "GetAbsences: Error from absenceService.ListAbsences", "Failed to fetch absences.")
		return
	}
	c.JSON(http.StatusOK, absences)
}

func (h *AbsenceHandler) GetAbsenceByID(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	absence, err := h.absenceService.GetAbsence(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "GetAbsenceByID: Error from absenceService.GetAbsence", "Failed to fetch absence.")
		return
	}
	c.JSON(http.StatusOK, absence)
}

func (h *AbsenceHandler) CreateAbsence(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.CreateAbsenceRequest
	if !bindJSON(c, &req, "CreateAbsence") {
		return
	}
	absence, err := h.absenceService.CreateAbsence(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "CreateAbsence: Error from absenceService.CreateAbsence", "Failed to create absence.")
		return
	}
	c.JSON(http.StatusCreated, absence)
}

func (h *AbsenceHandler) UpdateAbsence(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req services.UpdateAbsenceRequest
	if !bindJSON(c, &req, "UpdateAbsence") {
		return
	}
	absence, err := h.absenceService.UpdateAbsence(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateAbsence: Error from absenceService.UpdateAbsence", "Failed to update absence.")
		return
	}
	c.JSON(http.StatusOK, absence)
}

func (h *AbsenceHandler) DeleteAbsence(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.absenceService.DeleteAbsence(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "DeleteAbsence: Error from absenceService.DeleteAbsence", "Failed to delete absence.")
		return
	}
	c.Status(http.StatusNoContent)
}
