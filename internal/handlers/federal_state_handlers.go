package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/services"
)

// FederalStateHandler holds the federal state service.
type FederalStateHandler struct {
	federalStateService services.FederalStateService
}

// NewFederalStateHandler creates a new FederalStateHandler.
func NewFederalStateHandler(fs services.FederalStateService) *FederalStateHandler {
	return &FederalStateHandler{federalStateService: fs}
}

// GetFederalStates lists all federal states.
func (h *FederalStateHandler) GetFederalStates(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	states, err := h.federalStateService.ListFederalStates(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "GetFederalStates: Error from federalStateService.ListFederalStates", "Failed to fetch federal states.")
		return
	}
	c.JSON(http.StatusOK, states)
}

// GetFederalStateByID handles fetching a single federal state by ID.
func (h *FederalStateHandler) GetFederalStateByID(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	state, err := h.federalStateService.GetFederalState(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "GetFederalStateByID: Error from federalStateService.GetFederalState", "Failed to fetch federal state.")
		return
	}
	c.JSON(http.StatusOK, state)
}

// CreateFederalState handles the creation of a new federal state.
func (h *FederalStateHandler) CreateFederalState(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.CreateFederalStateRequest
	if !bindJSON(c, &req, "CreateFederalState") {
		return
	}
	state, err := h.federalStateService.CreateFederalState(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "CreateFederalState: Error from federalStateService.CreateFederalState", "Failed to create federal state.")
		return
	}
	c.JSON(http.StatusCreated, state)
}

// UpdateFederalState handles PUT and PATCH on a federal state.
func (h *FederalStateHandler) UpdateFederalState(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req services.UpdateFederalStateRequest
	if !bindJSON(c, &req, "UpdateFederalState") {
		return
	}
	state, err := h.federalStateService.UpdateFederalState(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateFederalState: Error from federalStateService.UpdateFederalState", "Failed to update federal state.")
		return
	}
	c.JSON(http.StatusOK, state)
}

// DeleteFederalState handles deleting a federal state and its regions.
func (h *FederalStateHandler) DeleteFederalState(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.federalStateService.DeleteFederalState(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "DeleteFederalState: Error from federalStateService.DeleteFederalState", "Failed to delete federal state.")
		return
	}
	c.Status(http.StatusNoContent)
}
