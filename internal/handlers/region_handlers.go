package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/services"
)

// RegionHandler holds the region service.
type RegionHandler struct {
	regionService services.RegionService
}

// NewRegionHandler creates a new RegionHandler.
func NewRegionHandler(rs services.RegionService) *RegionHandler {
	return &RegionHandler{regionService: rs}
}

// GetRegions lists the regions visible to the caller.
func (h *RegionHandler) GetRegions(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	regions, err := h.regionService.ListRegions(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "GetRegions: Error from regionService.ListRegions", "Failed to fetch regions.")
		return
	}
	c.JSON(http.StatusOK, regions)
}

func (h *RegionHandler) GetRegionByID(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	region, err := h.regionService.GetRegion(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "GetRegionByID: Error from regionService.GetRegion", "Failed to fetch region.")
		return
	}
	c.JSON(http.StatusOK, region)
}

func (h *RegionHandler) CreateRegion(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.CreateRegionRequest
	if !bindJSON(c, &req, "CreateRegion") {
		return
	}
	region, err := h.regionService.CreateRegion(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "CreateRegion: Error from regionService.CreateRegion", "Failed to create region.")
		return
	}
	c.JSON(http.StatusCreated, region)
}

func (h *RegionHandler) UpdateRegion(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req services.UpdateRegionRequest
	if !bindJSON(c, &req, "UpdateRegion") {
		return
	}
	region, err := h.regionService.UpdateRegion(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateRegion: Error from regionService.UpdateRegion", "Failed to update region.")
		return
	}
	c.JSON(http.StatusOK, region)
}

func (h *RegionHandler) DeleteRegion(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.regionService.DeleteRegion(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "DeleteRegion: Error from regionService.DeleteRegion", "Failed to delete region.")
		return
	}
	c.Status(http.StatusNoContent)
}
