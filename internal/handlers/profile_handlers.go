package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/services"
)

// ProfileHandler serves the user profiles resource.
type ProfileHandler struct {
	profileService services.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(ps services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: ps}
}

// GetProfiles lists the caller's own profile and, for employees, their region colleagues.
func (h *ProfileHandler) GetProfiles(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	users, err := h.profileService.ListProfiles(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "GetProfiles: Error from profileService.ListProfiles", "Failed to fetch profiles.")
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *ProfileHandler) GetProfileByID(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	user, err := h.profileService.GetProfile(c.Request.Context(), actor, id)
	if err != nil {
		respondServiceError(c, err, "GetProfileByID: Error from profileService.GetProfile", "Failed to fetch profile.")
		return
	}
	c.JSON(http.StatusOK, user)
}

// CreateProfile is admin only.
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.CreateProfileRequest
	if !bindJSON(c, &req, "CreateProfile") {
		return
	}
	user, err := h.profileService.CreateProfile(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "CreateProfile: Error from profileService.CreateProfile", "Failed to create profile.")
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req services.UpdateProfileRequest
	if !bindJSON(c, &req, "UpdateProfile") {
		return
	}
	user, err := h.profileService.UpdateProfile(c.Request.Context(), actor, id, req)
	if err != nil {
		respondServiceError(c, err, "UpdateProfile: Error from profileService.UpdateProfile", "Failed to update profile.")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *ProfileHandler) DeleteProfile(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.profileService.DeleteProfile(c.Request.Context(), actor, id); err != nil {
		respondServiceError(c, err, "DeleteProfile: Error from profileService.DeleteProfile", "Failed to delete profile.")
		return
	}
	c.Status(http.StatusNoContent)
}
