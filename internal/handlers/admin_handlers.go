package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/services"
)

// AdminHandler exposes account provisioning.
type AdminHandler struct {
	adminService services.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(as services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: as}
}

// CreateUser provisions an account and returns its temporary password once.
func (h *AdminHandler) CreateUser(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.CreateUserRequest
	if !bindJSON(c, &req, "CreateUser") {
		return
	}
	resp, err := h.adminService.CreateUser(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "CreateUser: Error from adminService.CreateUser", "Failed to create user.")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdatePassword issues a new temporary password for an existing user.
func (h *AdminHandler) UpdatePassword(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req services.ResetPasswordRequest
	if !bindJSON(c, &req, "UpdatePassword") {
		return
	}
	resp, err := h.adminService.ResetPassword(c.Request.Context(), actor, req)
	if err != nil {
		respondServiceError(c, err, "UpdatePassword: Error from adminService.ResetPassword", "Failed to reset password.")
		return
	}
	c.JSON(http.StatusOK, resp)
}
