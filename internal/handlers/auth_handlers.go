package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/services"
)

// AuthHandler holds the authentication service.
type AuthHandler struct {
	authService services.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

// LoginUser handles user login.
func (h *AuthHandler) LoginUser(c *gin.Context) {
	var req services.LoginRequest
	if !bindJSON(c, &req, "LoginUser") {
		return
	}
	authResp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "LoginUser: Error from authService.Login", "Failed to login.")
		return
	}
	c.JSON(http.StatusOK, authResp)
}

// RefreshToken exchanges a refresh token for a new access token.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req services.RefreshRequest
	if !bindJSON(c, &req, "RefreshToken") {
		return
	}
	resp, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "RefreshToken: Error from authService.Refresh", "Failed to refresh token.")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCurrentUser retrieves the profile of the currently authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	user, err := h.authService.Me(c.Request.Context(), actor)
	if err != nil {
		respondServiceError(c, err, "GetCurrentUser: Error from authService.Me", "Failed to fetch current user.")
		return
	}
	c.JSON(http.StatusOK, user)
}
