package router

import (
	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/handlers"
	"care_scheduler_backend/internal/middleware"
	"care_scheduler_backend/internal/models"
)

// SetupPublicAuthRoutes sets up login and token refresh.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/login", authHandler.LoginUser)
	group.POST("/refresh", authHandler.RefreshToken)
}

func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetCurrentUser)
}

// SetupAdminRoutes sets up account provisioning, restricted to admins.
func SetupAdminRoutes(authenticatedGroup *gin.RouterGroup, adminHandler *handlers.AdminHandler) {
	adminRoutes := authenticatedGroup.Group("/admin")
	adminRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		adminRoutes.POST("/create-user", adminHandler.CreateUser)
		adminRoutes.POST("/update-password", adminHandler.UpdatePassword)
	}
}

// SetupFederalStateRoutes sets up the federal state routes.
func SetupFederalStateRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.FederalStateHandler) {
	routes := authenticatedGroup.Group("/federal-states")
	{
		routes.GET("", h.GetFederalStates)
		routes.POST("", h.CreateFederalState)
		routes.GET("/:id", h.GetFederalStateByID)
		routes.PUT("/:id", h.UpdateFederalState)
		routes.PATCH("/:id", h.UpdateFederalState)
		routes.DELETE("/:id", h.DeleteFederalState)
	}
}

// SetupRegionRoutes sets up the region routes.
func SetupRegionRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.RegionHandler) {
	routes := authenticatedGroup.Group("/regions")
	{
		routes.GET("", h.GetRegions)
		routes.POST("", h.CreateRegion)
		routes.GET("/:id", h.GetRegionByID)
		routes.PUT("/:id", h.UpdateRegion)
		routes.PATCH("/:id", h.UpdateRegion)
		routes.DELETE("/:id", h.DeleteRegion)
	}
}

// SetupProfileRoutes sets up the user profile routes.
func SetupProfileRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.ProfileHandler) {
	routes := authenticatedGroup.Group("/profiles")
	{
		routes.GET("", h.GetProfiles)
		routes.POST("", h.CreateProfile)
		routes.GET("/:id", h.GetProfileByID)
		routes.PUT("/:id", h.UpdateProfile)
		routes.PATCH("/:id", h.UpdateProfile)
		routes.DELETE("/:id", h.DeleteProfile)
	}
}

// SetupClientRoutes sets up the client routes.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.ClientHandler) {
	routes := authenticatedGroup.Group("/clients")
	{
		routes.GET("", h.GetClients)
		routes.POST("", h.CreateClient)
		routes.GET("/:id", h.GetClientByID)
		routes.PUT("/:id", h.UpdateClient)
		routes.PATCH("/:id", h.UpdateClient)
		routes.DELETE("/:id", h.DeleteClient)
	}
}

// SetupShiftRoutes sets up the shift routes.
func SetupShiftRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.ShiftHandler) {
	routes := authenticatedGroup.Group("/shifts")
	{
		routes.GET("", h.GetShifts)
		routes.POST("", h.CreateShift)
		routes.POST("/bulk_create", h.BulkCreateShifts)
		routes.GET("/:id", h.GetShiftByID)
		routes.PUT("/:id", h.UpdateShift)
		routes.PATCH("/:id", h.UpdateShift)
		routes.DELETE("/:id", h.DeleteShift)
	}
}

// SetupWeeklyTemplateRoutes sets up the weekly template routes.
func SetupWeeklyTemplateRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.WeeklyTemplateHandler) {
	routes := authenticatedGroup.Group("/weekly-templates")
	{
		routes.GET("", h.GetWeeklyTemplates)
		routes.POST("", h.CreateWeeklyTemplate)
		routes.GET("/:id", h.GetWeeklyTemplateByID)
		routes.PUT("/:id", h.UpdateWeeklyTemplate)
		routes.PATCH("/:id", h.UpdateWeeklyTemplate)
		routes.DELETE("/:id", h.DeleteWeeklyTemplate)
	}
}

// SetupTemplateShiftRoutes sets up the template shift routes.
func SetupTemplateShiftRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.TemplateShiftHandler) {
	routes := authenticatedGroup.Group("/template-shifts")
	{
		routes.GET("", h.GetTemplateShifts)
		routes.POST("", h.CreateTemplateShift)
		routes.GET("/:id", h.GetTemplateShiftByID)
		routes.PUT("/:id", h.UpdateTemplateShift)
		routes.PATCH("/:id", h.UpdateTemplateShift)
		routes.DELETE("/:id", h.DeleteTemplateShift)
	}
}

// SetupAbsenceRoutes sets up the absence routes.
func SetupAbsenceRoutes(authenticatedGroup *gin.RouterGroup, h *handlers.AbsenceHandler) {
	routes := authenticatedGroup.Group("/absences")
	{
		routes.GET("", h.GetAbsences)
		routes.POST("", h.CreateAbsence)
		routes.GET("/:id", h.GetAbsenceByID)
		routes.PUT("/:id", h.UpdateAbsence)
		routes.PATCH("/:id", h.UpdateAbsence)
		routes.DELETE("/:id", h.DeleteAbsence)
	}
}
