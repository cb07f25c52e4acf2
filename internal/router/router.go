package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"care_scheduler_backend/internal/handlers"
	"care_scheduler_backend/internal/metrics"
	"care_scheduler_backend/internal/middleware"
	"care_scheduler_backend/internal/repositories"
	"care_scheduler_backend/internal/services"
	"care_scheduler_backend/pkg/cache"
	"care_scheduler_backend/pkg/utils"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Store              *repositories.Store
	Cache              cache.Cache // nil disables list caching
	CacheTTL           time.Duration
	Tokens             *utils.TokenManager
	CORSAllowedOrigins []string
}

// NewEngine builds a gin engine with logging, metrics, CORS, health and all API routes.
func NewEngine(deps Dependencies) (*gin.Engine, error) {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(utils.GinLogger())
	engine.Use(metrics.GinMiddleware())

	config := cors.DefaultConfig()
	config.AllowOrigins = deps.CORSAllowedOrigins
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.AllowCredentials = true
	engine.Use(cors.New(config))

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	engine.GET("/metrics", metrics.Handler())

	if err := Setup(engine, deps); err != nil {
		return nil, err
	}
	return engine, nil
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, deps Dependencies) error {
	if err := handlers.RegisterValidators(); err != nil {
		return err
	}

	store := deps.Store
	rc := services.ReferenceCache{Cache: deps.Cache, TTL: deps.CacheTTL}

	// Initialize Services
	authService := services.NewAuthService(store.Users, deps.Tokens)
	adminService := services.NewAdminService(store.Users)
	federalStateService := services.NewFederalStateService(store.FederalStates, rc)
	regionService := services.NewRegionService(store.Regions)
	profileService := services.NewProfileService(store.Users)
	clientService := services.NewClientService(store.Clients, rc)
	shiftService := services.NewShiftService(store.Shifts)
	templateService := services.NewWeeklyTemplateService(store.WeeklyTemplates, store.TemplateShifts)
	templateShiftService := services.NewTemplateShiftService(store.WeeklyTemplates, store.TemplateShifts)
	absenceService := services.NewAbsenceService(store.Absences)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	adminHandler := handlers.NewAdminHandler(adminService)
	federalStateHandler := handlers.NewFederalStateHandler(federalStateService)
	regionHandler := handlers.NewRegionHandler(regionService)
	profileHandler := handlers.NewProfileHandler(profileService)
	clientHandler := handlers.NewClientHandler(clientService)
	shiftHandler := handlers.NewShiftHandler(shiftService)
	templateHandler := handlers.NewWeeklyTemplateHandler(templateService)
	templateShiftHandler := handlers.NewTemplateShiftHandler(templateShiftService)
	absenceHandler := handlers.NewAbsenceHandler(absenceService)

	apiV1 := engine.Group("/api/v1")
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware(deps.Tokens, authService))
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)
		SetupAdminRoutes(authenticated, adminHandler)

		SetupFederalStateRoutes(authenticated, federalStateHandler)
		SetupRegionRoutes(authenticated, regionHandler)
		SetupProfileRoutes(authenticated, profileHandler)
		SetupClientRoutes(authenticated, clientHandler)
		SetupShiftRoutes(authenticated, shiftHandler)
		SetupWeeklyTemplateRoutes(authenticated, templateHandler)
		SetupTemplateShiftRoutes(authenticated, templateShiftHandler)
		SetupAbsenceRoutes(authenticated, absenceHandler)
	}
	return nil
}
