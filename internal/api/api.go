package api

import (
	"github.com/gin-gonic/gin"

	"github.com/pageza/recipify/backend/internal/middleware"
	"github.com/pageza/recipify/backend/internal/service"
)

// Dependencies are the services the HTTP handlers are built from
type Dependencies struct {
	Generator service.IRecipeGenerator
	Profiles  service.IProfileService
	Verifier  middleware.TokenVerifier
	// Checks are run by the health endpoint, keyed by component name
	Checks map[string]HealthCheckFunc
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	router.GET("/", Root)
	router.GET("/health", NewHealthHandler(deps.Checks).Handle)

	auth := middleware.AuthMiddleware(deps.Verifier)
	apiGroup := router.Group("/api")

	NewRecipeHandler(deps.Generator).RegisterRoutes(apiGroup.Group("/recipes", auth))
	NewProfileHandler(deps.Profiles).RegisterRoutes(apiGroup.Group("/users", auth))
}
