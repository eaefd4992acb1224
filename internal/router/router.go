package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/pageza/recipify/backend/internal/api"
	"github.com/pageza/recipify/backend/internal/middleware"
)

// SetupRouter builds the gin engine with the middleware chain and all routes
func SetupRouter(corsOrigins []string, logger zerolog.Logger, deps api.Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(corsOrigins))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.RegisterRoutes(router, deps)

	return router
}
