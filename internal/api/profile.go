package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/recipify/backend/internal/middleware"
	"github.com/pageza/recipify/backend/internal/service"
)

// ProfileHandler serves the caller's own profile
type ProfileHandler struct {
	profiles service.IProfileService
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profiles service.IProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// RegisterRoutes mounts the profile routes on an authenticated group
func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/me", h.GetMe)
}

// GetMe returns the profile row of the authenticated user
func (h *ProfileHandler) GetMe(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), identity.ID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, profile)
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User profile not found"})
	case errors.Is(err, service.ErrProfileStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Database client not available"})
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("user_id", identity.ID).Msg("profile lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
	}
}
