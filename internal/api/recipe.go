package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/recipify/backend/internal/service"
	"github.com/pageza/recipify/backend/internal/types"
)

// RecipeHandler serves recipe generation
type RecipeHandler struct {
	generator service.IRecipeGenerator
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(generator service.IRecipeGenerator) *RecipeHandler {
	return &RecipeHandler{generator: generator}
}

// RegisterRoutes mounts the recipe routes on an authenticated group
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/", h.CreateRecipe)
	router.POST("/stream", h.StreamRecipe)
}

func bindGenerationRequest(c *gin.Context) (types.GenerationRequest, bool) {
	var body types.RecipeRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return types.GenerationRequest{}, false
	}

	req, err := body.ToGenerationRequest()
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return types.GenerationRequest{}, false
	}
	return req, true
}

// writeUpstreamError maps generation failures onto HTTP responses
func writeUpstreamError(c *gin.Context, err error) {
	var ue *service.UpstreamError
	if errors.As(err, &ue) {
		c.JSON(ue.HTTPStatus(), gin.H{"error": ue.PublicMessage()})
		return
	}
	zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("recipe generation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
}

// CreateRecipe generates one diversity-gated recipe
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	req, ok := bindGenerationRequest(c)
	if !ok {
		return
	}

	recipe, genErr, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}
	if genErr != nil {
		c.JSON(http.StatusBadRequest, genErr)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// StreamRecipe relays model output fragments as server-sent "chunk" events
func (h *RecipeHandler) StreamRecipe(c *gin.Context) {
	req, ok := bindGenerationRequest(c)
	if !ok {
		return
	}

	chunks, err := h.generator.Stream(c.Request.Context(), req)
	if err != nil {
		writeUpstreamError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	for _, chunk := range chunks {
		if c.Request.Context().Err() != nil {
			return
		}
		c.SSEvent("chunk", chunk)
		c.Writer.Flush()
	}
}
