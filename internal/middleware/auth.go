package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/recipify/backend/internal/service"
	"github.com/pageza/recipify/backend/internal/types"
)

// IdentityKey is the gin context key holding the caller's *types.Identity
const IdentityKey = "identity"

// TokenVerifier resolves a bearer token to an identity
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*types.Identity, error)
}

// AuthMiddleware creates a middleware that requires a valid bearer token
func AuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Not authenticated"})
			return
		}
		scheme, token, _ := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid authentication credentials"})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			log := zerolog.Ctx(c.Request.Context())
			if errors.Is(err, service.ErrAuthUnavailable) {
				log.Error().Err(err).Msg("token verification unavailable")
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Authentication service unavailable"})
				return
			}
			log.Debug().Err(err).Msg("rejected bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// GetIdentity returns the identity stored by AuthMiddleware
func GetIdentity(c *gin.Context) (*types.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*types.Identity)
	return identity, ok && identity != nil
}
