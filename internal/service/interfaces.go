package service

import (
	"context"

	"github.com/pageza/recipify/backend/internal/models"
	"github.com/pageza/recipify/backend/internal/types"
)

// IRecipeGenerator defines the interface for recipe generation
type IRecipeGenerator interface {
	Generate(ctx context.Context, req types.GenerationRequest) (*types.Recipe, *types.GenerationError, error)
	Stream(ctx context.Context, req types.GenerationRequest) ([]string, error)
}

// IdentityVerifier resolves a bearer token to the caller's identity
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*types.Identity, error)
}

// IProfileService defines the interface for user profile operations
type IProfileService interface {
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}

var (
	_ IRecipeGenerator = (*RecipeGenerator)(nil)
	_ IProfileService  = (*ProfileService)(nil)
	_ IdentityVerifier = (*SupabaseVerifier)(nil)
	_ IdentityVerifier = (*JWTVerifier)(nil)
)
