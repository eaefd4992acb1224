package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipify/backend/internal/types"
)

// MockRecipeGenerator is a mock implementation of the RecipeGenerator service
type MockRecipeGenerator struct {
	mock.Mock
}

// Generate mocks the Generate method
func (m *MockRecipeGenerator) Generate(ctx context.Context, req types.GenerationRequest) (*types.Recipe, *types.GenerationError, error) {
	args := m.Called(ctx, req)
	var recipe *types.Recipe
	if v := args.Get(0); v != nil {
		recipe = v.(*types.Recipe)
	}
	var genErr *types.GenerationError
	if v := args.Get(1); v != nil {
		genErr = v.(*types.GenerationError)
	}
	return recipe, genErr, args.Error(2)
}

// Stream mocks the Stream method
func (m *MockRecipeGenerator) Stream(ctx context.Context, req types.GenerationRequest) ([]string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
