package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipify/backend/internal/types"
)

// MockIdentityVerifier is a mock implementation of the IdentityVerifier interface
type MockIdentityVerifier struct {
	mock.Mock
}

func (m *MockIdentityVerifier) Verify(ctx context.Context, token string) (*types.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Identity), args.Error(1)
}
