package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLLMClient is a mock implementation of the LLMClient interface
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) GenerateContent(ctx context.Context, prompt string, temperature float64) (string, error) {
	args := m.Called(ctx, prompt, temperature)
	return args.String(0), args.Error(1)
}

func (m *MockLLMClient) StreamContent(ctx context.Context, prompt string, temperature float64) ([]string, error) {
	args := m.Called(ctx, prompt, temperature)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
