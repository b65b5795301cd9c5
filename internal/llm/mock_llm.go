package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockClient is a mock implementation of Client using testify/mock.
type MockClient struct {
	mock.Mock
}

func (m *MockClient) Generate(ctx context.Context, turns []Turn, maxTokens int64) (string, error) {
	args := m.Called(ctx, turns, maxTokens)
	return args.String(0), args.Error(1)
}
