package notify

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSender is a mock implementation of Sender using testify/mock.
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, recipient, body string) (Ack, error) {
	args := m.Called(ctx, recipient, body)
	return args.Get(0).(Ack), args.Error(1)
}
