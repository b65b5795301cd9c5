package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	mock.Mock
}

func (m *mockSES) SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ses.SendEmailOutput), args.Error(1)
}

func TestSESSenderSend(t *testing.T) {
	api := new(mockSES)
	api.On("SendEmail", mock.Anything, mock.MatchedBy(func(in *ses.SendEmailInput) bool {
		return in.Destination.ToAddresses[0] == "ops@example.com" &&
			aws.ToString(in.Source) == "notes@example.com" &&
			aws.ToString(in.Message.Subject.Data) == "Meeting summary" &&
			aws.ToString(in.Message.Body.Text.Data) == "Ship v2 Friday" &&
			in.Message.Body.Html == nil
	})).Return(&ses.SendEmailOutput{MessageId: aws.String("ses-123")}, nil).Once()

	sender, err := NewSESSender(api, "notes@example.com", "Meeting summary", discardLogger())
	require.NoError(t, err)

	ack, err := sender.Send(context.Background(), "ops@example.com", "Ship v2 Friday")
	require.NoError(t, err)
	assert.Equal(t, Ack{MessageID: "ses-123", Provider: "ses"}, ack)
	api.AssertExpectations(t)
}

func TestSESSenderFailure(t *testing.T) {
	apiErr := &smithy.GenericAPIError{Code: "Throttling", Message: "Maximum sending rate exceeded."}
	api := new(mockSES)
	api.On("SendEmail", mock.Anything, mock.Anything).Return(nil, apiErr).Once()

	sender, err := NewSESSender(api, "notes@example.com", "s", discardLogger())
	require.NoError(t, err)

	_, err = sender.Send(context.Background(), "ops@example.com", "body")
	require.Error(t, err)
	assert.ErrorIs(t, err, apiErr)
	assert.Contains(t, err.Error(), "throttled")
}

func TestNewSESSenderRequiresFrom(t *testing.T) {
	_, err := NewSESSender(new(mockSES), "", "s", discardLogger())
	assert.Error(t, err)
}

func TestClassifySESError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   string
		reason string
	}{
		{"rejected", &smithy.GenericAPIError{Code: "MessageRejected"}, "MessageRejected", "rejected"},
		{"throttled", &smithy.GenericAPIError{Code: "Throttling"}, "Throttling", "throttled"},
		{"paused", &smithy.GenericAPIError{Code: "AccountSendingPausedException"}, "AccountSendingPausedException", "paused"},
		{"other api", &smithy.GenericAPIError{Code: "InternalFailure"}, "InternalFailure", "provider"},
		{"transport", errors.New("dial tcp: timeout"), "", "transport"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, reason := classifySESError(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.reason, reason)
		})
	}
}
