package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"
)

const charsetUTF8 = "UTF-8"

// SESAPI is the subset of the SES client used for delivery.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESSender delivers summaries as plain-text email through Amazon SES.
type SESSender struct {
	api     SESAPI
	from    string
	subject string
	log     *slog.Logger
}

// NewSESClient loads the default AWS credential chain for region.
func NewSESClient(ctx context.Context, region string) (*ses.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return ses.NewFromConfig(cfg), nil
}

func NewSESSender(api SESAPI, from, subject string, log *slog.Logger) (*SESSender, error) {
	if from == "" {
		return nil, fmt.Errorf("sender address required")
	}
	return &SESSender{api: api, from: from, subject: subject, log: log}, nil
}

func (s *SESSender) Send(ctx context.Context, recipient, body string) (Ack, error) {
	out, err := s.api.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{recipient},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(s.subject), Charset: aws.String(charsetUTF8)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body), Charset: aws.String(charsetUTF8)},
			},
		},
		Source: aws.String(s.from),
	})
	if err != nil {
		code, reason := classifySESError(err)
		s.log.Error("ses send failed", "recipient", recipient, "code", code, "reason", reason, "err", err)
		return Ack{}, fmt.Errorf("ses send (%s): %w", reason, err)
	}
	return Ack{MessageID: aws.ToString(out.MessageId), Provider: "ses"}, nil
}

// classifySESError reduces an SES failure to its API code and a coarse reason
// used only for logging.
func classifySESError(err error) (code, reason string) {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return "", "transport"
	}
	code = apiErr.ErrorCode()
	switch code {
	case "MessageRejected", "MailFromDomainNotVerifiedException", "InvalidParameterValue":
		return code, "rejected"
	case "Throttling", "ThrottlingException":
		return code, "throttled"
	case "AccountSendingPausedException", "ConfigurationSetSendingPausedException":
		return code, "paused"
	default:
		return code, "provider"
	}
}
