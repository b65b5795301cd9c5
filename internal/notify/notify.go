// Package notify delivers an edited summary to a recipient through an
// injected Sender.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"meeting-notes/internal/apperr"
	"meeting-notes/internal/metrics"
	"meeting-notes/internal/validation"
)

const (
	MsgFieldsRequired = "Email and summary are required"
	MsgSendFailed     = "Failed to send email"
	MsgSent           = "Email sent successfully"
)

// Request is the body of POST /notify.
type Request struct {
	Email   string `json:"email" validate:"required"`
	Summary string `json:"summary" validate:"required"`
}

// Response is the success body of POST /notify.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Ack confirms a delivery hand-off.
type Ack struct {
	MessageID string
	Provider  string
}

// Sender hands a body to an external delivery channel.
type Sender interface {
	Send(ctx context.Context, recipient, body string) (Ack, error)
}

// Service validates notify requests and maps sender outcomes onto the fixed
// success/failure contract.
type Service struct {
	sender   Sender
	validate *validator.Validate
	metrics  *metrics.Recorder
	log      *slog.Logger
}

func NewService(sender Sender, rec *metrics.Recorder, log *slog.Logger) *Service {
	return &Service{
		sender:   sender,
		validate: validation.New(),
		metrics:  rec,
		log:      log,
	}
}

// Notify sends req.Summary to req.Email. Missing fields yield a
// KindValidation error without touching the sender; any sender failure is
// reported as KindDelivery.
func (s *Service) Notify(ctx context.Context, req Request) (Response, error) {
	if err := s.validate.Struct(req); err != nil {
		return Response{}, apperr.Validation(MsgFieldsRequired)
	}

	start := time.Now()
	ack, err := s.sender.Send(ctx, req.Email, req.Summary)
	s.metrics.ObserveProvider(metrics.OpNotify, time.Since(start))
	if err != nil {
		return Response{}, apperr.Delivery(MsgSendFailed, err)
	}

	s.log.Info("summary delivered", "provider", ack.Provider, "message_id", ack.MessageID)
	return Response{Success: true, Message: MsgSent}, nil
}
