package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const previewRunes = 100

// LogSender stands in for a real delivery provider: it logs the recipient and
// a preview of the body, waits to mimic provider latency, and succeeds.
type LogSender struct {
	log   *slog.Logger
	delay time.Duration
}

func NewLogSender(log *slog.Logger, delay time.Duration) *LogSender {
	return &LogSender{log: log, delay: delay}
}

func (s *LogSender) Send(ctx context.Context, recipient, body string) (Ack, error) {
	s.log.Info("sending summary", "recipient", recipient, "preview", Preview(body, previewRunes))

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Ack{}, fmt.Errorf("send interrupted: %w", ctx.Err())
		case <-timer.C:
		}
	}

	return Ack{MessageID: uuid.NewString(), Provider: "log"}, nil
}

// Preview returns at most n runes of s.
func Preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
