// Package summarize turns a meeting transcript into a model-generated summary.
package summarize

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"

	"meeting-notes/internal/apperr"
	"meeting-notes/internal/llm"
	"meeting-notes/internal/metrics"
	"meeting-notes/internal/validation"
)

// DefaultInstruction is the system instruction used when the caller supplies
// none. The client session starts from the same value.
const DefaultInstruction = "Please summarize this meeting transcript, highlighting key decisions, action items, and important discussion points."

// DefaultMaxTokens caps the generated summary length.
const DefaultMaxTokens int64 = 1000

const (
	userPrefix = "Please summarize the following meeting transcript:\n\n"

	MsgTranscriptRequired = "Transcript is required"
	MsgGenerateFailed     = "Failed to generate summary"
)

// Request is the body of POST /summarize.
type Request struct {
	Transcript string `json:"transcript" validate:"notblank"`
	Prompt     string `json:"prompt,omitempty"`
}

// Response is the success body of POST /summarize.
type Response struct {
	Summary string `json:"summary"`
}

// Service validates requests and forwards them to the model provider.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	llm       llm.Client
	maxTokens int64
	validate  *validator.Validate
	metrics   *metrics.Recorder
}

// NewService builds a Service. A non-positive maxTokens falls back to DefaultMaxTokens.
func NewService(client llm.Client, maxTokens int64, rec *metrics.Recorder) *Service {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Service{
		llm:       client,
		maxTokens: maxTokens,
		validate:  validation.New(),
		metrics:   rec,
	}
}

// Summarize returns the model output verbatim. Errors are *apperr.Error:
// KindValidation for a blank transcript (the model is not called) and
// KindUpstream for any provider failure.
func (s *Service) Summarize(ctx context.Context, req Request) (Response, error) {
	if err := s.validate.Struct(req); err != nil {
		return Response{}, apperr.Validation(MsgTranscriptRequired)
	}

	start := time.Now()
	text, err := s.llm.Generate(ctx, BuildTurns(req), s.maxTokens)
	s.metrics.ObserveProvider(metrics.OpSummarize, time.Since(start))
	if err != nil {
		return Response{}, apperr.Upstream(MsgGenerateFailed, err)
	}
	return Response{Summary: text}, nil
}

// BuildTurns constructs the system and user turns sent to the model.
func BuildTurns(req Request) []llm.Turn {
	return []llm.Turn{
		{Role: llm.RoleSystem, Content: Instruction(req.Prompt)},
		{Role: llm.RoleUser, Content: userPrefix + req.Transcript},
	}
}

// Instruction returns prompt unchanged, or DefaultInstruction when it is empty.
func Instruction(prompt string) string {
	if prompt == "" {
		return DefaultInstruction
	}
	return prompt
}
