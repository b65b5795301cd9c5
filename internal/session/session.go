// Package session holds one user's form state and drives the summarize and
// notify calls against the API.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"meeting-notes/internal/summarize"
)

const (
	AlertGenerateFailed = "Failed to generate summary. Please try again."
	AlertSendFailed     = "Failed to send email. Please try again."
	NoticeSent          = "Summary sent successfully!"
)

var (
	// ErrBusy means the matching call is already outstanding.
	ErrBusy = errors.New("request already in progress")
	// ErrTranscriptEmpty means there is nothing to summarize.
	ErrTranscriptEmpty = errors.New("transcript is empty")
	// ErrNothingToSend means the recipient or summary is blank.
	ErrNothingToSend = errors.New("email and summary are required")
	// ErrNotPlainText means an uploaded file was not plain text.
	ErrNotPlainText = errors.New("file is not plain text")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// API is the server surface the session calls.
type API interface {
	Summarize(ctx context.Context, transcript, prompt string) (string, error)
	Notify(ctx context.Context, email, summary string) error
}

// Alert is a user-facing failure. Message is what the user sees.
type Alert struct {
	Message string
	Err     error
}

func (a *Alert) Error() string { return a.Message }

func (a *Alert) Unwrap() error { return a.Err }

// State is a snapshot of the form.
type State struct {
	Transcript string
	Prompt     string
	Summary    string
	Email      string
	Generating bool
	Sending    bool
}

// Session is scoped to a single user. Methods are safe for concurrent use;
// at most one summarize and one notify call are in flight at a time.
type Session struct {
	api API
	log *slog.Logger

	mu    sync.Mutex
	state State
}

// New starts a session with the default instruction as the prompt.
func New(api API, log *slog.Logger) *Session {
	return &Session{
		api:   api,
		log:   log,
		state: State{Prompt: summarize.DefaultInstruction},
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) SetTranscript(v string) { s.update(func(st *State) { st.Transcript = v }) }
func (s *Session) SetPrompt(v string)     { s.update(func(st *State) { st.Prompt = v }) }
func (s *Session) SetSummary(v string)    { s.update(func(st *State) { st.Summary = v }) }
func (s *Session) SetEmail(v string)      { s.update(func(st *State) { st.Email = v }) }

func (s *Session) update(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
}

// LoadTranscript replaces the transcript with r's content. Anything that does
// not sniff as plain text is rejected and leaves the transcript untouched.
// Invalid UTF-8 is replaced rather than rejected.
func (s *Session) LoadTranscript(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read transcript: %w", err)
	}
	if !isPlainText(data) {
		return ErrNotPlainText
	}
	text := strings.ToValidUTF8(string(bytes.TrimPrefix(data, utf8BOM)), "\uFFFD")
	s.SetTranscript(text)
	return nil
}

// LoadTranscriptFile is LoadTranscript for a file on disk.
func (s *Session) LoadTranscriptFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()
	return s.LoadTranscript(f)
}

func isPlainText(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}

// GenerateSummary sends the transcript and prompt for summarization and
// stores the result. A failed call returns an *Alert and keeps the previous
// summary.
func (s *Session) GenerateSummary(ctx context.Context) error {
	s.mu.Lock()
	if strings.TrimSpace(s.state.Transcript) == "" {
		s.mu.Unlock()
		return ErrTranscriptEmpty
	}
	if s.state.Generating {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state.Generating = true
	transcript, prompt := s.state.Transcript, s.state.Prompt
	s.mu.Unlock()

	summary, err := s.api.Summarize(ctx, transcript, prompt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Generating = false
	if err != nil {
		s.log.Error("error generating summary", "err", err)
		return &Alert{Message: AlertGenerateFailed, Err: err}
	}
	s.state.Summary = summary
	return nil
}

// SendSummary emails the current summary and clears the recipient on success.
func (s *Session) SendSummary(ctx context.Context) error {
	s.mu.Lock()
	if strings.TrimSpace(s.state.Email) == "" || strings.TrimSpace(s.state.Summary) == "" {
		s.mu.Unlock()
		return ErrNothingToSend
	}
	if s.state.Sending {
		s.mu.Unlock()
		return ErrBusy
	}
	s.state.Sending = true
	email, summary := s.state.Email, s.state.Summary
	s.mu.Unlock()

	err := s.api.Notify(ctx, email, summary)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Sending = false
	if err != nil {
		s.log.Error("error sending email", "err", err)
		return &Alert{Message: AlertSendFailed, Err: err}
	}
	s.state.Email = ""
	return nil
}
