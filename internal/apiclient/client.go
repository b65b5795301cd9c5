// Package apiclient calls the meeting-notes HTTP API.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"meeting-notes/internal/httputil"
	"meeting-notes/internal/notify"
	"meeting-notes/internal/summarize"
)

const defaultTimeout = 2 * time.Minute

// StatusError is returned for any non-2xx answer.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server returned %d", e.StatusCode)
	}
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to /summarize and /notify.
type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for baseURL. A nil httpClient gets a default with a timeout.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) Summarize(ctx context.Context, transcript, prompt string) (string, error) {
	var resp summarize.Response
	if err := c.post(ctx, "/summarize", summarize.Request{Transcript: transcript, Prompt: prompt}, &resp); err != nil {
		return "", err
	}
	return resp.Summary, nil
}

func (c *Client) Notify(ctx context.Context, email, summary string) error {
	var resp notify.Response
	if err := c.post(ctx, "/notify", notify.Request{Email: email, Summary: summary}, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return &StatusError{StatusCode: http.StatusOK, Message: resp.Message}
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb httputil.ErrorBody
		_ = json.Unmarshal(data, &eb)
		return &StatusError{StatusCode: resp.StatusCode, Message: eb.Error}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
