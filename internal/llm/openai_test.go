package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model     string `json:"model"`
	MaxTokens int64  `json:"max_tokens"`
	Messages  []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

const completionBody = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "llama-3.1-70b-versatile",
  "choices": [
    {"index": 0, "finish_reason": "stop", "message": {"role": "assistant", "content": "Ship v2 on Friday."}}
  ]
}`

func TestOpenAIClientGenerate(t *testing.T) {
	var got capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient("test-key", srv.URL, "llama-3.1-70b-versatile")
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), []Turn{
		{Role: RoleSystem, Content: "be brief"},
		{Role: RoleUser, Content: "Alice: ship it"},
	}, 1000)
	require.NoError(t, err)

	assert.Equal(t, "Ship v2 on Friday.", text)
	assert.Equal(t, "llama-3.1-70b-versatile", got.Model)
	assert.Equal(t, int64(1000), got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "be brief", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "Alice: ship it", got.Messages[1].Content)
}

func TestOpenAIClientDoesNotRetry(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient("test-key", srv.URL, "m")
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), []Turn{{Role: RoleUser, Content: "x"}}, 10)
	require.Error(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestOpenAIClientEmptyCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	}))
	defer srv.Close()

	client, err := NewOpenAIClient("test-key", srv.URL, "m")
	require.NoError(t, err)

	_, err = client.Generate(context.Background(), []Turn{{Role: RoleUser, Content: "x"}}, 10)
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}

func TestNewOpenAIClientValidation(t *testing.T) {
	_, err := NewOpenAIClient("", "", "m")
	assert.Error(t, err)

	_, err = NewOpenAIClient("key", "", "")
	assert.Error(t, err)
}

func TestBuildMessagesRejectsUnknownRole(t *testing.T) {
	_, err := buildMessages([]Turn{{Role: "assistant", Content: "hi"}})
	assert.Error(t, err)
}
