package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meeting-notes/internal/notify"
	"meeting-notes/internal/summarize"
)

func TestSummarize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/summarize", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req summarize.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Alice: ship", req.Transcript)
		assert.Equal(t, "bullets", req.Prompt)
		_ = json.NewEncoder(w).Encode(summarize.Response{Summary: "- ship"})
	}))
	defer srv.Close()

	summary, err := New(srv.URL+"/", nil).Summarize(context.Background(), "Alice: ship", "bullets")
	require.NoError(t, err)
	assert.Equal(t, "- ship", summary)
}

func TestSummarizeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Transcript is required"}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, nil).Summarize(context.Background(), "", "")

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, "Transcript is required", statusErr.Message)
}

func TestNotify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/notify", r.URL.Path)
		var req notify.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, notify.Request{Email: "ops@example.com", Summary: "Ship v2 Friday"}, req)
		_ = json.NewEncoder(w).Encode(notify.Response{Success: true, Message: "Email sent successfully"})
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL, nil).Notify(context.Background(), "ops@example.com", "Ship v2 Friday"))
}

func TestNotifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to send email"}`))
	}))
	defer srv.Close()

	err := New(srv.URL, nil).Notify(context.Background(), "ops@example.com", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to send email")
}
