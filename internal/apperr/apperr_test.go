package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected int
	}{
		{"validation", Validation("Transcript is required"), http.StatusBadRequest},
		{"upstream", Upstream("Failed to generate summary", errors.New("quota")), http.StatusInternalServerError},
		{"delivery", Delivery("Failed to send email", errors.New("throttled")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Status())
		})
	}
}

func TestUnwrapKeepsProviderDetail(t *testing.T) {
	root := errors.New("connection reset")
	err := fmt.Errorf("summarize: %w", Upstream("Failed to generate summary", root))

	assert.ErrorIs(t, err, root)
	assert.Equal(t, KindUpstream, KindOf(err))

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "Failed to generate summary", appErr.Message)
	assert.Contains(t, appErr.Error(), "connection reset")
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
}
