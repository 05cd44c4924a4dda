// internal/common/slack/webhook_test.go
package slack

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adobe-license-monitor/internal/common/logger"
)

func TestNotify_PostsWebhookPayload(t *testing.T) {
	var body []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		body, _ = io.ReadAll(r.Body)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	client := NewWebhookClient(server.URL, logger.NewTestLogger(t))

	err := client.Notify(context.Background(), ":adobe: *Adobe License Report* :adobe:\nAcrobat Pro: 2 of 316 Licenses")
	require.NoError(t, err)

	var payload struct {
		Text string `json:"text"`
	}
	require.NoError(t, json.Unmarshal(body, &payload))
	assert.Contains(t, payload.Text, "Adobe License Report")
	assert.Contains(t, payload.Text, "Acrobat Pro: 2 of 316 Licenses")
}

func TestNotify_FailureReturnsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewWebhookClient(server.URL, logger.NewTestLogger(t))

	err := client.Notify(context.Background(), "summary")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to post slack webhook")
}

func TestChannel(t *testing.T) {
	client := NewWebhookClient("http://example.com", logger.NewNoOpLogger())
	assert.Equal(t, "slack", client.Channel())
}
