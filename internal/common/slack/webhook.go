// internal/common/slack/webhook.go
package slack

import (
	"context"
	"fmt"
	"strings"

	slackapi "github.com/slack-go/slack"

	"adobe-license-monitor/internal/common/logger"
)

// WebhookClient posts messages to a Slack incoming webhook.
type WebhookClient struct {
	webhookURL string
	logger     logger.Logger
}

func NewWebhookClient(webhookURL string, log logger.Logger) *WebhookClient {
	return &WebhookClient{
		webhookURL: strings.TrimSpace(webhookURL),
		logger:     log,
	}
}

// Channel identifies this notifier in logs and metrics.
func (c *WebhookClient) Channel() string {
	return "slack"
}

// Notify posts the message as webhook JSON payload.
func (c *WebhookClient) Notify(ctx context.Context, message string) error {
	err := slackapi.PostWebhookContext(ctx, c.webhookURL, &slackapi.WebhookMessage{
		Text: message,
	})
	if err != nil {
		return fmt.Errorf("failed to post slack webhook: %w", err)
	}

	c.logger.Info("slack alert sent", nil)
	return nil
}
