package api

import (
	"context"
	"net/http"

	"github.com/slackconnect/cli/internal/models"
)

// The webhook surface targets a fixed default destination and is
// intentionally unauthenticated; no bearer token is required (one is still
// attached when present, which the backend ignores).

type webhookSendRequest struct {
	Message string `json:"message"`
}

type webhookScheduleRequest struct {
	Message      string `json:"message"`
	ScheduledFor int64  `json:"scheduled_for"`
}

type testWebhookRequest struct {
	WebhookURL string `json:"webhook_url"`
	Message    string `json:"message"`
}

// SendWebhookMessage posts a message to the default webhook destination.
func (c *Client) SendWebhookMessage(ctx context.Context, message string) error {
	return c.send(ctx, http.MethodPost, "/messages/webhook/send", webhookSendRequest{Message: message}, nil)
}

// ScheduleWebhookMessage queues a message for the default webhook
// destination and returns the server-created record.
func (c *Client) ScheduleWebhookMessage(ctx context.Context, message string, scheduledFor int64) (*models.ScheduledMessage, error) {
	req := webhookScheduleRequest{Message: message, ScheduledFor: scheduledFor}
	var out models.ScheduledMessage
	if err := c.send(ctx, http.MethodPost, "/messages/webhook/schedule", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetWebhookScheduledMessages lists scheduled messages on the webhook surface.
func (c *Client) GetWebhookScheduledMessages(ctx context.Context) ([]models.ScheduledMessage, error) {
	var out []models.ScheduledMessage
	if err := c.send(ctx, http.MethodGet, "/messages/webhook/scheduled", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelWebhookScheduledMessage cancels a pending webhook message by id.
func (c *Client) CancelWebhookScheduledMessage(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/messages/webhook/scheduled/"+id, nil, nil)
}

// UpdateWebhookScheduledMessage edits a pending webhook message.
func (c *Client) UpdateWebhookScheduledMessage(ctx context.Context, id string, message *string, scheduledFor *int64) (*models.ScheduledMessage, error) {
	req := updateMessageRequest{Message: message, ScheduledFor: scheduledFor}
	var out models.ScheduledMessage
	if err := c.send(ctx, http.MethodPut, "/messages/webhook/scheduled/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TestWebhook asks the backend to post a message to an arbitrary webhook URL.
func (c *Client) TestWebhook(ctx context.Context, webhookURL, message string) error {
	req := testWebhookRequest{WebhookURL: webhookURL, Message: message}
	return c.send(ctx, http.MethodPost, "/test/webhook", req, nil)
}
