package api

import (
	"context"
	"net/http"

	"github.com/slackconnect/cli/internal/models"
)

type sendMessageRequest struct {
	ChannelID string `json:"channel_id"`
	Message   string `json:"message"`
}

type scheduleMessageRequest struct {
	ChannelID    string `json:"channel_id"`
	ChannelName  string `json:"channel_name"`
	Message      string `json:"message"`
	ScheduledFor int64  `json:"scheduled_for"`
}

type updateMessageRequest struct {
	Message      *string `json:"message,omitempty"`
	ScheduledFor *int64  `json:"scheduled_for,omitempty"`
}

// GetChannels lists the channels available as destinations.
func (c *Client) GetChannels(ctx context.Context) ([]models.Channel, error) {
	var out []models.Channel
	if err := c.send(ctx, http.MethodGet, "/messages/channels", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SendMessage delivers a message to a channel immediately.
func (c *Client) SendMessage(ctx context.Context, channelID, message string) error {
	req := sendMessageRequest{ChannelID: channelID, Message: message}
	return c.send(ctx, http.MethodPost, "/messages/send", req, nil)
}

// ScheduleMessage queues a message for future delivery and returns the
// server-created record.
func (c *Client) ScheduleMessage(ctx context.Context, channelID, channelName, message string, scheduledFor int64) (*models.ScheduledMessage, error) {
	req := scheduleMessageRequest{
		ChannelID:    channelID,
		ChannelName:  channelName,
		Message:      message,
		ScheduledFor: scheduledFor,
	}
	var out models.ScheduledMessage
	if err := c.send(ctx, http.MethodPost, "/messages/schedule", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetScheduledMessages returns the server's current scheduled-message list.
func (c *Client) GetScheduledMessages(ctx context.Context) ([]models.ScheduledMessage, error) {
	var out []models.ScheduledMessage
	if err := c.send(ctx, http.MethodGet, "/messages/scheduled", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelScheduledMessage cancels a pending scheduled message by id.
func (c *Client) CancelScheduledMessage(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, "/messages/scheduled/"+id, nil, nil)
}

// UpdateScheduledMessage edits a pending scheduled message. Nil fields are
// left unchanged on the server. Returns the updated record.
func (c *Client) UpdateScheduledMessage(ctx context.Context, id string, message *string, scheduledFor *int64) (*models.ScheduledMessage, error) {
	req := updateMessageRequest{Message: message, ScheduledFor: scheduledFor}
	var out models.ScheduledMessage
	if err := c.send(ctx, http.MethodPut, "/messages/scheduled/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
