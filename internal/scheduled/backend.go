package scheduled

import (
	"context"

	"github.com/slackconnect/cli/internal/api"
	"github.com/slackconnect/cli/internal/models"
)

// Backend is the server surface a Store reconciles against. Two
// implementations exist: the authenticated channel surface and the
// unauthenticated default-webhook surface.
type Backend interface {
	Send(ctx context.Context, channelID, message string) error
	Schedule(ctx context.Context, channelID, channelName, message string, scheduledFor int64) (*models.ScheduledMessage, error)
	List(ctx context.Context) ([]models.ScheduledMessage, error)
	Cancel(ctx context.Context, id string) error
	Update(ctx context.Context, id string, message *string, scheduledFor *int64) (*models.ScheduledMessage, error)
}

// ChannelBackend adapts the gateway's channel endpoints to Backend.
type ChannelBackend struct {
	Client *api.Client
}

func (b ChannelBackend) Send(ctx context.Context, channelID, message string) error {
	return b.Client.SendMessage(ctx, channelID, message)
}

func (b ChannelBackend) Schedule(ctx context.Context, channelID, channelName, message string, scheduledFor int64) (*models.ScheduledMessage, error) {
	return b.Client.ScheduleMessage(ctx, channelID, channelName, message, scheduledFor)
}

func (b ChannelBackend) List(ctx context.Context) ([]models.ScheduledMessage, error) {
	return b.Client.GetScheduledMessages(ctx)
}

func (b ChannelBackend) Cancel(ctx context.Context, id string) error {
	return b.Client.CancelScheduledMessage(ctx, id)
}

func (b ChannelBackend) Update(ctx context.Context, id string, message *string, scheduledFor *int64) (*models.ScheduledMessage, error) {
	return b.Client.UpdateScheduledMessage(ctx, id, message, scheduledFor)
}

// WebhookBackend adapts the gateway's webhook endpoints to Backend. The
// destination is fixed server-side, so the channel arguments are ignored.
type WebhookBackend struct {
	Client *api.Client
}

func (b WebhookBackend) Send(ctx context.Context, _, message string) error {
	return b.Client.SendWebhookMessage(ctx, message)
}

func (b WebhookBackend) Schedule(ctx context.Context, _, _, message string, scheduledFor int64) (*models.ScheduledMessage, error) {
	return b.Client.ScheduleWebhookMessage(ctx, message, scheduledFor)
}

func (b WebhookBackend) List(ctx context.Context) ([]models.ScheduledMessage, error) {
	return b.Client.GetWebhookScheduledMessages(ctx)
}

func (b WebhookBackend) Cancel(ctx context.Context, id string) error {
	return b.Client.CancelWebhookScheduledMessage(ctx, id)
}

func (b WebhookBackend) Update(ctx context.Context, id string, message *string, scheduledFor *int64) (*models.ScheduledMessage, error) {
	return b.Client.UpdateWebhookScheduledMessage(ctx, id, message, scheduledFor)
}
