package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/slackconnect/cli/internal/scheduled"
)

// The w* commands drive the unauthenticated webhook surface; its destination
// is fixed on the backend, so no channel is prompted for.

func (a *App) WebhookSend(ctx context.Context) error {
	body, err := GetMultiline(a.reader, "Message", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.webhooks.Create(ctx, scheduled.Destination{}, body, nil); err != nil {
		a.fail("failed to send webhook message", err)
		return err
	}
	a.success("webhook message sent")
	return nil
}

func (a *App) WebhookSchedule(ctx context.Context) error {
	body, err := GetMultiline(a.reader, "Message", os.Stdout)
	if err != nil {
		return err
	}
	at, err := a.promptScheduleTime()
	if err != nil {
		a.fail("invalid schedule time", err)
		return err
	}

	if err := a.webhooks.Create(ctx, scheduled.Destination{}, body, &at); err != nil {
		a.fail("failed to schedule webhook message", err)
		return err
	}
	a.success(fmt.Sprintf("webhook message scheduled for %s", FormatDate(at.Unix())))
	return nil
}

func (a *App) WebhookList(ctx context.Context) error {
	items, err := a.webhooks.List(ctx)
	if err != nil {
		a.fail("failed to load webhook messages", err)
		return err
	}
	a.printScheduled(items)
	return nil
}

func (a *App) WebhookCancel(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Message id to cancel", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.webhooks.Cancel(ctx, id); err != nil {
		a.fail("failed to cancel webhook message", err)
		return err
	}
	a.success("webhook message cancelled")
	return nil
}

func (a *App) WebhookEdit(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Message id to edit", os.Stdout)
	if err != nil {
		return err
	}
	bodyInput, err := GetMultiline(a.reader, "New message (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	timeInput, err := getSimpleText(a.reader, "New time, e.g. +10m (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var body *string
	if bodyInput != "" {
		body = &bodyInput
	}
	var at *time.Time
	if timeInput != "" {
		parsed, err := ParseScheduleTime(timeInput, time.Now())
		if err != nil {
			a.fail("invalid schedule time", err)
			return err
		}
		at = &parsed
	}

	if err := a.webhooks.Update(ctx, id, body, at); err != nil {
		a.fail("failed to update webhook message", err)
		return err
	}
	a.success("webhook message updated")
	return nil
}

// TestWebhook posts a message through an arbitrary webhook URL, useful for
// verifying an integration before wiring it up.
func (a *App) TestWebhook(ctx context.Context) error {
	url, err := getSimpleText(a.reader, "Webhook URL", os.Stdout)
	if err != nil {
		return err
	}
	body, err := getSimpleText(a.reader, "Message", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.gateway.TestWebhook(ctx, url, body); err != nil {
		a.fail("webhook test failed", err)
		return err
	}
	a.success("webhook test message delivered")
	return nil
}
