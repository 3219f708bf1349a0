package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/slackconnect/cli/internal/models"
	"github.com/slackconnect/cli/internal/scheduled"
)

// Channels lists the destinations available in the connected workspace.
func (a *App) Channels(ctx context.Context) error {
	chans, err := a.gateway.GetChannels(ctx)
	if err != nil {
		a.fail("failed to list channels", err)
		return err
	}

	for _, ch := range chans {
		marker := " "
		if !ch.IsMember {
			marker = "-"
		}
		visibility := "public"
		if ch.IsPrivate {
			visibility = "private"
		}
		fmt.Printf("%s %-20s %-10s %s\n", marker, "#"+ch.Name, visibility, ch.ID)
	}
	return nil
}

// Send posts a message to a channel immediately.
func (a *App) Send(ctx context.Context) error {
	dest, err := a.promptDestination()
	if err != nil {
		return err
	}
	body, err := GetMultiline(a.reader, "Message", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.channels.Create(ctx, dest, body, nil); err != nil {
		a.fail("failed to send message", err)
		return err
	}
	a.success("message sent to #" + dest.Name)
	return nil
}

// Schedule queues a message for future delivery.
func (a *App) Schedule(ctx context.Context) error {
	dest, err := a.promptDestination()
	if err != nil {
		return err
	}
	body, err := GetMultiline(a.reader, "Message", os.Stdout)
	if err != nil {
		return err
	}
	at, err := a.promptScheduleTime()
	if err != nil {
		a.fail("invalid schedule time", err)
		return err
	}

	if err := a.channels.Create(ctx, dest, body, &at); err != nil {
		a.fail("failed to schedule message", err)
		return err
	}
	a.success(fmt.Sprintf("message scheduled for %s (%s)",
		FormatDate(at.Unix()), FormatRelativeTime(at.Unix(), time.Now())))
	return nil
}

// ListScheduled reconciles against the server and prints the result.
func (a *App) ListScheduled(ctx context.Context) error {
	items, err := a.channels.List(ctx)
	if err != nil {
		a.fail("failed to load scheduled messages", err)
		return err
	}
	a.printScheduled(items)
	return nil
}

// Cancel cancels a pending scheduled message.
func (a *App) Cancel(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Message id to cancel", os.Stdout)
	if err != nil {
		return err
	}

	if err := a.channels.Cancel(ctx, id); err != nil {
		a.fail("failed to cancel message", err)
		return err
	}
	a.success("scheduled message cancelled")
	return nil
}

// Edit updates a pending scheduled message's body and/or time. Empty input
// keeps the current value.
func (a *App) Edit(ctx context.Context) error {
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

	if err := a.channels.Update(ctx, id, body, at); err != nil {
		a.fail("failed to update message", err)
		return err
	}
	a.success("scheduled message updated")
	return nil
}

func (a *App) promptDestination() (scheduled.Destination, error) {
	id, err := getSimpleText(a.reader, "Channel id", os.Stdout)
	if err != nil {
		return scheduled.Destination{}, err
	}
	name, err := getSimpleText(a.reader, "Channel name", os.Stdout)
	if err != nil {
		return scheduled.Destination{}, err
	}
	return scheduled.Destination{ID: id, Name: name}, nil
}

func (a *App) promptScheduleTime() (time.Time, error) {
	input, err := getSimpleText(a.reader, "Deliver at (e.g. +10m, 2006-01-02 15:04)", os.Stdout)
	if err != nil {
		return time.Time{}, err
	}
	return ParseScheduleTime(input, time.Now())
}

func (a *App) printScheduled(items []models.ScheduledMessage) {
	if len(items) == 0 {
		fmt.Println("No scheduled messages.")
		return
	}

	now := time.Now()
	for _, m := range items {
		status := string(m.Status)
		if m.PastDue(now) {
			status = "processing"
		}
		fmt.Printf("%s  #%-15s %-10s %s (%s)\n",
			m.ID, m.ChannelName, status, FormatDate(m.ScheduledFor), FormatRelativeTime(m.ScheduledFor, now))
		fmt.Printf("      %s\n", Truncate(m.Message, 120))
		if m.SentAt != nil {
			fmt.Printf("      sent %s\n", FormatRelativeTime(*m.SentAt, now))
		}
		if m.ErrorMessage != "" {
			fmt.Printf("      error: %s\n", m.ErrorMessage)
		}
	}
}
