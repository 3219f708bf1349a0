package models

import "time"

// MessageStatus is the server-side lifecycle state of a scheduled message.
type MessageStatus string

const (
	StatusPending   MessageStatus = "pending"
	StatusSent      MessageStatus = "sent"
	StatusCancelled MessageStatus = "cancelled"
	StatusFailed    MessageStatus = "failed"
)

// ScheduledMessage is a message queued on the backend for future delivery.
//
// Once Status leaves pending the record is read-only for the client; SentAt
// and ErrorMessage are populated only for sent and failed respectively.
type ScheduledMessage struct {
	ID           string        `json:"id"`
	ChannelID    string        `json:"channel_id"`
	ChannelName  string        `json:"channel_name"`
	Message      string        `json:"message"`
	ScheduledFor int64         `json:"scheduled_for"`
	Status       MessageStatus `json:"status"`
	CreatedAt    int64         `json:"created_at"`
	SentAt       *int64        `json:"sent_at,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
}

// Pending reports whether the message can still be cancelled or edited.
func (m *ScheduledMessage) Pending() bool {
	return m.Status == StatusPending
}

// PastDue reports whether a pending message's delivery time has already
// passed. Such a message is in the backend's hands; it is displayed as
// processing, never treated as failed.
func (m *ScheduledMessage) PastDue(now time.Time) bool {
	return m.Status == StatusPending && m.ScheduledFor < now.Unix()
}
