// Package scheduled maintains the client's view of scheduled messages for
// one destination surface and reconciles it against the server. The server
// is authoritative: List replaces local state wholesale, and mutations touch
// local state only after the server confirms them.
package scheduled

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/slackconnect/cli/internal/logging"
	"github.com/slackconnect/cli/internal/models"
)

var (
	// ErrEmptyMessage rejects a blank message body before any network call.
	ErrEmptyMessage = errors.New("message must not be empty")

	// ErrPastSchedule rejects a delivery time that is not strictly in the
	// future. A fast-fail only; the server enforces its own minimum lead
	// time and stays authoritative.
	ErrPastSchedule = errors.New("scheduled time must be in the future")

	// ErrNotFound means the id is not in the local list.
	ErrNotFound = errors.New("scheduled message not found")

	// ErrNotPending rejects cancel/edit of a message that already left the
	// pending state.
	ErrNotPending = errors.New("message is no longer pending")
)

// Destination names a target channel. The webhook surface ignores it.
type Destination struct {
	ID   string
	Name string
}

type Store struct {
	backend Backend
	log     logging.Logger
	now     func() time.Time

	mu    sync.Mutex
	items []models.ScheduledMessage
}

func NewStore(backend Backend, log logging.Logger) *Store {
	return &Store{backend: backend, log: log, now: time.Now}
}

// Create sends body to dest immediately when scheduledAt is nil, otherwise
// schedules it for that time. The scheduled path appends the server-created
// record to local state on success; nothing is mutated on failure.
func (s *Store) Create(ctx context.Context, dest Destination, body string, scheduledAt *time.Time) error {
	if body == "" {
		return ErrEmptyMessage
	}

	if scheduledAt == nil {
		return s.backend.Send(ctx, dest.ID, body)
	}

	if !scheduledAt.After(s.now()) {
		return ErrPastSchedule
	}

	msg, err := s.backend.Schedule(ctx, dest.ID, dest.Name, body, scheduledAt.Unix())
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.items = append(s.items, *msg)
	s.mu.Unlock()

	s.log.Debug(ctx, "message scheduled", "id", msg.ID, "channel", dest.Name, "at", msg.ScheduledFor)
	return nil
}

// List replaces local state with the server's current list and returns a
// sorted copy.
func (s *Store) List(ctx context.Context) ([]models.ScheduledMessage, error) {
	items, err := s.backend.List(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	return s.Sorted(), nil
}

// Cancel removes a pending message. The local guard rejects non-pending
// targets before any network call; after server confirmation the record is
// dropped from local state. There is no optimistic removal: a failed cancel
// leaves local state untouched.
func (s *Store) Cancel(ctx context.Context, id string) error {
	if err := s.requirePending(id); err != nil {
		return err
	}

	if err := s.backend.Cancel(ctx, id); err != nil {
		return err
	}

	s.mu.Lock()
	for i, m := range s.items {
		if m.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	return nil
}

// Update edits a pending message's body and/or delivery time. Like Cancel it
// is call-then-reconcile: on success the returned fields are merged into the
// local record, leaving fields the update did not touch intact.
func (s *Store) Update(ctx context.Context, id string, body *string, scheduledAt *time.Time) error {
	if body == nil && scheduledAt == nil {
		return fmt.Errorf("nothing to update")
	}
	if body != nil && *body == "" {
		return ErrEmptyMessage
	}
	if scheduledAt != nil && !scheduledAt.After(s.now()) {
		return ErrPastSchedule
	}

	if err := s.requirePending(id); err != nil {
		return err
	}

	var scheduledFor *int64
	if scheduledAt != nil {
		ts := scheduledAt.Unix()
		scheduledFor = &ts
	}

	updated, err := s.backend.Update(ctx, id, body, scheduledFor)
	if err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		if body != nil {
			s.items[i].Message = *body
		}
		if scheduledFor != nil {
			s.items[i].ScheduledFor = *scheduledFor
		}
		if updated != nil {
			mergeRecord(&s.items[i], updated)
		}
		break
	}
	s.mu.Unlock()
	return nil
}

// Sorted returns the presentation order: pending before everything else,
// ascending delivery time within each bucket. Recomputed on every call.
func (s *Store) Sorted() []models.ScheduledMessage {
	s.mu.Lock()
	out := make([]models.ScheduledMessage, len(s.items))
	copy(out, s.items)
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := out[i].Pending(), out[j].Pending()
		if pi != pj {
			return pi
		}
		return out[i].ScheduledFor < out[j].ScheduledFor
	})
	return out
}

// PastDue returns the ids of pending messages whose delivery time has
// passed. They are display-flagged as processing and stay cancellable until
// the server says otherwise.
func (s *Store) PastDue() []models.ScheduledMessage {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.ScheduledMessage
	for _, m := range s.items {
		if m.PastDue(now) {
			out = append(out, m)
		}
	}
	return out
}

func (s *Store) requirePending(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.items {
		if m.ID == id {
			if !m.Pending() {
				return ErrNotPending
			}
			return nil
		}
	}
	return ErrNotFound
}

// mergeRecord overlays non-zero fields of src onto dst, preserving anything
// the server response omitted.
func mergeRecord(dst, src *models.ScheduledMessage) {
	if src.Message != "" {
		dst.Message = src.Message
	}
	if src.ScheduledFor != 0 {
		dst.ScheduledFor = src.ScheduledFor
	}
	if src.Status != "" {
		dst.Status = src.Status
	}
	if src.ChannelName != "" {
		dst.ChannelName = src.ChannelName
	}
	if src.SentAt != nil {
		dst.SentAt = src.SentAt
	}
	if src.ErrorMessage != "" {
		dst.ErrorMessage = src.ErrorMessage
	}
}
