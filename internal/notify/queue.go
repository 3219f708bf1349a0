// Package notify keeps an in-memory, newest-first queue of transient status
// messages for display. Success and info notices expire on their own; errors
// and warnings stay until dismissed.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies a notification for display.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

// DefaultTTL is how long success and info notices live before auto-dismissal.
const DefaultTTL = 5 * time.Second

type Notification struct {
	ID      string
	Kind    Kind
	Message string
}

type Queue struct {
	mu     sync.Mutex
	items  []Notification
	timers map[string]*time.Timer
	ttl    time.Duration
}

func NewQueue() *Queue {
	return &Queue{
		timers: make(map[string]*time.Timer),
		ttl:    DefaultTTL,
	}
}

// Push prepends a notification and returns its id. Success and info kinds
// get an independent auto-dismiss timer; each notice times out on its own
// schedule regardless of later pushes.
func (q *Queue) Push(kind Kind, message string) string {
	n := Notification{ID: uuid.NewString(), Kind: kind, Message: message}

	q.mu.Lock()
	q.items = append([]Notification{n}, q.items...)
	if kind == KindSuccess || kind == KindInfo {
		q.timers[n.ID] = time.AfterFunc(q.ttl, func() { q.Dismiss(n.ID) })
	}
	q.mu.Unlock()

	return n.ID
}

// Dismiss removes a notification by id. Unknown ids are ignored.
func (q *Queue) Dismiss(id string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if t, ok := q.timers[id]; ok {
		t.Stop()
		delete(q.timers, id)
	}

	for i, n := range q.items {
		if n.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Clear drops every notification and stops all pending timers.
func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	for id, t := range q.timers {
		t.Stop()
		delete(q.timers, id)
	}
	q.items = nil
}

// Notifications returns a newest-first copy of the queue.
func (q *Queue) Notifications() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Notification, len(q.items))
	copy(out, q.items)
	return out
}
