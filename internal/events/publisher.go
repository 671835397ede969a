package events

import (
	"context"
	"sync"
)

// Publisher delivers notification messages outside the process.
// Delivery is best-effort: callers log failures and carry on.
type Publisher interface {
	PublishNotification(ctx context.Context, msg NotificationMessage) error
	Close() error
}

// NopPublisher drops every message. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishNotification(context.Context, NotificationMessage) error { return nil }
func (NopPublisher) Close() error { return nil }

// Recorder keeps published messages in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []NotificationMessage
}

func (r *Recorder) PublishNotification(_ context.Context, msg NotificationMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *Recorder) Close() error { return nil }

// Messages returns a copy of everything published so far.
func (r *Recorder) Messages() []NotificationMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]NotificationMessage(nil), r.messages...)
}
