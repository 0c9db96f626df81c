// Package notify provides the in-process notification bus that turns
// operation outcomes into toasts and CLI output.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hay-kot/a4s/internal/core/notify"
)

// Subscriber is a callback invoked when a notification is published.
type Subscriber func(notify.Notification)

// Bus is a synchronous in-process notification bus. It dispatches notifications
// to subscribers inline and records them in a Store. Publish may be called from
// tea.Cmd goroutines; subscribers must be safe for that.
type Bus struct {
	store       notify.Store
	subscribers []Subscriber
	mu          sync.Mutex
}

// NewBus creates a notification bus backed by the given store.
// If store is nil, notifications are dispatched to subscribers but not recorded.
func NewBus(store notify.Store) *Bus {
	return &Bus{
		store: store,
	}
}

// Subscribe registers a callback that will be invoked on every Publish.
func (b *Bus) Subscribe(fn Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = append(b.subscribers, fn)
}

// Publish dispatches a notification to all subscribers and records it in the store.
func (b *Bus) Publish(n notify.Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}

	if b.store != nil {
		id, err := b.store.Save(context.Background(), n)
		if err != nil {
			log.Error().Err(err).Str("message", n.Message).Msg("failed to record notification")
		} else {
			n.ID = id
		}
	}

	b.mu.Lock()
	subs := make([]Subscriber, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
}

// Error publishes an error-level notification with a title.
func (b *Bus) Error(title, message string) {
	b.Publish(notify.Notification{Level: notify.LevelError, Title: title, Message: message})
}

// Warn publishes a warning-level notification with a title.
func (b *Bus) Warn(title, message string) {
	b.Publish(notify.Notification{Level: notify.LevelWarning, Title: title, Message: message})
}

// Info publishes an info-level notification with a title.
func (b *Bus) Info(title, message string) {
	b.Publish(notify.Notification{Level: notify.LevelInfo, Title: title, Message: message})
}

// History returns all recorded notifications (newest first).
// Returns nil if no store is configured.
func (b *Bus) History() ([]notify.Notification, error) {
	if b.store == nil {
		return nil, nil
	}
	return b.store.List(context.Background())
}

// Clear deletes all recorded notifications.
func (b *Bus) Clear() error {
	if b.store == nil {
		return nil
	}
	return b.store.Clear(context.Background())
}
