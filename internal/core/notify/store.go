// Package notify defines user-facing notification types and storage.
package notify

import (
	"context"
	"time"
)

// Level represents the severity of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notification represents a single notification event.
type Notification struct {
	ID        int64
	Level     Level
	Title     string
	Message   string
	CreatedAt time.Time
}

// Text joins title and message for single-line rendering.
func (n Notification) Text() string {
	switch {
	case n.Title == "":
		return n.Message
	case n.Message == "":
		return n.Title
	default:
		return n.Title + ": " + n.Message
	}
}

// Store persists notifications.
type Store interface {
	Save(ctx context.Context, n Notification) (int64, error)
	List(ctx context.Context) ([]Notification, error)
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
