// Package history defines the execution payload history: the JSON bodies a
// user has sent to crews, kept so they can be reused.
package history

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when no matching entry exists.
var ErrNotFound = errors.New("history entry not found")

// Entry records one payload sent with a crew execution.
type Entry struct {
	ID        string          `json:"id"`
	CrewID    string          `json:"crew_id"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// Store persists payload history, newest first.
type Store interface {
	List(ctx context.Context) ([]Entry, error)
	Save(ctx context.Context, entry Entry, maxEntries int) error
	LastForCrew(ctx context.Context, crewID string) (Entry, error)
}
