package notify

import (
	"context"
	"sync"
)

// MemoryStore keeps the most recent notifications in memory. Notifications
// are session-scoped and never written to disk.
type MemoryStore struct {
	mu     sync.Mutex
	items  []Notification
	nextID int64
	limit  int
}

// NewMemoryStore returns a store holding at most limit notifications.
// A limit of 0 keeps everything.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{limit: limit}
}

func (m *MemoryStore) Save(_ context.Context, n Notification) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	n.ID = m.nextID
	m.items = append(m.items, n)
	if m.limit > 0 && len(m.items) > m.limit {
		m.items = m.items[len(m.items)-m.limit:]
	}
	return n.ID, nil
}

// List returns notifications newest first.
func (m *MemoryStore) List(_ context.Context) ([]Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Notification, len(m.items))
	for i, n := range m.items {
		out[len(m.items)-1-i] = n
	}
	return out, nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = nil
	return nil
}

func (m *MemoryStore) Count(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.items)), nil
}
