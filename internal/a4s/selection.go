package a4s

import (
	"slices"
	"sync"

	"github.com/hay-kot/a4s/internal/core/crew"
)

// Selection is the set of tasks picked for the next crew. IDs keep the order
// in which they were toggled on.
type Selection struct {
	mu  sync.RWMutex
	ids []string
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{}
}

// Toggle adds id when absent and removes it when present. It reports whether
// id is selected afterwards.
func (s *Selection) Toggle(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.ids, id); i >= 0 {
		s.ids = slices.Delete(s.ids, i, i+1)
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Has reports whether id is selected.
func (s *Selection) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.ids, id)
}

// IDs returns the selected task ids in toggle order.
func (s *Selection) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// Tasks returns the selected tasks in catalog order.
func (s *Selection) Tasks() []crew.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []crew.Task
	for _, t := range crew.Catalog() {
		if slices.Contains(s.ids, t.ID) {
			out = append(out, t)
		}
	}
	return out
}

// Len returns the number of selected tasks.
func (s *Selection) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = nil
}
